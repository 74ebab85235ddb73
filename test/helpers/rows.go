// test/helpers/rows.go
package helpers

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Rows is an in-memory pgx.Rows for repository unit tests. Values are
// assigned to scan targets by reflection, so a test supplies plain Go values
// (a string for a NUMERIC column, a []string for TEXT[]).
type Rows struct {
	data    [][]any
	pos     int
	err     error
	scanErr error
	closed  bool
}

var _ pgx.Rows = (*Rows)(nil)

// NewRows returns rows that yield each of data in turn.
func NewRows(data ...[]any) *Rows {
	return &Rows{data: data, pos: -1}
}

// WithErr makes Err report err once iteration finishes.
func (r *Rows) WithErr(err error) *Rows {
	r.err = err
	return r
}

// WithScanErr makes every Scan fail with err.
func (r *Rows) WithScanErr(err error) *Rows {
	r.scanErr = err
	return r
}

// Closed reports whether Close was called.
func (r *Rows) Closed() bool { return r.closed }

func (r *Rows) Close() { r.closed = true }

func (r *Rows) Err() error {
	if r.pos >= len(r.data) {
		return r.err
	}
	return nil
}

func (r *Rows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(r.data)))
}

func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *Rows) Next() bool {
	if r.closed {
		return false
	}
	r.pos++
	if r.pos >= len(r.data) {
		r.closed = true
		return false
	}
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	if r.pos < 0 || r.pos >= len(r.data) {
		return errors.New("scan called without a current row")
	}
	return scanValues(r.data[r.pos], dest)
}

func (r *Rows) Values() ([]any, error) {
	if r.pos < 0 || r.pos >= len(r.data) {
		return nil, errors.New("no current row")
	}
	return r.data[r.pos], nil
}

func (r *Rows) RawValues() [][]byte { return nil }

func (r *Rows) Conn() *pgx.Conn { return nil }

// Row is an in-memory pgx.Row.
type Row struct {
	values []any
	err    error
}

var _ pgx.Row = Row{}

// NewRow returns a row that scans values.
func NewRow(values ...any) Row {
	return Row{values: values}
}

// ErrRow returns a row whose Scan fails with err.
func ErrRow(err error) Row {
	return Row{err: err}
}

func (r Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanValues(r.values, dest)
}

func scanValues(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d targets", len(values), len(dest))
	}
	for i := range dest {
		if err := assign(dest[i], values[i]); err != nil {
			return fmt.Errorf("scan column %d: %w", i, err)
		}
	}
	return nil
}

func assign(dest, value any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("destination %T is not a non-nil pointer", dest)
	}
	target := dv.Elem()

	if value == nil {
		if s, ok := dest.(sql.Scanner); ok {
			return s.Scan(nil)
		}
		target.Set(reflect.Zero(target.Type()))
		return nil
	}

	sv := reflect.ValueOf(value)
	if sv.Type().AssignableTo(target.Type()) {
		target.Set(sv)
		return nil
	}

	if s, ok := dest.(sql.Scanner); ok {
		return s.Scan(value)
	}

	if target.Kind() == reflect.Pointer {
		elem := reflect.New(target.Type().Elem())
		if err := assign(elem.Interface(), value); err != nil {
			return err
		}
		target.Set(elem)
		return nil
	}

	if convertible(sv.Type(), target.Type()) {
		target.Set(sv.Convert(target.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, target.Type())
}

// convertible refuses the numeric to string conversion reflect allows.
func convertible(from, to reflect.Type) bool {
	if to.Kind() == reflect.String && from.Kind() != reflect.String {
		return false
	}
	return from.ConvertibleTo(to)
}
