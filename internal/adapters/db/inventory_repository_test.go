package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/inventory-dashboard/internal/adapters/db"
	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/test/helpers"
	"github.com/ammerola/inventory-dashboard/test/mocks"
)

func TestInventoryRepository_FindPage(t *testing.T) {
	records := helpers.CreateTestRecords(3)

	tests := []struct {
		name       string
		query      domain.InventoryQuery
		setupMocks func(*mocks.MockDatabase)
		wantTotal  int64
		wantLen    int
		wantErr    string
	}{
		{
			name:  "returns_rows_and_total",
			query: domain.DefaultInventoryQuery(),
			setupMocks: func(m *mocks.MockDatabase) {
				gomock.InOrder(
					m.EXPECT().QueryRow(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, sql string, args ...any) pgx.Row {
							assert.Contains(t, sql, "SELECT COUNT(*) FROM inventory")
							assert.Empty(t, args)
							return helpers.NewRow(int64(42))
						}),
					m.EXPECT().Query(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
							assert.Contains(t, sql, "LIMIT 10 OFFSET 0")
							return helpers.RecordRows(records...), nil
						}),
				)
			},
			wantTotal: 42,
			wantLen:   3,
		},
		{
			name: "filters_passed_to_both_queries",
			query: func() domain.InventoryQuery {
				q := domain.DefaultInventoryQuery()
				q.Category = domain.CategoryHoodie
				q.Search = helpers.StrPtr("zip")
				return q
			}(),
			setupMocks: func(m *mocks.MockDatabase) {
				want := []any{"hoodie", "%zip%", "%zip%"}
				m.EXPECT().QueryRow(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, args ...any) pgx.Row {
						assert.Equal(t, want, args)
						return helpers.NewRow(int64(1))
					})
				m.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
						assert.Equal(t, want, args)
						return helpers.RecordRows(records[0]), nil
					})
			},
			wantTotal: 1,
			wantLen:   1,
		},
		{
			name: "page_past_end_is_empty_not_nil",
			query: func() domain.InventoryQuery {
				q := domain.DefaultInventoryQuery()
				q.Page = 99
				return q
			}(),
			setupMocks: func(m *mocks.MockDatabase) {
				m.EXPECT().QueryRow(gomock.Any(), gomock.Any()).Return(helpers.NewRow(int64(5)))
				m.EXPECT().Query(gomock.Any(), gomock.Any()).Return(helpers.NewRows(), nil)
			},
			wantTotal: 5,
			wantLen:   0,
		},
		{
			name:  "count_failure",
			query: domain.DefaultInventoryQuery(),
			setupMocks: func(m *mocks.MockDatabase) {
				m.EXPECT().QueryRow(gomock.Any(), gomock.Any()).Return(helpers.ErrRow(errors.New("connection refused")))
			},
			wantErr: "failed to count inventory: connection refused",
		},
		{
			name:  "page_query_failure",
			query: domain.DefaultInventoryQuery(),
			setupMocks: func(m *mocks.MockDatabase) {
				m.EXPECT().QueryRow(gomock.Any(), gomock.Any()).Return(helpers.NewRow(int64(5)))
				m.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			wantErr: "failed to query inventory: timeout",
		},
		{
			name:  "scan_failure",
			query: domain.DefaultInventoryQuery(),
			setupMocks: func(m *mocks.MockDatabase) {
				m.EXPECT().QueryRow(gomock.Any(), gomock.Any()).Return(helpers.NewRow(int64(1)))
				m.EXPECT().Query(gomock.Any(), gomock.Any()).
					Return(helpers.RecordRows(records[0]).WithScanErr(errors.New("bad column")), nil)
			},
			wantErr: "failed to scan inventory row: bad column",
		},
		{
			name:  "iteration_failure",
			query: domain.DefaultInventoryQuery(),
			setupMocks: func(m *mocks.MockDatabase) {
				m.EXPECT().QueryRow(gomock.Any(), gomock.Any()).Return(helpers.NewRow(int64(1)))
				m.EXPECT().Query(gomock.Any(), gomock.Any()).
					Return(helpers.RecordRows(records[0]).WithErr(errors.New("conn reset")), nil)
			},
			wantErr: "failed to query inventory: conn reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockDB := mocks.NewMockDatabase(ctrl)
			tt.setupMocks(mockDB)

			repo := db.NewInventoryRepository(mockDB)
			got, total, err := repo.FindPage(context.Background(), tt.query)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
				var se *domain.StoreError
				assert.ErrorAs(t, err, &se)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestInventoryRepository_FindPage_ScansRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mocks.NewMockDatabase(ctrl)

	want := helpers.CreateTestRecord(func(r *domain.InventoryRecord) {
		r.Size = nil
	})

	mockDB.EXPECT().QueryRow(gomock.Any(), gomock.Any()).Return(helpers.NewRow(int64(1)))
	mockDB.EXPECT().Query(gomock.Any(), gomock.Any()).Return(helpers.RecordRows(want), nil)

	repo := db.NewInventoryRepository(mockDB)
	got, _, err := repo.FindPage(context.Background(), domain.DefaultInventoryQuery())
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.Equal(t, want.ID, rec.ID)
	assert.Equal(t, "ECT-M-BLACK", rec.SKU)
	assert.Equal(t, domain.CategoryTShirt, rec.Category)
	assert.Nil(t, rec.Size)
	require.NotNil(t, rec.Color)
	assert.Equal(t, "black", *rec.Color)
	assert.Equal(t, 20, rec.QuantityOnHand)
	assert.Equal(t, 5, rec.QuantityReserved)
	assert.Equal(t, "8.99", rec.BuyPrice.StringFixed(2))
	assert.Equal(t, "19.99", rec.SellPrice.StringFixed(2))
	assert.True(t, want.LastModifiedAt.Equal(rec.LastModifiedAt))
}

func TestInventoryRepository_FindAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mocks.NewMockDatabase(ctrl)

	records := helpers.CreateTestRecords(4)
	mockDB.EXPECT().Query(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
			assert.Contains(t, sql, "LIMIT 1000")
			assert.NotContains(t, sql, "OFFSET")
			return helpers.RecordRows(records...), nil
		})

	repo := db.NewInventoryRepository(mockDB)
	q := domain.DefaultInventoryQuery()
	q.Page = 3

	got, err := repo.FindAll(context.Background(), q, 1000)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestInventoryRepository_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mocks.NewMockDatabase(ctrl)

	mockDB.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(helpers.NewRows(
			[]any{"hoodie", int64(3), int64(60), int64(10), int64(50), int64(1), int64(0)},
			[]any{"t-shirt", int64(6), int64(120), int64(0), int64(120), int64(0), int64(2)},
		), nil)

	repo := db.NewInventoryRepository(mockDB)
	got, err := repo.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.CategoryHoodie, got[0].Category)
	assert.Equal(t, int64(50), got[0].Available)
	assert.Equal(t, int64(1), got[0].LowStock)
	assert.Equal(t, int64(2), got[1].OutOfStock)
}

func TestInventoryRepository_Summary_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mocks.NewMockDatabase(ctrl)

	mockDB.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("down"))

	repo := db.NewInventoryRepository(mockDB)
	_, err := repo.Summary(context.Background())
	assert.EqualError(t, err, "failed to summarize inventory: down")
}
