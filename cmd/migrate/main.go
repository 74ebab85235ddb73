package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/ammerola/inventory-dashboard/internal/adapters/db"
	"github.com/ammerola/inventory-dashboard/internal/pkg/config"
	"github.com/ammerola/inventory-dashboard/internal/pkg/logger"
)

const usage = `usage: migrate [flags] <command>

commands:
  up             apply all pending migrations
  down           roll back the last migration
  version        print the current version
  status         print the version and applied migrations as JSON
  force VERSION  set the version without running migrations

flags:
`

func main() {
	var (
		path       = flag.String("path", "", "Migrations directory (defaults to the embedded set)")
		forceDirty = flag.Bool("force-dirty", false, "Clear a dirty state before running up")
		logLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.SetupLogger(*logLevel, "text").Logger

	cfg, err := config.Load(log)
	if err != nil {
		log.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourcePath := *path
	if sourcePath == "" {
		sourcePath = cfg.Database.MigrationPath
	}

	migrator, err := db.NewMigrator(&db.MigrationConfig{
		DatabaseURL: cfg.Database.URL,
		SourcePath:  sourcePath,
		ForceDirty:  *forceDirty,
	}, log)
	if err != nil {
		log.Error("failed to create migrator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	err = run(ctx, migrator, flag.Args())
	cancel()

	if cerr := migrator.Close(); cerr != nil {
		log.Warn("failed to close migrator", slog.String("error", cerr.Error()))
	}
	if err != nil {
		log.Error("migration command failed",
			slog.String("command", flag.Arg(0)),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, m *db.Migrator, args []string) error {
	switch args[0] {
	case "up":
		return m.Up(ctx)
	case "down":
		return m.Down(ctx)
	case "version":
		version, dirty, err := m.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("version: %d dirty: %t\n", version, dirty)
		return nil
	case "status":
		status, err := m.Status(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requires a version")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		return m.Force(ctx, version)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
