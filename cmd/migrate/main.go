package main

// Manage the build registry schema:
//   go run ./cmd/migrate            # apply pending migrations
//   go run ./cmd/migrate status     # print the applied version
//   go run ./cmd/migrate down       # revert the latest migration

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"cv-forge/internal/shared/config"
	"cv-forge/internal/shared/storage/db"
	"cv-forge/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.Logging())

	fs := pflag.NewFlagSet("migrate", pflag.ExitOnError)
	databaseURL := fs.String("database-url", cfg.DatabaseURL, "postgres connection string")
	_ = fs.Parse(os.Args[1:])

	command := "up"
	if fs.NArg() > 0 {
		command = fs.Arg(0)
	}

	ctx := context.Background()
	sqlDB, err := db.Connect(ctx, *databaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		telemetry.Error("failed to connect database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := run(ctx, command, sqlDB, os.Stdout); err != nil {
		telemetry.Error("migration failed", map[string]any{"command": command, "error": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, sqlDB *sql.DB, out io.Writer) error {
	switch command {
	case "up":
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return err
		}
		telemetry.Info("migrations applied", nil)
	case "down":
		if err := db.RollbackMigration(ctx, sqlDB); err != nil {
			return err
		}
		telemetry.Info("migration reverted", nil)
	case "status":
		version, err := db.MigrationVersion(ctx, sqlDB)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "version %d\n", version)
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", command)
	}
	return nil
}
