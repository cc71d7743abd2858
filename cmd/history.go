package cmd

import (
	"fmt"

	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/internal/outwriter"
	"github.com/mcarrero/laborstat/internal/snapstore"
	"github.com/mcarrero/laborstat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for archive operations.
// This is used by commands that need archive access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get archive-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as SQLite so 'history' works out of the box
	var backend schema.DatabaseBackend
	if backendStr == "" || backendStr == string(schema.NoneBackend) {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by status and export commands)
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = contract.DefaultPrecision
	cfg.Width = viper.GetInt("width")

	// Initialize the archive store with the loaded config
	if err := snapstore.Manager.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run archive: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" || backendStr == string(schema.NoneBackend) {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on run archive management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by query commands. This avoids query validation
// for simple archive operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the archived query runs",
	Long: `Manage the archive of past query runs.

When a query runs with --store-backend set, laborstat archives:
- Run metadata (timestamp, query parameters, source tag, duration)
- Every observation the run produced

The archive is an audit trail. The resolver never reads it back, so archived
data has no effect on later queries.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show archive statistics and recent runs
  export  - Export archived data to Parquet for analytics
  clear   - Remove all archived data
  migrate - Run database schema migrations

Examples:
  # Check archive status
  laborstat history status

  # Export for analysis in pandas/DuckDB
  laborstat history export --output-file laborstat-data.parquet`,
}

// historyStatusCmd shows archive status and recent runs.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display archive statistics and recent runs",
	Long: `Show the archive backend, how much data it holds, and the most
recent archived runs.

Examples:
  # Summary plus the last 25 runs
  laborstat history status

  # More runs, as JSON
  laborstat history status --limit 100 --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := snapstore.Manager.GetRunStore()
		status, err := store.Status()
		if err != nil {
			contract.LogFatal("Failed to get archive status", err)
		}
		if err := outwriter.WriteStoreStatus(status); err != nil {
			contract.LogFatal("Failed to print archive status", err)
		}
		runs, err := store.Runs(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list archived runs", err)
		}
		if err := outwriter.WriteRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to print archived runs", err)
		}
	},
}

// historyClearCmd clears the archive.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived runs and observations",
	Long: `Delete every archived run and observation.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  laborstat history export --output-file backup.parquet
  laborstat history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapstore.Manager.CloseStores(); err != nil {
			contract.LogWarn("Failed to close archive before clearing", err)
		}
		if err := snapstore.ClearArchive(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear archive", err)
		}
		fmt.Println("Run archive cleared successfully.")
	},
}

// historyExportCmd exports the archive to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived runs to Parquet for BI tools and analytics",
	Long: `Export the run archive to Parquet format for use with analytics tools.

Exports two datasets into the output directory:
- runs.parquet - metadata about each archived query run
- observations.parquet - every observation each run produced

Requires: --output-file parameter (treated as a directory)

Examples:
  # Export all data
  laborstat history export --output-file laborstat-data.parquet

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('laborstat-data.parquet/runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapstore.ExecuteArchiveExport(snapstore.Manager.GetRunStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export archive", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the archive store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run archive.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  laborstat history migrate

  # Migrate to specific version
  laborstat history migrate --target-version 1

  # Rollback all migrations
  laborstat history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := snapstore.MigrateArchive(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
