// Package cmd defines the command-line interface for laborstat.
package cmd

import (
	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(indicatorsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("indicator", "i", string(schema.UnemploymentRate), "Indicator: unemployment or participation or employment or wage")
	rootCmd.PersistentFlags().StringP("breakdown", "b", string(schema.RegionDimension), "Breakdown dimension: region or education or age or gender")
	rootCmd.PersistentFlags().String("frequency", string(schema.Quarterly), "Series frequency: quarterly or annual")
	rootCmd.PersistentFlags().Int("start-year", contract.DefaultStartYear, "First year of the query range (inclusive)")
	rootCmd.PersistentFlags().Int("end-year", 0, "Last year of the query range (0 = previous calendar year)")
	rootCmd.PersistentFlags().Int("min-age", schema.DefaultMinAge, "Lower bound of the age filter")
	rootCmd.PersistentFlags().Int("max-age", schema.DefaultMaxAge, "Upper bound of the age filter")
	rootCmd.PersistentFlags().String("basis", string(schema.NominalBasis), "Wage basis: nominal or constant (reference-year euros)")
	rootCmd.PersistentFlags().String("categories", "", "Comma-separated category labels to keep ('none' selects nothing, empty selects all)")
	rootCmd.PersistentFlags().String("base-url", contract.DefaultBaseURL, "Upstream statistics endpoint")
	rootCmd.PersistentFlags().Int("timeout", 0, "Per-request fetch timeout in seconds (0 = default)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Run archive backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyStatusCmd to Viper
	historyStatusCmd.Flags().Int("limit", 25, "Number of archived runs to display")
	if err := viper.BindPFlags(historyStatusCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history status flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
