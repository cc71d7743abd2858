package cmd

import (
	"github.com/mcarrero/laborstat/core"
	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/spf13/cobra"
)

// queryCmd resolves one series query and prints the result.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Resolve a labor-market time series broken down by category.",
	Long: `Fetch a labor-market indicator broken down by region, education, age, or gender.

The resolver tries three levels per category, in order:
- The official per-category series from the statistics service
- Derivation from the official "Total" aggregate when the category series is missing
- A deterministic synthetic model when the service is unreachable

Results carry a source tag: 'official' when the aggregate series was reachable,
'simulated' otherwise. Wages can be expressed in nominal euros or in constant
reference-year euros via --basis constant.

Examples:
  # Quarterly unemployment by region since 2014
  laborstat query

  # Annual wages by education in constant euros
  laborstat query -i wage -b education --frequency annual --basis constant

  # A slice of categories over a fixed window, exported as CSV
  laborstat query -b region --categories "Madrid,Catalonia" --start-year 2018 --end-year 2022 --output csv

  # Archive every run into SQLite for later inspection
  laborstat query --store-backend sqlite`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteQuery(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run series query", err)
		}
	},
}
