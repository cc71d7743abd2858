package cmd

import (
	"github.com/mcarrero/laborstat/core"
	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/spf13/cobra"
)

// indicatorsCmd lists the supported indicators.
var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "List the supported indicators with units and reference levels.",
	Long: `Show every indicator laborstat can query, its unit, and the synthetic
model's reference-year level used when falling back to simulation.

Examples:
  laborstat indicators
  laborstat indicators --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIndicators(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list indicators", err)
		}
	},
}
