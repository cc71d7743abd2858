package cmd

import (
	"github.com/mcarrero/laborstat/core"
	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/spf13/cobra"
)

// categoriesCmd lists the catalog for a breakdown dimension.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the catalog categories for a breakdown dimension.",
	Long: `Show the categories available for the selected breakdown dimension.

These are the labels accepted by --categories and returned in query results.
The catalog is static and needs no network access.

Examples:
  # Regions (the default dimension)
  laborstat categories

  # Education levels
  laborstat categories -b education`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCategories(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list categories", err)
		}
	},
}
