package cmd

import (
	"github.com/mcarrero/laborstat/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the laborstat MCP server",
	Long:  `Launch an MCP server that allows AI agents to query labor-market series via standard tools.`,
	// The handlers resolve queries through GetQueryResult directly, so no
	// header is printed onto the stdio channel used for the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
