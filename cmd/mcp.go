package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geekbozu/CopilotTaskMaster/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdin/stdout",
	Long:  "Serve the task store over the Model Context Protocol so LLM agents can create, search, and manage task cards.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.New(st, searcher).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
