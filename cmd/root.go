package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the line-mcp application
var rootCmd = &cobra.Command{
	Use:   "line-mcp",
	Short: "MCP server for sending messages to LINE",
	Long: `line-mcp exposes LINE messaging to AI assistants through the
Model Context Protocol (MCP).

It provides a send_line_message tool that pushes text messages to a
configured LINE group or personal chat, and a webhook endpoint that helps
operators discover the user and group IDs needed for configuration.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "line-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
