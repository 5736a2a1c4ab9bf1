// Package cli defines the chatgpt-stats command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jasperwreed/chatgpt-stats/internal/loader"
)

var sourcePath string

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatgpt-stats",
		Short: "Analyze a ChatGPT conversation export",
		Long: `chatgpt-stats turns the conversations.json file from a ChatGPT data
export into usage statistics: daily activity, trends, gaps, content
metrics, and a local web dashboard.`,
		Version: "0.1.0",
	}

	rootCmd.PersistentFlags().StringVar(&sourcePath, "file", loader.DefaultPath,
		"Path to the conversations.json export")

	rootCmd.AddCommand(
		NewStatsCommand(),
		NewServeCommand(),
		NewExportCommand(),
		NewPromptsCommand(),
		NewListCommand(),
	)

	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
