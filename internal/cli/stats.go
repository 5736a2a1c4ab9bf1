package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasperwreed/chatgpt-stats/internal/analytics"
	"github.com/jasperwreed/chatgpt-stats/internal/loader"
	"github.com/jasperwreed/chatgpt-stats/internal/report"
)

func NewStatsCommand() *cobra.Command {
	var outputDir string
	var payloadPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Compute usage statistics and write report files",
		Long: `Analyze the export and print a summary report. Per-conversation,
per-day, and gap records are written as JSON and CSV into the output
directory.`,
		Example: `  # Analyze ./conversations.json and write reports to ./
  chatgpt-stats stats

  # Analyze a specific export and keep the full payload document
  chatgpt-stats stats --file ~/Downloads/conversations.json --payload stats.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(outputDir, payloadPath)
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", ".", "Directory for the JSON/CSV report files")
	cmd.Flags().StringVar(&payloadPath, "payload", "", "Also write the full payload document to this path")

	return cmd
}

func runStats(outputDir, payloadPath string) error {
	conversations, err := loader.Load(sourcePath)
	if err != nil {
		return err
	}

	result := analytics.Build(conversations, time.Now())
	report.PrintSummary(os.Stdout, result.Payload)

	written, err := report.WriteFiles(outputDir, result)
	if err != nil {
		return err
	}
	if payloadPath != "" {
		if err := report.WritePayload(payloadPath, result.Payload); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
		written = append(written, payloadPath)
	}

	fmt.Println()
	for _, path := range written {
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}
