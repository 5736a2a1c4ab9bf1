package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasperwreed/chatgpt-stats/internal/exporter"
	"github.com/jasperwreed/chatgpt-stats/internal/loader"
	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

func NewExportCommand() *cobra.Command {
	var outputPath string
	var exportAll bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export conversations as formatted text",
		Long: `Write conversations to a human-readable text file. By default an
interactive picker walks through the most recent conversations; --all
exports everything without asking.`,
		Example: `  # Pick conversations interactively
  chatgpt-stats export

  # Export every conversation to a chosen file
  chatgpt-stats export --all --output my_chats.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(outputPath, exportAll)
		},
	}

	cmd.Flags().StringVar(&outputPath, "output", exporter.DefaultOutputPath, "Destination text file")
	cmd.Flags().BoolVar(&exportAll, "all", false, "Export every conversation without the interactive picker")

	return cmd
}

func runExport(outputPath string, exportAll bool) error {
	conversations, err := loader.Load(sourcePath)
	if err != nil {
		return err
	}
	if len(conversations) == 0 {
		fmt.Println("No conversations found in the export.")
		return nil
	}

	var selected []models.ConversationRecord
	if exportAll {
		selected = exporter.SortNewestFirst(conversations)
	} else {
		selected, err = exporter.Pick(conversations)
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}
	}
	if len(selected) == 0 {
		fmt.Println("No conversations were selected for export.")
		return nil
	}

	if err := exporter.Export(outputPath, selected, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Exported %d conversations to %s\n", len(selected), outputPath)
	return nil
}
