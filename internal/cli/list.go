package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasperwreed/chatgpt-stats/internal/analytics"
	"github.com/jasperwreed/chatgpt-stats/internal/loader"
)

func NewListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations in the export",
		Long:  `Print a table of conversations, most recent first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum conversations to show (0 for all)")

	return cmd
}

func runList(limit int) error {
	conversations, err := loader.Load(sourcePath)
	if err != nil {
		return err
	}

	summaries, _, _ := analytics.Process(conversations)
	sort.SliceStable(summaries, func(i, j int) bool { return summaries[i].Date > summaries[j].Date })
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tMESSAGES\tDURATION\tTITLE")
	for _, s := range summaries {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			s.Date, s.MessageCount, formatDuration(s.DurationMinutes), title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d conversations\n", len(summaries))
	return nil
}

func formatDuration(minutes float64) string {
	d := time.Duration(minutes * float64(time.Minute))
	if d < time.Minute {
		return "<1m"
	}
	return d.Round(time.Minute).String()
}
