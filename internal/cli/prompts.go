package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jasperwreed/chatgpt-stats/internal/flatten"
	"github.com/jasperwreed/chatgpt-stats/internal/loader"
	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

func NewPromptsCommand() *cobra.Command {
	var outputPath string
	var firstOnly bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Extract your prompts from the export",
		Long: `Collect every user prompt across the archive. With --output the
prompts are written to a file; unless --quiet is set, the earliest
conversation in the archive is printed in full.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompts(outputPath, firstOnly, quiet)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write extracted prompts to this file")
	cmd.Flags().BoolVarP(&firstOnly, "first", "f", false, "Keep only up to the first semicolon of each prompt")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the earliest conversation")

	return cmd
}

func runPrompts(outputPath string, firstOnly, quiet bool) error {
	conversations, err := loader.Load(sourcePath)
	if err != nil {
		return err
	}

	prompts := extractPrompts(conversations, firstOnly)
	fmt.Printf("Found %d user prompts.\n", len(prompts))

	if outputPath != "" {
		var sb strings.Builder
		for _, p := range prompts {
			sb.WriteString(p)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat("-", 36))
			sb.WriteString("\n")
		}
		if err := os.WriteFile(outputPath, []byte(sb.String()), 0o644); err != nil {
			return fmt.Errorf("write prompts: %w", err)
		}
		fmt.Printf("Wrote prompts to %s\n", outputPath)
	}

	if !quiet {
		printEarliestConversation(os.Stdout, conversations)
	}
	return nil
}

// extractPrompts walks every conversation's mapping and collects user
// message text. firstOnly cuts each prompt at its first semicolon.
func extractPrompts(conversations []models.ConversationRecord, firstOnly bool) []string {
	var prompts []string
	for _, conv := range conversations {
		for _, node := range conv.Mapping {
			if node.Message == nil || node.Message.Author == nil || node.Message.Author.Role != "user" {
				continue
			}
			if node.Message.Content == nil {
				continue
			}
			text := flatten.ExtractText(node.Message.Content)
			if text == "" {
				continue
			}
			if i := strings.Index(text, ";"); i >= 0 {
				prompts = append(prompts, text[:i+1])
			} else if !firstOnly {
				prompts = append(prompts, text)
			}
		}
	}
	return prompts
}

// printEarliestConversation finds the conversation with the oldest valid
// message timestamp and prints its whole thread oldest-first.
func printEarliestConversation(w *os.File, conversations []models.ConversationRecord) {
	var earliest *models.ConversationRecord
	var earliestAt int64
	for i := range conversations {
		for _, node := range conversations[i].Mapping {
			if node.Message == nil || !node.Message.CreateTime.Valid {
				continue
			}
			at := node.Message.CreateTime.Time.Unix()
			if earliest == nil || at < earliestAt {
				earliest = &conversations[i]
				earliestAt = at
			}
		}
	}
	if earliest == nil {
		fmt.Fprintln(w, "No conversation found to display.")
		return
	}

	title := earliest.Title
	if title == "" {
		title = "Untitled Conversation"
	}
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 60))
	fmt.Fprintf(w, "First conversation (earliest): %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	type turn struct {
		when models.Timestamp
		role string
		text string
	}
	var turns []turn
	for _, node := range earliest.Mapping {
		if node.Message == nil || node.Message.Content == nil {
			continue
		}
		role := "unknown"
		if node.Message.Author != nil && node.Message.Author.Role != "" {
			role = node.Message.Author.Role
		}
		turns = append(turns, turn{
			when: node.Message.CreateTime,
			role: role,
			text: flatten.ExtractText(node.Message.Content),
		})
	}
	sort.SliceStable(turns, func(i, j int) bool {
		if turns[i].when.Valid != turns[j].when.Valid {
			return !turns[i].when.Valid
		}
		return turns[i].when.Time.Before(turns[j].when.Time)
	})

	for _, t := range turns {
		ts := "Unknown"
		if t.when.Valid {
			ts = t.when.Time.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "[%s] %s: %s\n", ts, strings.ToUpper(t.role), t.text)
	}
	fmt.Fprintln(w, "\n"+strings.Repeat("-", 60))
}
