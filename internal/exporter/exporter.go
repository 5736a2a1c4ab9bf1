// Package exporter writes conversations out as a formatted, human-readable
// text file, with an interactive picker for choosing which ones.
package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/flatten"
	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// DefaultOutputPath is where the export command writes unless told
// otherwise.
const DefaultOutputPath = "chat_exports/recent_conversations.txt"

const bannerWidth = 100

var blankRuns = regexp.MustCompile(`\n{3,}`)

// CleanText collapses runs of three or more newlines to a blank line and
// trims the edges.
func CleanText(s string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(s, "\n\n"))
}

func formatTime(t time.Time, ok bool) string {
	if !ok {
		return "Unknown time"
	}
	return t.Format("2006-01-02 15:04:05")
}

// SortNewestFirst orders conversations by create time descending, so the
// picker shows recent work first. Undated conversations sink to the end.
func SortNewestFirst(convs []models.ConversationRecord) []models.ConversationRecord {
	out := make([]models.ConversationRecord, len(convs))
	copy(out, convs)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].CreateTime, out[j].CreateTime
		if ti.Valid != tj.Valid {
			return ti.Valid
		}
		return ti.Time.After(tj.Time)
	})
	return out
}

// Preview renders the one-conversation blurb shown during selection.
func Preview(conv models.ConversationRecord, index int) string {
	title := conv.Title
	if title == "" {
		title = "Untitled Conversation"
	}
	msgs := flatten.Flatten(conv)
	first := flatten.FirstUserMessage(msgs)
	if first == "" {
		first = "[No user message found]"
	}
	return fmt.Sprintf("[%d] %s (%s)\nFirst message: %s\n",
		index, title, formatTime(conv.CreateTime.Time, conv.CreateTime.Valid), first)
}

// Write renders the selected conversations to w in the export text format:
// a file header, then each conversation under a boxed banner with indented
// user and assistant turns.
func Write(w io.Writer, convs []models.ConversationRecord, now time.Time) error {
	fmt.Fprintf(w, "CHATGPT CONVERSATION EXPORT\n")
	fmt.Fprintf(w, "Generated on: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Contains %d selected conversations\n", len(convs))
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", bannerWidth))

	for i, conv := range convs {
		writeConversation(w, conv, i+1)
	}
	return nil
}

func writeConversation(w io.Writer, conv models.ConversationRecord, index int) {
	title := conv.Title
	if title == "" {
		title = "Untitled Conversation"
	}

	edge := "+" + strings.Repeat("=", bannerWidth-2) + "+"
	fmt.Fprintln(w)
	fmt.Fprintln(w, edge)
	fmt.Fprintf(w, "|%-*s|\n", bannerWidth-2, fmt.Sprintf(" CONVERSATION #%d: %s", index, title))
	fmt.Fprintf(w, "|%-*s|\n", bannerWidth-2, " Date: "+formatTime(conv.CreateTime.Time, conv.CreateTime.Valid))
	fmt.Fprintln(w, edge)
	fmt.Fprintln(w)

	for _, m := range flatten.Flatten(conv) {
		ts := formatTime(m.Timestamp, m.HasTimestamp)
		switch m.Role {
		case "user":
			fmt.Fprintf(w, ">>> USER [%s]:\n", ts)
			writeIndented(w, m.Text, "    ")
		case "assistant":
			fmt.Fprintf(w, "    CHATGPT [%s]:\n", ts)
			writeIndented(w, m.Text, "        ")
		default:
			continue
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("*", bannerWidth))
}

func writeIndented(w io.Writer, text, indent string) {
	for _, line := range strings.Split(CleanText(text), "\n") {
		fmt.Fprintf(w, "%s%s\n", indent, line)
	}
}

// Export writes the selected conversations to path, creating parent
// directories as needed.
func Export(path string, convs []models.ConversationRecord, now time.Time) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()
	return Write(f, convs, now)
}
