package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jasperwreed/chatgpt-stats/internal/analytics"
	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// WriteFiles writes the per-conversation, per-day, and gap artifacts into
// dir, each as JSON and CSV. The gap files are only written when gaps
// exist. Returns the paths written.
func WriteFiles(dir string, result analytics.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	write := func(name string, fn func(path string) error) error {
		path := filepath.Join(dir, name)
		if err := fn(path); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	if err := write("chat_summaries.json", func(p string) error {
		return writeJSON(p, result.Summaries)
	}); err != nil {
		return written, err
	}
	if err := write("chat_summaries.csv", func(p string) error {
		return writeSummariesCSV(p, result.Summaries)
	}); err != nil {
		return written, err
	}
	if err := write("daily_stats.json", func(p string) error {
		return writeJSON(p, result.Daily)
	}); err != nil {
		return written, err
	}
	if err := write("daily_stats.csv", func(p string) error {
		return writeDailyCSV(p, result.Daily)
	}); err != nil {
		return written, err
	}

	if len(result.Gaps) > 0 {
		if err := write("message_gaps.json", func(p string) error {
			return writeJSON(p, result.Gaps)
		}); err != nil {
			return written, err
		}
		if err := write("message_gaps.csv", func(p string) error {
			return writeGapsCSV(p, result.Gaps)
		}); err != nil {
			return written, err
		}
	}

	return written, nil
}

// WritePayload writes the full payload document as indented JSON.
func WritePayload(path string, payload analytics.Payload) error {
	return writeJSON(path, payload)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSummariesCSV(path string, summaries []models.ConversationSummary) error {
	return writeCSV(path,
		[]string{"id", "title", "date", "created_at", "updated_at", "message_count",
			"duration_minutes", "user_words", "assistant_words", "response_ratio",
			"code_languages", "first_user_message"},
		len(summaries),
		func(i int) []string {
			s := summaries[i]
			return []string{
				s.ID, s.Title, s.Date, s.CreatedAt, s.UpdatedAt,
				strconv.Itoa(s.MessageCount),
				formatFloat(s.DurationMinutes),
				strconv.Itoa(s.UserWords),
				strconv.Itoa(s.AssistantWords),
				formatFloat(s.ResponseRatio),
				strings.Join(s.CodeLanguages, ";"),
				s.FirstUserMessage,
			}
		})
}

func writeDailyCSV(path string, daily []models.DailyRecord) error {
	return writeCSV(path,
		[]string{"date", "total_chats", "total_messages", "avg_messages_per_chat",
			"max_messages_in_chat", "user_words", "assistant_words"},
		len(daily),
		func(i int) []string {
			d := daily[i]
			return []string{
				d.Date,
				strconv.Itoa(d.TotalChats),
				strconv.Itoa(d.TotalMessages),
				formatFloat(d.AvgMessagesPerChat),
				strconv.Itoa(d.MaxMessagesInChat),
				strconv.Itoa(d.UserWords),
				strconv.Itoa(d.AssistantWords),
			}
		})
}

func writeGapsCSV(path string, gaps []models.GapRecord) error {
	return writeCSV(path,
		[]string{"start_timestamp", "end_timestamp", "length_days"},
		len(gaps),
		func(i int) []string {
			g := gaps[i]
			return []string{g.StartTimestamp, g.EndTimestamp, formatFloat(g.LengthDays)}
		})
}

func writeCSV(path string, header []string, n int, row func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
