// Package report renders analytics results for the terminal and writes
// the JSON/CSV artifacts the stats command produces.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/jasperwreed/chatgpt-stats/internal/analytics"
	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true)
)

// PrintSummary writes the headline report for a computed payload.
func PrintSummary(w io.Writer, p analytics.Payload) {
	fmt.Fprintln(w, headerStyle.Render("ChatGPT Usage Summary"))
	fmt.Fprintln(w)

	line(w, "Total conversations", fmt.Sprintf("%d", p.Summary.TotalChats))
	line(w, "Total messages", fmt.Sprintf("%d", p.Summary.TotalMessages))
	if p.Summary.FirstDate != nil && p.Summary.LastDate != nil {
		line(w, "First activity", *p.Summary.FirstDate)
		line(w, "Last activity", *p.Summary.LastDate)
		line(w, "Span", fmt.Sprintf("%.1f years", p.Summary.YearsSpan))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("This Month"))
	printPeriod(w, p.Comparison.ThisMonth)
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("This Year"))
	printPeriod(w, p.Comparison.ThisYear)

	printTopDays(w, p.Summary)
	PrintInactivity(w, p.GapStats)
	printTopGaps(w, p.Gaps)

	if p.CodeStats.TotalConversationsWithCode > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Code"))
		line(w, "Conversations with code",
			fmt.Sprintf("%d (%.1f%%)", p.CodeStats.TotalConversationsWithCode, p.CodeStats.PctWithCode))
		for i, lc := range p.CodeStats.LanguageCounts {
			if i >= 5 {
				fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  ... and %d more languages", len(p.CodeStats.LanguageCounts)-i)))
				break
			}
			line(w, "  "+lc.Language, fmt.Sprintf("%d", lc.Count))
		}
	}
}

// PrintInactivity writes the gap breakdown section.
func PrintInactivity(w io.Writer, gaps analytics.GapAnalysisResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Inactivity"))
	if gaps.TotalDays == 0 {
		fmt.Fprintln(w, dimStyle.Render("  no dated activity found"))
		return
	}
	line(w, "Days observed", fmt.Sprintf("%d", gaps.TotalDays))
	line(w, "Days active", fmt.Sprintf("%d", gaps.DaysActive))
	line(w, "Days inactive", fmt.Sprintf("%d (%.1f%%)", gaps.DaysInactive, gaps.ProportionInactive))
	if gaps.LongestGap != nil {
		line(w, "Longest gap", fmt.Sprintf("%.1f days (from %s)",
			gaps.LongestGap.LengthDays, gaps.LongestGap.StartTimestamp))
	}
}

const (
	topDaysShown = 5
	topGapsShown = 20
)

// printTopDays shows the busiest days across the whole archive, ranked by
// chats and by messages.
func printTopDays(w io.Writer, s analytics.SummaryStats) {
	byChats := topDays(s.TopDaysByChats, func(r models.DailyRecord) int { return r.TotalChats })
	byMessages := topDays(s.TopDaysByMessages, func(r models.DailyRecord) int { return r.TotalMessages })
	if len(byChats) == 0 && len(byMessages) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Busiest Days"))
	if len(byChats) > 0 {
		fmt.Fprintln(w, labelStyle.Render("By chats:"))
		for _, r := range byChats {
			fmt.Fprintf(w, "  %s  %s\n", r.Date, valueStyle.Render(fmt.Sprintf("%d chats", r.TotalChats)))
		}
	}
	if len(byMessages) > 0 {
		fmt.Fprintln(w, labelStyle.Render("By messages:"))
		for _, r := range byMessages {
			fmt.Fprintf(w, "  %s  %s\n", r.Date, valueStyle.Render(fmt.Sprintf("%d messages", r.TotalMessages)))
		}
	}
}

// topDays re-ranks the year-grouped top-day records globally and keeps the
// first few.
func topDays(records []models.DailyRecord, metric func(models.DailyRecord) int) []models.DailyRecord {
	out := make([]models.DailyRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := metric(out[i]), metric(out[j])
		if mi != mj {
			return mi > mj
		}
		return out[i].Date < out[j].Date
	})
	if len(out) > topDaysShown {
		out = out[:topDaysShown]
	}
	return out
}

// printTopGaps shows the longest silences, longest first.
func printTopGaps(w io.Writer, gaps []models.GapRecord) {
	if len(gaps) == 0 {
		return
	}
	shown := gaps
	if len(shown) > topGapsShown {
		shown = shown[:topGapsShown]
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Longest Gaps"))
	for _, g := range shown {
		fmt.Fprintf(w, "  %s  %s -> %s\n",
			valueStyle.Render(fmt.Sprintf("%6.1f days", g.LengthDays)),
			g.StartTimestamp, g.EndTimestamp)
	}
	if len(gaps) > topGapsShown {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  ... %d more gaps", len(gaps)-topGapsShown)))
	}
}

func printPeriod(w io.Writer, s models.PeriodStats) {
	line(w, "Conversations", fmt.Sprintf("%d", s.Chats))
	line(w, "Messages", fmt.Sprintf("%d", s.Messages))
	line(w, "Avg messages/chat", fmt.Sprintf("%.2f", s.AvgMessages))
	if s.ProjectedChats != nil {
		line(w, "Projected chats", fmt.Sprintf("%.1f", *s.ProjectedChats))
	}
	if s.ProjectedMessages != nil {
		line(w, "Projected messages", fmt.Sprintf("%.1f", *s.ProjectedMessages))
	}
}

func line(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}
