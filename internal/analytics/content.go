package analytics

import (
	"sort"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// ContentSeries is one content-metric line with its rolling averages.
type ContentSeries struct {
	Values []float64 `json:"values"`
	Avg7d  []float64 `json:"avg_7d"`
	Avg28d []float64 `json:"avg_28d"`
}

func buildContentSeries(values []float64) ContentSeries {
	return ContentSeries{
		Values: values,
		Avg7d:  rolledRounded(values, 7),
		Avg28d: rolledRounded(values, 28),
	}
}

// ContentSeriesSet holds the five derived content metrics aligned to one
// label axis.
type ContentSeriesSet struct {
	AvgUserWords      ContentSeries `json:"avg_user_words"`
	AvgAssistantWords ContentSeries `json:"avg_assistant_words"`
	ResponseRatio     ContentSeries `json:"response_ratio"`
	CodePctUser       ContentSeries `json:"code_pct_user"`
	CodePctAssistant  ContentSeries `json:"code_pct_assistant"`
}

func buildContentSeriesSet(totals []models.ContentTotals) ContentSeriesSet {
	n := len(totals)
	avgUser := make([]float64, 0, n)
	avgAssistant := make([]float64, 0, n)
	ratio := make([]float64, 0, n)
	codeUser := make([]float64, 0, n)
	codeAssistant := make([]float64, 0, n)
	for _, t := range totals {
		avgUser = append(avgUser, safeDiv(float64(t.UserWords), float64(t.UserMsgs)))
		avgAssistant = append(avgAssistant, safeDiv(float64(t.AssistantWords), float64(t.AssistantMsgs)))
		ratio = append(ratio, safeDiv(float64(t.AssistantWords), float64(t.UserWords)))
		codeUser = append(codeUser, round1(safeDiv(float64(t.UserCodeMsgs)*100, float64(t.UserMsgs))))
		codeAssistant = append(codeAssistant, round1(safeDiv(float64(t.AssistantCodeMsgs)*100, float64(t.AssistantMsgs))))
	}
	return ContentSeriesSet{
		AvgUserWords:      buildContentSeries(avgUser),
		AvgAssistantWords: buildContentSeries(avgAssistant),
		ResponseRatio:     buildContentSeries(ratio),
		CodePctUser:       buildContentSeries(codeUser),
		CodePctAssistant:  buildContentSeries(codeAssistant),
	}
}

// ContentDaily is the daily content-metrics block.
type ContentDaily struct {
	Dates []string `json:"dates"`
	ContentSeriesSet
}

// ComputeContentChartData derives the daily word/ratio/code-percentage
// series with rolling averages.
func ComputeContentChartData(daily []models.DailyRecord) ContentDaily {
	records := sortedByDate(daily)
	dates := make([]string, 0, len(records))
	totals := make([]models.ContentTotals, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.Date)
		totals = append(totals, r.ContentTotals)
	}
	return ContentDaily{Dates: dates, ContentSeriesSet: buildContentSeriesSet(totals)}
}

// ContentWeekly is the weekly content-metrics block, labeled by Monday.
type ContentWeekly struct {
	Weeks []string `json:"weeks"`
	ContentSeriesSet
}

// ComputeContentWeeklyData aggregates content metrics by ISO week before
// deriving the ratio series, so averages weight by summed totals.
func ComputeContentWeeklyData(daily []models.DailyRecord) ContentWeekly {
	records := WeeklyRecords(daily)
	weeks := make([]string, 0, len(records))
	totals := make([]models.ContentTotals, 0, len(records))
	for _, r := range records {
		weeks = append(weeks, r.Monday)
		totals = append(totals, r.ContentTotals)
	}
	return ContentWeekly{Weeks: weeks, ContentSeriesSet: buildContentSeriesSet(totals)}
}

// ContentMonthly is the monthly content-metrics block.
type ContentMonthly struct {
	Months []string `json:"months"`
	ContentSeriesSet
}

func ComputeContentMonthlyData(daily []models.DailyRecord) ContentMonthly {
	records := MonthlyRecords(daily)
	months := make([]string, 0, len(records))
	totals := make([]models.ContentTotals, 0, len(records))
	for _, r := range records {
		months = append(months, r.Month)
		totals = append(totals, r.ContentTotals)
	}
	return ContentMonthly{Months: months, ContentSeriesSet: buildContentSeriesSet(totals)}
}

// LanguageCount pairs a detected fence language with how many
// conversations used it.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// CodeStats is the code-usage breakdown across conversations.
type CodeStats struct {
	TotalConversationsWithCode int             `json:"total_conversations_with_code"`
	PctWithCode                float64         `json:"pct_with_code"`
	LanguageCounts             []LanguageCount `json:"language_counts"`
}

// ComputeCodeStats tallies how many conversations contain code and which
// languages appear, most frequent first.
func ComputeCodeStats(summaries []models.ConversationSummary) CodeStats {
	counter := make(map[string]int)
	withCode := 0
	for _, s := range summaries {
		if len(s.CodeLanguages) == 0 {
			continue
		}
		withCode++
		for _, lang := range s.CodeLanguages {
			counter[lang]++
		}
	}

	counts := make([]LanguageCount, 0, len(counter))
	for lang, n := range counter {
		counts = append(counts, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Language < counts[j].Language
	})

	pct := 0.0
	if len(summaries) > 0 {
		pct = round1(float64(withCode) / float64(len(summaries)) * 100)
	}
	return CodeStats{
		TotalConversationsWithCode: withCode,
		PctWithCode:                pct,
		LanguageCounts:             counts,
	}
}

// ContentSummary is the headline content figures shown as pills.
type ContentSummary struct {
	AvgUserWords             float64 `json:"avg_user_words"`
	AvgAssistantWords        float64 `json:"avg_assistant_words"`
	AvgResponseRatio         float64 `json:"avg_response_ratio"`
	PctConversationsWithCode float64 `json:"pct_conversations_with_code"`
}

// ComputeContentSummary averages word counts per conversation and reuses
// the code percentage from stats.
func ComputeContentSummary(summaries []models.ConversationSummary, codeStats CodeStats) ContentSummary {
	var userWords, assistantWords int
	for _, s := range summaries {
		userWords += s.UserWords
		assistantWords += s.AssistantWords
	}
	n := float64(len(summaries))
	out := ContentSummary{PctConversationsWithCode: codeStats.PctWithCode}
	if n > 0 {
		out.AvgUserWords = round1(float64(userWords) / n)
		out.AvgAssistantWords = round1(float64(assistantWords) / n)
	}
	out.AvgResponseRatio = safeDiv(float64(assistantWords), float64(userWords))
	return out
}
