package analytics

import (
	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// Series is one metric line for the daily charts: raw values plus the
// rolling and lifetime averages the dashboard overlays.
type Series struct {
	Values      []float64 `json:"values"`
	Avg7d       []float64 `json:"avg_7d"`
	Avg28d      []float64 `json:"avg_28d"`
	AvgLifetime []float64 `json:"avg_lifetime"`
}

func buildSeries(values []float64) Series {
	return Series{
		Values:      values,
		Avg7d:       rolledRounded(values, 7),
		Avg28d:      rolledRounded(values, 28),
		AvgLifetime: expandingRounded(values),
	}
}

// ChartData is the daily time-series block of the payload.
type ChartData struct {
	Dates         []string `json:"dates"`
	Chats         Series   `json:"chats"`
	AvgMessages   Series   `json:"avg_messages"`
	TotalMessages Series   `json:"total_messages"`
}

// ComputeChartData builds the daily chart series, sorting records
// defensively by date first.
func ComputeChartData(daily []models.DailyRecord) ChartData {
	records := sortedByDate(daily)
	dates := make([]string, 0, len(records))
	chats := make([]float64, 0, len(records))
	avgMsgs := make([]float64, 0, len(records))
	totalMsgs := make([]float64, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.Date)
		chats = append(chats, float64(r.TotalChats))
		avgMsgs = append(avgMsgs, r.AvgMessagesPerChat)
		totalMsgs = append(totalMsgs, float64(r.TotalMessages))
	}
	return ChartData{
		Dates:         dates,
		Chats:         buildSeries(chats),
		AvgMessages:   buildSeries(avgMsgs),
		TotalMessages: buildSeries(totalMsgs),
	}
}

// MonthlyData is the monthly overview block.
type MonthlyData struct {
	Months        []string  `json:"months"`
	Chats         []int     `json:"chats"`
	Messages      []int     `json:"messages"`
	AvgMessages   []float64 `json:"avg_messages"`
	ChatsAvg3m    []float64 `json:"chats_avg_3m"`
	MessagesAvg3m []float64 `json:"messages_avg_3m"`
}

// ComputeMonthlyData aggregates daily records into the monthly overview
// series with 3-month rolling averages.
func ComputeMonthlyData(daily []models.DailyRecord) MonthlyData {
	records := MonthlyRecords(daily)
	months := make([]string, 0, len(records))
	chats := make([]int, 0, len(records))
	messages := make([]int, 0, len(records))
	avgMessages := make([]float64, 0, len(records))
	for _, r := range records {
		months = append(months, r.Month)
		chats = append(chats, r.TotalChats)
		messages = append(messages, r.TotalMessages)
		avgMessages = append(avgMessages, r.AvgMessagesPerChat)
	}
	return MonthlyData{
		Months:        months,
		Chats:         chats,
		Messages:      messages,
		AvgMessages:   avgMessages,
		ChatsAvg3m:    rolledRounded(toFloats(chats), 3),
		MessagesAvg3m: rolledRounded(toFloats(messages), 3),
	}
}

// WeeklyData is the weekly trends block.
type WeeklyData struct {
	Weeks             []string  `json:"weeks"`
	Chats             []int     `json:"chats"`
	Messages          []int     `json:"messages"`
	AvgMessages       []float64 `json:"avg_messages"`
	ChatsAvg4w        []float64 `json:"chats_avg_4w"`
	ChatsAvg12w       []float64 `json:"chats_avg_12w"`
	MessagesAvg4w     []float64 `json:"messages_avg_4w"`
	MessagesAvg12w    []float64 `json:"messages_avg_12w"`
	AvgMessagesAvg4w  []float64 `json:"avg_messages_avg_4w"`
	AvgMessagesAvg12w []float64 `json:"avg_messages_avg_12w"`
}

// ComputeWeeklyData aggregates daily records into ISO-week series with
// 4- and 12-week rolling averages.
func ComputeWeeklyData(daily []models.DailyRecord) WeeklyData {
	records := WeeklyRecords(daily)
	weeks := make([]string, 0, len(records))
	chats := make([]int, 0, len(records))
	messages := make([]int, 0, len(records))
	avgMessages := make([]float64, 0, len(records))
	for _, r := range records {
		weeks = append(weeks, r.Monday)
		chats = append(chats, r.TotalChats)
		messages = append(messages, r.TotalMessages)
		avgMessages = append(avgMessages, r.AvgMessagesPerChat)
	}
	return WeeklyData{
		Weeks:             weeks,
		Chats:             chats,
		Messages:          messages,
		AvgMessages:       avgMessages,
		ChatsAvg4w:        rolledRounded(toFloats(chats), 4),
		ChatsAvg12w:       rolledRounded(toFloats(chats), 12),
		MessagesAvg4w:     rolledRounded(toFloats(messages), 4),
		MessagesAvg12w:    rolledRounded(toFloats(messages), 12),
		AvgMessagesAvg4w:  rolledRounded(avgMessages, 4),
		AvgMessagesAvg12w: rolledRounded(avgMessages, 12),
	}
}

func toFloats(ints []int) []float64 {
	out := make([]float64, len(ints))
	for i, v := range ints {
		out[i] = float64(v)
	}
	return out
}
