package analytics

import (
	"fmt"
	"testing"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

func TestComputeSummaryStats_Totals(t *testing.T) {
	daily := []models.DailyRecord{
		makeDaily("2023-06-01", 2, 8),
		makeDaily("2024-06-01", 3, 12),
	}

	stats := ComputeSummaryStats(daily)

	if stats.TotalChats != 5 || stats.TotalMessages != 20 {
		t.Errorf("totals = %d/%d, want 5/20", stats.TotalChats, stats.TotalMessages)
	}
	if stats.FirstDate == nil || *stats.FirstDate != "2023-06-01" {
		t.Errorf("first_date = %v", stats.FirstDate)
	}
	if stats.LastDate == nil || *stats.LastDate != "2024-06-01" {
		t.Errorf("last_date = %v", stats.LastDate)
	}
	if stats.YearsSpan != 1 {
		t.Errorf("years_span = %v, want 1", stats.YearsSpan)
	}
}

func TestComputeSummaryStats_TopDaysPerYear(t *testing.T) {
	var daily []models.DailyRecord
	// Twelve 2023 days with chats 1..12, and one quiet 2024 day.
	for i := 1; i <= 12; i++ {
		daily = append(daily, makeDaily(fmt.Sprintf("2023-03-%02d", i), i, i*2))
	}
	daily = append(daily, makeDaily("2024-01-05", 1, 1))

	stats := ComputeSummaryStats(daily)

	if len(stats.TopDaysByChats) != 11 {
		t.Fatalf("got %d top days, want 10 from 2023 + 1 from 2024", len(stats.TopDaysByChats))
	}
	// 2023's block is metric-descending and keeps only its own top ten.
	if stats.TopDaysByChats[0].TotalChats != 12 {
		t.Errorf("top 2023 day has %d chats, want 12", stats.TopDaysByChats[0].TotalChats)
	}
	if stats.TopDaysByChats[9].TotalChats != 3 {
		t.Errorf("tenth 2023 day has %d chats, want 3", stats.TopDaysByChats[9].TotalChats)
	}
	// The quiet year keeps its own busiest day regardless of other years.
	last := stats.TopDaysByChats[10]
	if last.Date != "2024-01-05" {
		t.Errorf("2024 entry = %+v", last)
	}
}

func TestComputeSummaryStats_TopDaysMetricsIndependent(t *testing.T) {
	daily := []models.DailyRecord{
		makeDaily("2024-01-01", 10, 10), // most chats
		makeDaily("2024-01-02", 1, 100), // most messages
	}
	stats := ComputeSummaryStats(daily)
	if stats.TopDaysByChats[0].Date != "2024-01-01" {
		t.Errorf("top by chats = %s", stats.TopDaysByChats[0].Date)
	}
	if stats.TopDaysByMessages[0].Date != "2024-01-02" {
		t.Errorf("top by messages = %s", stats.TopDaysByMessages[0].Date)
	}
}

func TestComputeSummaryStats_Empty(t *testing.T) {
	stats := ComputeSummaryStats(nil)
	if stats.TotalChats != 0 || stats.TotalMessages != 0 {
		t.Errorf("totals = %d/%d, want 0/0", stats.TotalChats, stats.TotalMessages)
	}
	if stats.FirstDate != nil || stats.LastDate != nil {
		t.Errorf("dates should be nil on empty input")
	}
	if stats.TopDaysByChats == nil || stats.TopDaysByMessages == nil {
		t.Errorf("top day slices should be empty non-nil")
	}
}
