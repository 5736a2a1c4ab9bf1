package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// ComputePeriodComparison buckets daily records into this/last calendar
// month and year relative to ref. The two current (partial) buckets carry
// elapsed/total day counts and pro-rata projections; completed buckets
// never do.
func ComputePeriodComparison(daily []models.DailyRecord, ref time.Time) models.PeriodComparison {
	thisMonthKey := ref.Format("2006-01")
	lastMonthKey := ref.AddDate(0, 0, -ref.Day()).Format("2006-01") // last day of previous month
	thisYearKey := fmt.Sprintf("%04d", ref.Year())
	lastYearKey := fmt.Sprintf("%04d", ref.Year()-1)

	cmp := models.PeriodComparison{
		ThisMonth: periodBucket(daily, thisMonthKey),
		LastMonth: periodBucket(daily, lastMonthKey),
		ThisYear:  periodBucket(daily, thisYearKey),
		LastYear:  periodBucket(daily, lastYearKey),
	}

	monthDays := daysInMonth(ref.Year(), ref.Month())
	yearDays := daysInYear(ref.Year())
	addProjections(&cmp.ThisMonth, ref.Day(), monthDays)
	addProjections(&cmp.ThisYear, ref.YearDay(), yearDays)
	return cmp
}

// periodBucket sums the records whose date starts with prefix (YYYY for a
// year, YYYY-MM for a month).
func periodBucket(daily []models.DailyRecord, prefix string) models.PeriodStats {
	var stats models.PeriodStats
	for _, r := range daily {
		if !strings.HasPrefix(r.Date, prefix) {
			continue
		}
		stats.Chats += r.TotalChats
		stats.Messages += r.TotalMessages
	}
	stats.AvgMessages = safeDiv(float64(stats.Messages), float64(stats.Chats))
	return stats
}

func addProjections(stats *models.PeriodStats, elapsed, total int) {
	if elapsed <= 0 {
		elapsed = 1
	}
	factor := float64(total) / float64(elapsed)
	projChats := round2(float64(stats.Chats) * factor)
	projMsgs := round2(float64(stats.Messages) * factor)
	stats.ElapsedDays = &elapsed
	stats.TotalDays = &total
	stats.ProjectedChats = &projChats
	stats.ProjectedMessages = &projMsgs
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
