package analytics

import (
	"sort"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

const topDaysPerYear = 10

// SummaryStats is the headline block at the top of the payload.
type SummaryStats struct {
	TotalMessages     int                  `json:"total_messages"`
	TotalChats        int                  `json:"total_chats"`
	FirstDate         *string              `json:"first_date"`
	LastDate          *string              `json:"last_date"`
	YearsSpan         float64              `json:"years_span"`
	TopDaysByChats    []models.DailyRecord `json:"top_days_by_chats"`
	TopDaysByMessages []models.DailyRecord `json:"top_days_by_messages"`
}

// ComputeSummaryStats totals the daily records and picks the busiest days
// within each calendar year.
func ComputeSummaryStats(daily []models.DailyRecord) SummaryStats {
	records := sortedByDate(daily)
	stats := SummaryStats{
		TopDaysByChats:    make([]models.DailyRecord, 0),
		TopDaysByMessages: make([]models.DailyRecord, 0),
	}
	for _, r := range records {
		stats.TotalChats += r.TotalChats
		stats.TotalMessages += r.TotalMessages
	}
	if len(records) == 0 {
		return stats
	}

	first := records[0].Date
	last := records[len(records)-1].Date
	stats.FirstDate = &first
	stats.LastDate = &last

	firstT, err1 := parseDate(first)
	lastT, err2 := parseDate(last)
	if err1 == nil && err2 == nil {
		stats.YearsSpan = round1(lastT.Sub(firstT).Hours() / 24 / 365.25)
	}

	stats.TopDaysByChats = topDaysByMetric(records, func(r models.DailyRecord) int { return r.TotalChats })
	stats.TopDaysByMessages = topDaysByMetric(records, func(r models.DailyRecord) int { return r.TotalMessages })
	return stats
}

// topDaysByMetric keeps the highest-scoring days of each year, ordered by
// metric descending with earlier dates breaking ties.
func topDaysByMetric(daily []models.DailyRecord, metric func(models.DailyRecord) int) []models.DailyRecord {
	byYear := make(map[string][]models.DailyRecord)
	for _, r := range daily {
		if len(r.Date) < 4 {
			continue
		}
		year := r.Date[:4]
		byYear[year] = append(byYear[year], r)
	}

	out := make([]models.DailyRecord, 0)
	for _, year := range sortedKeys(byYear) {
		records := byYear[year]
		sort.SliceStable(records, func(i, j int) bool {
			mi, mj := metric(records[i]), metric(records[j])
			if mi != mj {
				return mi > mj
			}
			return records[i].Date < records[j].Date
		})
		if len(records) > topDaysPerYear {
			records = records[:topDaysPerYear]
		}
		out = append(out, records...)
	}
	return out
}
