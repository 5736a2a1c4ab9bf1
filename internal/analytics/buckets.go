package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// MonthlyRecords re-buckets daily records by calendar month (YYYY-MM).
// Averages are recomputed from the summed totals, never averaged across
// buckets.
func MonthlyRecords(daily []models.DailyRecord) []models.MonthlyRecord {
	buckets := make(map[string]*models.MonthlyRecord)
	for _, r := range sortedByDate(daily) {
		if len(r.Date) < 7 {
			continue
		}
		month := r.Date[:7]
		b := buckets[month]
		if b == nil {
			b = &models.MonthlyRecord{Month: month}
			buckets[month] = b
		}
		b.TotalChats += r.TotalChats
		b.TotalMessages += r.TotalMessages
		b.ContentTotals.Add(r.ContentTotals)
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]models.MonthlyRecord, 0, len(months))
	for _, m := range months {
		b := buckets[m]
		b.AvgMessagesPerChat = safeDiv(float64(b.TotalMessages), float64(b.TotalChats))
		out = append(out, *b)
	}
	return out
}

// WeeklyRecords re-buckets daily records by ISO week, labeled with the
// week's Monday.
func WeeklyRecords(daily []models.DailyRecord) []models.WeeklyRecord {
	type weekBucket struct {
		record models.WeeklyRecord
	}
	buckets := make(map[string]*weekBucket)
	for _, r := range sortedByDate(daily) {
		day, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			continue
		}
		year, week := day.ISOWeek()
		key := fmt.Sprintf("%04d-W%02d", year, week)
		b := buckets[key]
		if b == nil {
			b = &weekBucket{record: models.WeeklyRecord{Monday: mondayOf(day).Format(dateLayout)}}
			buckets[key] = b
		}
		b.record.TotalChats += r.TotalChats
		b.record.TotalMessages += r.TotalMessages
		b.record.ContentTotals.Add(r.ContentTotals)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.WeeklyRecord, 0, len(keys))
	for _, k := range keys {
		rec := buckets[k].record
		rec.AvgMessagesPerChat = safeDiv(float64(rec.TotalMessages), float64(rec.TotalChats))
		out = append(out, rec)
	}
	return out
}

func mondayOf(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7 // Monday-first weekday index
	return day.AddDate(0, 0, -offset)
}

// weekdayIndex maps time.Weekday to the Monday=0..Sunday=6 convention the
// payload uses.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
