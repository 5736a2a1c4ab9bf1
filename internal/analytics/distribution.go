package analytics

import (
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

type lengthBucket struct {
	label string
	lo    int
	hi    int // inclusive; -1 means unbounded
}

var lengthBuckets = []lengthBucket{
	{"1-2", 1, 2},
	{"3-5", 3, 5},
	{"6-10", 6, 10},
	{"11-20", 11, 20},
	{"21-50", 21, 50},
	{"50+", 51, -1},
}

// LengthDistribution is the conversation-length histogram.
type LengthDistribution struct {
	Buckets []string `json:"buckets"`
	Counts  []int    `json:"counts"`
}

// ComputeLengthDistribution buckets conversations by message count. Each
// conversation lands in exactly one bucket; counts always sum to the input
// length.
func ComputeLengthDistribution(summaries []models.ConversationSummary) LengthDistribution {
	labels := make([]string, len(lengthBuckets))
	counts := make([]int, len(lengthBuckets))
	for i, b := range lengthBuckets {
		labels[i] = b.label
	}
	for _, s := range summaries {
		for i, b := range lengthBuckets {
			if s.MessageCount >= b.lo && (b.hi < 0 || s.MessageCount <= b.hi) {
				counts[i]++
				break
			}
		}
	}
	return LengthDistribution{Buckets: labels, Counts: counts}
}

// HourlyData is the hour-of-day by weekday activity grid. Weekday index 0
// is Monday. The totals duplicate what the grid holds, for callers that
// only want one axis.
type HourlyData struct {
	Heatmap       [7][24]int `json:"heatmap"`
	HourlyTotals  [24]int    `json:"hourly_totals"`
	WeekdayTotals [7]int     `json:"weekday_totals"`
}

// ComputeHourlyData increments the grid once per valid message timestamp.
func ComputeHourlyData(timestamps []time.Time) HourlyData {
	var data HourlyData
	for _, ts := range timestamps {
		wd := weekdayIndex(ts)
		hour := ts.Hour()
		data.Heatmap[wd][hour]++
		data.HourlyTotals[hour]++
		data.WeekdayTotals[wd]++
	}
	return data
}
