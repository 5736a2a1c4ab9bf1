package analytics

import (
	"sort"
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// GapAnalysisResult summarizes the silences between consecutive messages
// over the whole archive. The full gap list is one entry per consecutive
// message pair and can dwarf everything else on a big archive, so it
// never serializes here; the payload carries only the per-year top gaps
// under its own key.
type GapAnalysisResult struct {
	Gaps               []models.GapRecord `json:"-"`
	TotalDays          int                `json:"total_days"`
	DaysActive         int                `json:"days_active"`
	DaysInactive       int                `json:"days_inactive"`
	ProportionInactive float64            `json:"proportion_inactive"`
	LongestGap         *models.GapRecord  `json:"longest_gap"`
}

// ComputeGapAnalysis sorts the timestamps, measures every consecutive gap
// longer than zero, and derives the active/inactive day breakdown over the
// observed span (first to last day, inclusive).
func ComputeGapAnalysis(timestamps []time.Time) GapAnalysisResult {
	result := GapAnalysisResult{Gaps: []models.GapRecord{}}
	if len(timestamps) == 0 {
		return result
	}

	sorted := make([]time.Time, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	for i := 1; i < len(sorted); i++ {
		gapDays := sorted[i].Sub(sorted[i-1]).Seconds() / 86400
		if gapDays <= 0 {
			continue
		}
		result.Gaps = append(result.Gaps, models.GapRecord{
			StartTimestamp: sorted[i-1].Format(time.RFC3339),
			EndTimestamp:   sorted[i].Format(time.RFC3339),
			LengthDays:     gapDays,
		})
	}
	sort.SliceStable(result.Gaps, func(i, j int) bool {
		return result.Gaps[i].LengthDays > result.Gaps[j].LengthDays
	})

	activeDays := make(map[string]bool)
	for _, ts := range sorted {
		activeDays[ts.Format(dateLayout)] = true
	}
	first := dateOnly(sorted[0])
	last := dateOnly(sorted[len(sorted)-1])
	totalDays := int(last.Sub(first).Hours()/24) + 1

	result.TotalDays = totalDays
	result.DaysActive = len(activeDays)
	result.DaysInactive = totalDays - len(activeDays)
	result.ProportionInactive = safeDiv(float64(result.DaysInactive)*100, float64(totalDays))
	if len(result.Gaps) > 0 {
		longest := result.Gaps[0]
		result.LongestGap = &longest
	}
	return result
}

// topGapsPerYear caps how many gaps the payload keeps for each year.
const topGapsPerYear = 25

// TopGapsPerYear keeps the longest perYear gaps within each calendar year
// (keyed by the gap's start), merged and re-sorted longest-first. Ranking
// happens inside each year, so a quiet year keeps its own extremes no
// matter how loud other years are.
func TopGapsPerYear(gaps []models.GapRecord, perYear int) []models.GapRecord {
	sorted := make([]models.GapRecord, len(gaps))
	copy(sorted, gaps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].LengthDays > sorted[j].LengthDays })

	perYearCount := make(map[string]int)
	merged := make([]models.GapRecord, 0, len(sorted))
	for _, g := range sorted {
		if len(g.StartTimestamp) < 4 {
			continue
		}
		year := g.StartTimestamp[:4]
		if perYearCount[year] >= perYear {
			continue
		}
		perYearCount[year]++
		merged = append(merged, g)
	}
	return merged
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
