package analytics

import (
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// Payload is the full analytics document served to the dashboard and
// written by the stats command.
type Payload struct {
	GeneratedAt        string                      `json:"generated_at"`
	Summary            SummaryStats                `json:"summary"`
	Charts             ChartData                   `json:"charts"`
	Gaps               []models.GapRecord          `json:"gaps"`
	GapStats           GapAnalysisResult           `json:"gap_stats"`
	Monthly            MonthlyData                 `json:"monthly"`
	Weekly             WeeklyData                  `json:"weekly"`
	Hourly             HourlyData                  `json:"hourly"`
	LengthDistribution LengthDistribution          `json:"length_distribution"`
	Comparison         models.PeriodComparison     `json:"comparison"`
	ActivityByYear     []models.ActivityYearRecord `json:"activity_by_year"`
	ContentCharts      ContentDaily                `json:"content_charts"`
	ContentWeekly      ContentWeekly               `json:"content_weekly"`
	ContentMonthly     ContentMonthly              `json:"content_monthly"`
	CodeStats          CodeStats                   `json:"code_stats"`
	ContentSummary     ContentSummary              `json:"content_summary"`
}

// Result bundles the payload with the intermediate records the CLI also
// writes to disk.
type Result struct {
	Payload   Payload
	Summaries []models.ConversationSummary
	Daily     []models.DailyRecord
	Gaps      []models.GapRecord
}

// Build runs the whole pipeline over a decoded export. ref anchors the
// period comparison, normally time.Now.
func Build(conversations []models.ConversationRecord, ref time.Time) Result {
	summaries, daily, timestamps := Process(conversations)

	gapResult := ComputeGapAnalysis(timestamps)
	codeStats := ComputeCodeStats(summaries)

	payload := Payload{
		GeneratedAt:        ref.UTC().Format(time.RFC3339),
		Summary:            ComputeSummaryStats(daily),
		Charts:             ComputeChartData(daily),
		Gaps:               TopGapsPerYear(gapResult.Gaps, topGapsPerYear),
		GapStats:           gapResult,
		Monthly:            ComputeMonthlyData(daily),
		Weekly:             ComputeWeeklyData(daily),
		Hourly:             ComputeHourlyData(timestamps),
		LengthDistribution: ComputeLengthDistribution(summaries),
		Comparison:         ComputePeriodComparison(daily, ref),
		ActivityByYear:     ComputeActivityByYear(timestamps),
		ContentCharts:      ComputeContentChartData(daily),
		ContentWeekly:      ComputeContentWeeklyData(daily),
		ContentMonthly:     ComputeContentMonthlyData(daily),
		CodeStats:          codeStats,
		ContentSummary:     ComputeContentSummary(summaries, codeStats),
	}

	return Result{
		Payload:   payload,
		Summaries: summaries,
		Daily:     daily,
		Gaps:      gapResult.Gaps,
	}
}
