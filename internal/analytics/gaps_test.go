package analytics

import (
	"testing"
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

func TestComputeGapAnalysis_Basic(t *testing.T) {
	timestamps := []time.Time{
		utc(2024, time.January, 1, 12, 0),
		utc(2024, time.January, 2, 12, 0),
		utc(2024, time.January, 12, 12, 0),
	}

	result := ComputeGapAnalysis(timestamps)

	if len(result.Gaps) != 2 {
		t.Fatalf("got %d gaps, want 2", len(result.Gaps))
	}
	if result.Gaps[0].LengthDays != 10 {
		t.Errorf("longest gap = %v days, want 10", result.Gaps[0].LengthDays)
	}
	if result.Gaps[1].LengthDays != 1 {
		t.Errorf("second gap = %v days, want 1", result.Gaps[1].LengthDays)
	}
	if result.LongestGap == nil || result.LongestGap.LengthDays != 10 {
		t.Errorf("LongestGap = %+v", result.LongestGap)
	}
	if result.TotalDays != 12 {
		t.Errorf("TotalDays = %d, want 12", result.TotalDays)
	}
	if result.DaysActive != 3 {
		t.Errorf("DaysActive = %d, want 3", result.DaysActive)
	}
	if result.DaysInactive != 9 {
		t.Errorf("DaysInactive = %d, want 9", result.DaysInactive)
	}
	if result.ProportionInactive != 75 {
		t.Errorf("ProportionInactive = %v, want 75", result.ProportionInactive)
	}
}

func TestComputeGapAnalysis_UnsortedInput(t *testing.T) {
	timestamps := []time.Time{
		utc(2024, time.January, 12, 12, 0),
		utc(2024, time.January, 1, 12, 0),
		utc(2024, time.January, 2, 12, 0),
	}
	result := ComputeGapAnalysis(timestamps)
	if len(result.Gaps) != 2 || result.Gaps[0].LengthDays != 10 {
		t.Fatalf("unsorted input should produce the same gaps, got %+v", result.Gaps)
	}
}

func TestComputeGapAnalysis_SingleTimestamp(t *testing.T) {
	result := ComputeGapAnalysis([]time.Time{utc(2024, time.June, 1, 9, 0)})
	if len(result.Gaps) != 0 {
		t.Errorf("got %d gaps, want 0", len(result.Gaps))
	}
	if result.TotalDays != 1 || result.DaysActive != 1 || result.DaysInactive != 0 {
		t.Errorf("day counts = %d/%d/%d, want 1/1/0",
			result.TotalDays, result.DaysActive, result.DaysInactive)
	}
	if result.LongestGap != nil {
		t.Errorf("LongestGap should be nil, got %+v", result.LongestGap)
	}
}

func TestComputeGapAnalysis_Empty(t *testing.T) {
	result := ComputeGapAnalysis(nil)
	if result.Gaps == nil || len(result.Gaps) != 0 {
		t.Errorf("Gaps should be empty non-nil, got %v", result.Gaps)
	}
	if result.TotalDays != 0 || result.ProportionInactive != 0 {
		t.Errorf("empty input should yield zeroes, got %+v", result)
	}
}

func TestTopGapsPerYear_RanksWithinEachYear(t *testing.T) {
	gap := func(year string, days float64) models.GapRecord {
		return models.GapRecord{
			StartTimestamp: year + "-06-01T00:00:00Z",
			EndTimestamp:   year + "-06-30T00:00:00Z",
			LengthDays:     days,
		}
	}
	gaps := []models.GapRecord{
		gap("2023", 30), gap("2023", 20), gap("2023", 10),
		gap("2024", 2), gap("2024", 1),
	}

	top := TopGapsPerYear(gaps, 2)
	if len(top) != 4 {
		t.Fatalf("got %d gaps, want 2 per year", len(top))
	}
	// The quiet year keeps its own extremes even though every 2023 gap is
	// longer.
	var y2024 int
	for _, g := range top {
		if g.StartTimestamp[:4] == "2024" {
			y2024++
		}
	}
	if y2024 != 2 {
		t.Errorf("2024 kept %d gaps, want 2", y2024)
	}
	for i := 1; i < len(top); i++ {
		if top[i].LengthDays > top[i-1].LengthDays {
			t.Errorf("merged gaps not sorted descending at %d: %v", i, top)
		}
	}
}

func TestTopGapsPerYear_Empty(t *testing.T) {
	if got := TopGapsPerYear(nil, 25); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
