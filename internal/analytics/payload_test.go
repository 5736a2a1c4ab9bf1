package analytics

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

func TestBuild_EndToEnd(t *testing.T) {
	convs := []models.ConversationRecord{
		makeConversation("c1", utc(2024, time.January, 15, 9, 0),
			"explain goroutines", "sure, here is ```go\ncode\n```"),
		makeConversation("c2", utc(2024, time.January, 15, 14, 0),
			"hello", "hi", "more", "words"),
		makeConversation("c3", utc(2024, time.February, 10, 20, 0),
			"one question", "one answer"),
	}
	ref := utc(2024, time.February, 15, 12, 0)

	result := Build(convs, ref)
	p := result.Payload

	if p.GeneratedAt != "2024-02-15T12:00:00Z" {
		t.Errorf("generated_at = %q", p.GeneratedAt)
	}
	if p.Summary.TotalChats != 3 || p.Summary.TotalMessages != 8 {
		t.Errorf("summary totals = %d/%d, want 3/8", p.Summary.TotalChats, p.Summary.TotalMessages)
	}
	if len(p.Charts.Dates) != 2 {
		t.Errorf("chart dates = %v, want two active days", p.Charts.Dates)
	}
	if len(p.Monthly.Months) != 2 {
		t.Errorf("months = %v", p.Monthly.Months)
	}
	if p.Comparison.ThisMonth.Chats != 1 || p.Comparison.LastMonth.Chats != 2 {
		t.Errorf("comparison = %+v", p.Comparison)
	}
	if p.CodeStats.TotalConversationsWithCode != 1 {
		t.Errorf("code stats = %+v", p.CodeStats)
	}
	if len(p.ActivityByYear) != 2 || p.ActivityByYear[0].Year != "Overall" {
		t.Errorf("activity_by_year = %+v", p.ActivityByYear)
	}
	if len(result.Summaries) != 3 || len(result.Daily) != 2 {
		t.Errorf("intermediates = %d summaries / %d daily", len(result.Summaries), len(result.Daily))
	}

	// Re-bucketing conserves totals across every granularity.
	var weeklySum, monthlySum int
	for _, v := range p.Weekly.Messages {
		weeklySum += v
	}
	for _, v := range p.Monthly.Messages {
		monthlySum += v
	}
	if weeklySum != 8 || monthlySum != 8 {
		t.Errorf("re-bucketed totals = %d/%d, want 8/8", weeklySum, monthlySum)
	}
}

func TestBuild_PayloadKeys(t *testing.T) {
	convs := []models.ConversationRecord{
		makeConversation("c1", utc(2024, time.March, 1, 9, 0), "hello", "hi"),
	}
	raw, err := json.Marshal(Build(convs, utc(2024, time.March, 2, 0, 0)).Payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{
		"generated_at", "summary", "charts", "gaps", "gap_stats",
		"monthly", "weekly", "hourly", "length_distribution", "comparison",
		"activity_by_year", "content_charts", "content_weekly",
		"content_monthly", "code_stats", "content_summary",
	} {
		if _, ok := doc[key]; !ok {
			t.Errorf("payload missing key %q", key)
		}
	}
}

func TestBuild_GapStatsOmitsFullGapList(t *testing.T) {
	// One short conversation every other day within a single year, giving
	// far more consecutive-message gaps than the per-year cap keeps.
	var convs []models.ConversationRecord
	start := utc(2024, time.January, 1, 12, 0)
	for i := 0; i <= 40; i++ {
		convs = append(convs, makeConversation(fmt.Sprintf("c%02d", i),
			start.AddDate(0, 0, i*2), "hello", "hi"))
	}

	p := Build(convs, utc(2024, time.June, 1, 0, 0)).Payload
	if len(p.Gaps) != topGapsPerYear {
		t.Fatalf("top-level gaps = %d, want capped at %d", len(p.Gaps), topGapsPerYear)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc struct {
		Gaps     []json.RawMessage          `json:"gaps"`
		GapStats map[string]json.RawMessage `json:"gap_stats"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Gaps) != topGapsPerYear {
		t.Errorf("serialized gaps = %d, want %d", len(doc.Gaps), topGapsPerYear)
	}
	if _, ok := doc.GapStats["gaps"]; ok {
		t.Errorf("gap_stats must not carry the uncapped gap list")
	}
	for _, key := range []string{"total_days", "days_active", "days_inactive", "proportion_inactive", "longest_gap"} {
		if _, ok := doc.GapStats[key]; !ok {
			t.Errorf("gap_stats missing %q", key)
		}
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	result := Build(nil, utc(2024, time.March, 2, 0, 0))
	p := result.Payload

	if p.Summary.TotalChats != 0 {
		t.Errorf("total_chats = %d, want 0", p.Summary.TotalChats)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Collections marshal as empty arrays, never null.
	for _, key := range []string{"gaps", "activity_by_year"} {
		if _, ok := doc[key].([]any); !ok {
			t.Errorf("%q should be an array, got %T", key, doc[key])
		}
	}
	charts, ok := doc["charts"].(map[string]any)
	if !ok {
		t.Fatalf("charts missing")
	}
	if _, ok := charts["dates"].([]any); !ok {
		t.Errorf("charts.dates should be an array, got %T", charts["dates"])
	}
}
