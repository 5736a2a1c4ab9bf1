package models

import "time"

// FlatMessage is one user/assistant message on a conversation's active
// thread, with content metrics attached. Built by the flatten package and
// discarded after reduction.
type FlatMessage struct {
	Role          string
	Timestamp     time.Time
	HasTimestamp  bool
	Text          string
	WordCount     int
	CharCount     int
	HasCode       bool
	CodeLanguages []string
}

// ConversationSummary is the per-conversation reduction. Immutable once
// built.
type ConversationSummary struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Date             string   `json:"date"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
	MessageCount     int      `json:"message_count"`
	DurationMinutes  float64  `json:"duration_minutes"`
	UserWords        int      `json:"user_words"`
	AssistantWords   int      `json:"assistant_words"`
	ResponseRatio    float64  `json:"response_ratio"`
	CodeLanguages    []string `json:"code_languages"`
	FirstUserMessage string   `json:"first_user_message"`
}

// ContentTotals carries the word/char/message/code counters shared by
// daily, weekly, and monthly records.
type ContentTotals struct {
	UserWords         int `json:"user_words"`
	UserChars         int `json:"user_chars"`
	UserMsgs          int `json:"user_msgs"`
	UserCodeMsgs      int `json:"user_code_msgs"`
	AssistantWords    int `json:"assistant_words"`
	AssistantChars    int `json:"assistant_chars"`
	AssistantMsgs     int `json:"assistant_msgs"`
	AssistantCodeMsgs int `json:"assistant_code_msgs"`
}

// Add folds another set of totals into this one.
func (c *ContentTotals) Add(o ContentTotals) {
	c.UserWords += o.UserWords
	c.UserChars += o.UserChars
	c.UserMsgs += o.UserMsgs
	c.UserCodeMsgs += o.UserCodeMsgs
	c.AssistantWords += o.AssistantWords
	c.AssistantChars += o.AssistantChars
	c.AssistantMsgs += o.AssistantMsgs
	c.AssistantCodeMsgs += o.AssistantCodeMsgs
}

// DailyRecord aggregates every conversation whose day is Date (ISO-8601,
// the unique bucketing key).
type DailyRecord struct {
	Date               string  `json:"date"`
	TotalChats         int     `json:"total_chats"`
	TotalMessages      int     `json:"total_messages"`
	AvgMessagesPerChat float64 `json:"avg_messages_per_chat"`
	MaxMessagesInChat  int     `json:"max_messages_in_chat"`
	ContentTotals
}

// WeeklyRecord has the daily shape keyed by ISO week, labeled with that
// week's Monday. Derived, never persisted.
type WeeklyRecord struct {
	Monday             string  `json:"monday"`
	TotalChats         int     `json:"total_chats"`
	TotalMessages      int     `json:"total_messages"`
	AvgMessagesPerChat float64 `json:"avg_messages_per_chat"`
	ContentTotals
}

// MonthlyRecord has the daily shape keyed by calendar month (YYYY-MM).
type MonthlyRecord struct {
	Month              string  `json:"month"`
	TotalChats         int     `json:"total_chats"`
	TotalMessages      int     `json:"total_messages"`
	AvgMessagesPerChat float64 `json:"avg_messages_per_chat"`
	ContentTotals
}

// GapRecord is one silence between two consecutive messages across the
// whole archive.
type GapRecord struct {
	StartTimestamp string  `json:"start_timestamp"`
	EndTimestamp   string  `json:"end_timestamp"`
	LengthDays     float64 `json:"length_days"`
}

// ActivityYearRecord is one row of the per-year active/inactive breakdown.
// Year is a 4-digit string, or "Overall" for the synthetic total row.
type ActivityYearRecord struct {
	Year         string  `json:"year"`
	TotalDays    int     `json:"total_days"`
	DaysActive   int     `json:"days_active"`
	DaysInactive int     `json:"days_inactive"`
	PctActive    float64 `json:"pct_active"`
	PctInactive  float64 `json:"pct_inactive"`
}

// PeriodStats is one bucket of the period comparison. The projection fields
// are set only on current (partial) periods; completed periods have nothing
// to project and omit them.
type PeriodStats struct {
	Chats             int      `json:"chats"`
	Messages          int      `json:"messages"`
	AvgMessages       float64  `json:"avg_messages"`
	ElapsedDays       *int     `json:"elapsed_days,omitempty"`
	TotalDays         *int     `json:"total_days,omitempty"`
	ProjectedChats    *float64 `json:"projected_chats,omitempty"`
	ProjectedMessages *float64 `json:"projected_messages,omitempty"`
}

// PeriodComparison holds month-over-month and year-over-year buckets.
type PeriodComparison struct {
	ThisMonth PeriodStats `json:"this_month"`
	LastMonth PeriodStats `json:"last_month"`
	ThisYear  PeriodStats `json:"this_year"`
	LastYear  PeriodStats `json:"last_year"`
}
