package analytics

import (
	"sort"
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/flatten"
	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

const dateLayout = "2006-01-02"

type dailyAccum struct {
	chats       int
	messages    int
	maxMessages int
	content     models.ContentTotals
}

// Process reduces raw conversations into per-conversation summaries, one
// aggregate record per calendar day, and the flat list of every valid
// message timestamp. Conversations that yield no datable messages are
// skipped; nothing record-level is ever fatal.
func Process(conversations []models.ConversationRecord) ([]models.ConversationSummary, []models.DailyRecord, []time.Time) {
	summaries := make([]models.ConversationSummary, 0, len(conversations))
	daily := make(map[string]*dailyAccum)
	var timestamps []time.Time

	for _, conv := range conversations {
		msgs := flatten.Flatten(conv)
		if len(msgs) == 0 {
			continue
		}

		summary, content, msgTimes, ok := reduceConversation(conv, msgs)
		if !ok {
			continue
		}
		timestamps = append(timestamps, msgTimes...)
		summaries = append(summaries, summary)

		acc := daily[summary.Date]
		if acc == nil {
			acc = &dailyAccum{}
			daily[summary.Date] = acc
		}
		acc.chats++
		acc.messages += summary.MessageCount
		if summary.MessageCount > acc.maxMessages {
			acc.maxMessages = summary.MessageCount
		}
		acc.content.Add(content)
	}

	return summaries, buildDailyRecords(daily), timestamps
}

// reduceConversation folds one flattened thread into a summary plus its
// content totals. A conversation with no valid timestamp anywhere (and no
// usable create_time) has no day to land on and is dropped.
func reduceConversation(conv models.ConversationRecord, msgs []models.FlatMessage) (models.ConversationSummary, models.ContentTotals, []time.Time, bool) {
	var (
		content   models.ContentTotals
		langs     = make(map[string]bool)
		start     time.Time
		end       time.Time
		haveRange bool
		msgTimes  []time.Time
	)

	for _, m := range msgs {
		for _, lang := range m.CodeLanguages {
			langs[lang] = true
		}
		switch m.Role {
		case "user":
			content.UserWords += m.WordCount
			content.UserChars += m.CharCount
			content.UserMsgs++
			if m.HasCode {
				content.UserCodeMsgs++
			}
		case "assistant":
			content.AssistantWords += m.WordCount
			content.AssistantChars += m.CharCount
			content.AssistantMsgs++
			if m.HasCode {
				content.AssistantCodeMsgs++
			}
		}
		if m.HasTimestamp {
			msgTimes = append(msgTimes, m.Timestamp)
			if !haveRange || m.Timestamp.Before(start) {
				start = m.Timestamp
			}
			if !haveRange || m.Timestamp.After(end) {
				end = m.Timestamp
			}
			haveRange = true
		}
	}

	if !haveRange {
		if !conv.CreateTime.Valid {
			return models.ConversationSummary{}, content, nil, false
		}
		start, end = conv.CreateTime.Time, conv.CreateTime.Time
	}

	created := start
	if conv.CreateTime.Valid && conv.CreateTime.Time.Before(start) {
		created = conv.CreateTime.Time
	}
	updated := end
	if conv.UpdateTime.Valid && conv.UpdateTime.Time.After(end) {
		updated = conv.UpdateTime.Time
	}

	summary := models.ConversationSummary{
		ID:               conv.ID,
		Title:            conv.Title,
		Date:             start.Format(dateLayout),
		CreatedAt:        created.Format(time.RFC3339),
		UpdatedAt:        updated.Format(time.RFC3339),
		MessageCount:     content.UserMsgs + content.AssistantMsgs,
		DurationMinutes:  round2(end.Sub(start).Minutes()),
		UserWords:        content.UserWords,
		AssistantWords:   content.AssistantWords,
		ResponseRatio:    safeDiv(float64(content.AssistantWords), float64(content.UserWords)),
		CodeLanguages:    sortedKeys(langs),
		FirstUserMessage: flatten.FirstUserMessage(msgs),
	}
	return summary, content, msgTimes, true
}

func buildDailyRecords(daily map[string]*dailyAccum) []models.DailyRecord {
	records := make([]models.DailyRecord, 0, len(daily))
	for date, acc := range daily {
		records = append(records, models.DailyRecord{
			Date:               date,
			TotalChats:         acc.chats,
			TotalMessages:      acc.messages,
			AvgMessagesPerChat: safeDiv(float64(acc.messages), float64(acc.chats)),
			MaxMessagesInChat:  acc.maxMessages,
			ContentTotals:      acc.content,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// sortedByDate returns a date-ascending copy. Bucketing never assumes its
// input arrives sorted.
func sortedByDate(records []models.DailyRecord) []models.DailyRecord {
	out := make([]models.DailyRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
