package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// ConversationRecord is one conversation from an OpenAI conversations.json
// export. The mapping is a parent/child graph addressed by node id, not a
// pointer tree; traversal lives in the flatten package.
type ConversationRecord struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	CreateTime  Timestamp              `json:"create_time"`
	UpdateTime  Timestamp              `json:"update_time"`
	CurrentNode string                 `json:"current_node"`
	Mapping     map[string]MappingNode `json:"mapping"`
}

// MappingNode is a single node in a conversation's message tree. Message is
// nil for placeholder/root nodes.
type MappingNode struct {
	ID       string      `json:"id"`
	Parent   *string     `json:"parent"`
	Children []string    `json:"children"`
	Message  *RawMessage `json:"message"`
}

type RawMessage struct {
	Author     *Author     `json:"author"`
	CreateTime Timestamp   `json:"create_time"`
	Content    *RawContent `json:"content"`
}

type Author struct {
	Role string `json:"role"`
}

// RawContent holds message parts. Parts stay raw because exports mix plain
// strings with structured fragments (attachments, multimodal references);
// non-string parts contribute nothing but must not fail decoding.
type RawContent struct {
	ContentType string            `json:"content_type"`
	Parts       []json.RawMessage `json:"parts"`
}

// Timestamp tolerates the timestamp shapes seen in exports: numeric epoch
// seconds (possibly fractional), ISO-8601 strings, or null. A value that
// cannot be interpreted decodes as the zero Timestamp rather than an error,
// so one bad field never aborts the archive.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f <= 0 {
			return nil
		}
		sec := int64(f)
		nsec := int64((f - float64(sec)) * 1e9)
		t.Time = time.Unix(sec, nsec).UTC()
		t.Valid = true
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, str); err == nil {
			t.Time = parsed.UTC()
			t.Valid = true
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}
