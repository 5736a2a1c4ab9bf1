package cli

import (
	"encoding/json"
	"testing"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

func promptConv(texts ...string) models.ConversationRecord {
	mapping := make(map[string]models.MappingNode)
	for i, text := range texts {
		id := string(rune('a' + i))
		raw, _ := json.Marshal(text)
		mapping[id] = models.MappingNode{
			ID: id,
			Message: &models.RawMessage{
				Author:  &models.Author{Role: "user"},
				Content: &models.RawContent{ContentType: "text", Parts: []json.RawMessage{raw}},
			},
		}
	}
	return models.ConversationRecord{ID: "c", Mapping: mapping}
}

func TestExtractPrompts(t *testing.T) {
	convs := []models.ConversationRecord{
		promptConv("write a haiku", "fix this; it is broken"),
	}

	got := extractPrompts(convs, false)
	if len(got) != 2 {
		t.Fatalf("got %d prompts, want 2", len(got))
	}
	found := map[string]bool{}
	for _, p := range got {
		found[p] = true
	}
	if !found["write a haiku"] {
		t.Errorf("full prompt missing: %v", got)
	}
	if !found["fix this;"] {
		t.Errorf("prompt should stop at the first semicolon: %v", got)
	}
}

func TestExtractPrompts_FirstOnly(t *testing.T) {
	convs := []models.ConversationRecord{
		promptConv("no semicolon here", "keep this; drop that"),
	}
	got := extractPrompts(convs, true)
	if len(got) != 1 || got[0] != "keep this;" {
		t.Fatalf("got %v, want only the semicolon-terminated prompt", got)
	}
}

func TestExtractPrompts_SkipsAssistant(t *testing.T) {
	conv := promptConv("hello")
	raw, _ := json.Marshal("assistant reply")
	conv.Mapping["z"] = models.MappingNode{
		ID: "z",
		Message: &models.RawMessage{
			Author:  &models.Author{Role: "assistant"},
			Content: &models.RawContent{ContentType: "text", Parts: []json.RawMessage{raw}},
		},
	}
	got := extractPrompts([]models.ConversationRecord{conv}, false)
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("got %v, want just the user prompt", got)
	}
}
