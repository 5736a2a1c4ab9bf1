package flatten

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

func strPtr(s string) *string { return &s }

func node(id string, parent *string, children []string, role string, epoch float64, text string) models.MappingNode {
	n := models.MappingNode{ID: id, Parent: parent, Children: children}
	if role != "" {
		raw, _ := json.Marshal(text)
		n.Message = &models.RawMessage{
			Author:  &models.Author{Role: role},
			Content: &models.RawContent{Parts: []json.RawMessage{raw}},
		}
		if epoch > 0 {
			tsJSON, _ := json.Marshal(epoch)
			n.Message.CreateTime.UnmarshalJSON(tsJSON)
		}
	}
	return n
}

func linearConversation() models.ConversationRecord {
	return models.ConversationRecord{
		ID:    "conv-1",
		Title: "Test",
		Mapping: map[string]models.MappingNode{
			"root": node("root", nil, []string{"a"}, "", 0, ""),
			"a":    node("a", strPtr("root"), []string{"b"}, "user", 1700000000, "hello there"),
			"b":    node("b", strPtr("a"), []string{"c"}, "assistant", 1700000060, "hi, how can I help"),
			"c":    node("c", strPtr("b"), nil, "user", 1700000120, "write code"),
		},
	}
}

func TestFlatten_LinearThread(t *testing.T) {
	msgs := Flatten(linearConversation())
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	roles := []string{msgs[0].Role, msgs[1].Role, msgs[2].Role}
	if !reflect.DeepEqual(roles, []string{"user", "assistant", "user"}) {
		t.Errorf("roles = %v", roles)
	}
	if msgs[0].WordCount != 2 {
		t.Errorf("word count = %d, want 2", msgs[0].WordCount)
	}
	if !msgs[0].HasTimestamp {
		t.Error("expected valid timestamp on first message")
	}
}

func TestFlatten_SystemMessagesExcluded(t *testing.T) {
	conv := linearConversation()
	conv.Mapping["root"] = node("root", nil, []string{"a"}, "system", 1699999999, "system prompt")
	msgs := Flatten(conv)
	for _, m := range msgs {
		if m.Role == "system" {
			t.Fatal("system message leaked into output")
		}
	}
	if len(msgs) != 3 {
		t.Errorf("expected 3 messages, got %d", len(msgs))
	}
}

func TestFlatten_ToolMessagesExcluded(t *testing.T) {
	conv := linearConversation()
	conv.Mapping["b"] = node("b", strPtr("a"), []string{"c"}, "tool", 1700000060, "tool output")
	msgs := Flatten(conv)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
}

func TestFlatten_CycleDoesNotHang(t *testing.T) {
	conv := models.ConversationRecord{
		Mapping: map[string]models.MappingNode{
			"a": node("a", strPtr("b"), []string{"b"}, "user", 1700000000, "one"),
			"b": node("b", strPtr("a"), []string{"a"}, "assistant", 1700000060, "two"),
		},
	}
	msgs := Flatten(conv)
	if len(msgs) == 0 || len(msgs) > 2 {
		t.Fatalf("cycle traversal returned %d messages", len(msgs))
	}
}

func TestFlatten_DanglingParentTreatedAsRoot(t *testing.T) {
	conv := models.ConversationRecord{
		Mapping: map[string]models.MappingNode{
			"orphan": node("orphan", strPtr("gone"), nil, "user", 1700000000, "lost thread"),
		},
	}
	msgs := Flatten(conv)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message from orphan root, got %d", len(msgs))
	}
}

func TestFlatten_EmptyMapping(t *testing.T) {
	if msgs := Flatten(models.ConversationRecord{}); msgs != nil {
		t.Errorf("expected nil for empty mapping, got %v", msgs)
	}
}

func TestFlatten_NullMessageNodesSkipped(t *testing.T) {
	conv := models.ConversationRecord{
		Mapping: map[string]models.MappingNode{
			"root": node("root", nil, []string{"a"}, "", 0, ""),
			"a":    node("a", strPtr("root"), nil, "user", 1700000000, "hello"),
		},
	}
	msgs := Flatten(conv)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
}

func TestActiveThread_CurrentNodeWalk(t *testing.T) {
	conv := linearConversation()
	// A regenerated sibling of c that is newer, but current_node pins c.
	conv.Mapping["c2"] = node("c2", strPtr("b"), nil, "user", 1700000500, "edited")
	b := conv.Mapping["b"]
	b.Children = append(b.Children, "c2")
	conv.Mapping["b"] = b
	conv.CurrentNode = "c"

	order := ActiveThread(conv)
	want := []string{"root", "a", "b", "c"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("thread = %v, want %v", order, want)
	}
}

func TestActiveThread_MostRecentChildPolicy(t *testing.T) {
	conv := linearConversation()
	conv.Mapping["c2"] = node("c2", strPtr("b"), nil, "user", 1700000500, "edited")
	b := conv.Mapping["b"]
	b.Children = append(b.Children, "c2")
	conv.Mapping["b"] = b

	order := ActiveThread(conv)
	want := []string{"root", "a", "b", "c2"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("thread = %v, want %v", order, want)
	}
}

func TestNextChild_TieBreaksOnID(t *testing.T) {
	mapping := map[string]models.MappingNode{
		"p": node("p", nil, []string{"y", "x"}, "", 0, ""),
		"x": node("x", strPtr("p"), nil, "user", 1700000000, "x"),
		"y": node("y", strPtr("p"), nil, "user", 1700000000, "y"),
	}
	got := NextChild(mapping, "p", map[string]bool{})
	if got != "x" {
		t.Errorf("NextChild = %q, want x", got)
	}
}

func TestExtractText_SkipsStructuredParts(t *testing.T) {
	content := &models.RawContent{Parts: []json.RawMessage{
		json.RawMessage(`"plain text"`),
		json.RawMessage(`{"asset_pointer":"file-service://abc"}`),
		json.RawMessage(`"more text"`),
	}}
	if got := ExtractText(content); got != "plain text more text" {
		t.Errorf("ExtractText = %q", got)
	}
}

func TestExtractText_NilContent(t *testing.T) {
	if got := ExtractText(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestCodeLanguages(t *testing.T) {
	text := "look:\n```python\nprint(1)\n```\nand\n```Go\nfmt.Println(1)\n```\nand\n```\nplain\n```"
	got := CodeLanguages(text)
	want := []string{"go", "python", "unspecified"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CodeLanguages = %v, want %v", got, want)
	}
}

func TestCodeLanguages_NoFences(t *testing.T) {
	if got := CodeLanguages("no code here"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestFlatten_InvalidTimestampTolerated(t *testing.T) {
	conv := linearConversation()
	a := conv.Mapping["a"]
	a.Message.CreateTime = models.Timestamp{}
	conv.Mapping["a"] = a

	msgs := Flatten(conv)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].HasTimestamp {
		t.Error("message with invalid timestamp should report HasTimestamp=false")
	}
}

func TestFirstUserMessage(t *testing.T) {
	msgs := []models.FlatMessage{
		{Role: "assistant", Text: "hi"},
		{Role: "user", Text: "  the question  "},
	}
	if got := FirstUserMessage(msgs); got != "the question" {
		t.Errorf("FirstUserMessage = %q", got)
	}
	if got := FirstUserMessage(nil); got != "" {
		t.Errorf("expected empty for no messages, got %q", got)
	}
}
