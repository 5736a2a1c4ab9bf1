package flatten

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

var fenceRe = regexp.MustCompile("```([A-Za-z0-9_+#.-]*)")

// ExtractText joins the plain-string parts of a message's content. Parts
// that are not plain strings (attachments, multimodal fragments) contribute
// nothing and are skipped.
func ExtractText(content *models.RawContent) string {
	if content == nil {
		return ""
	}
	var parts []string
	for _, raw := range content.Parts {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// CodeLanguages returns the deduplicated, sorted language tags of the
// fenced code blocks in text. Odd-numbered fences close blocks and are
// ignored; an opening fence without a language tag counts as "unspecified".
func CodeLanguages(text string) []string {
	matches := fenceRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	for i, m := range matches {
		if i%2 == 1 {
			continue
		}
		lang := strings.ToLower(m[1])
		if lang == "" {
			lang = "unspecified"
		}
		seen[lang] = true
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// contentMetrics fills the metric fields of a FlatMessage from its text.
func contentMetrics(text string) (wordCount, charCount int, hasCode bool, langs []string) {
	if strings.TrimSpace(text) != "" {
		wordCount = len(strings.Fields(text))
	}
	charCount = utf8.RuneCountInString(text)
	hasCode = strings.Contains(text, "```")
	if hasCode {
		langs = CodeLanguages(text)
	}
	return wordCount, charCount, hasCode, langs
}

// FirstUserMessage returns a preview of the first user message, truncated
// to 200 characters.
func FirstUserMessage(msgs []models.FlatMessage) string {
	for _, m := range msgs {
		if m.Role != "user" || m.Text == "" {
			continue
		}
		text := strings.TrimSpace(m.Text)
		if utf8.RuneCountInString(text) > 200 {
			return string([]rune(text)[:200]) + "..."
		}
		return text
	}
	return ""
}
