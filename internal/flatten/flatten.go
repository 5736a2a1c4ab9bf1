// Package flatten converts a conversation's node mapping into the ordered
// message sequence of its active thread.
package flatten

import (
	"sort"
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// Flatten walks conv's mapping along the active thread and returns its
// user and assistant messages with content metrics. System and tool
// messages are dropped. Traversal never trusts the graph to be acyclic: a
// visited set stops repeats and dangling references.
func Flatten(conv models.ConversationRecord) []models.FlatMessage {
	if len(conv.Mapping) == 0 {
		return nil
	}

	var msgs []models.FlatMessage
	for _, id := range ActiveThread(conv) {
		node := conv.Mapping[id]
		if node.Message == nil || node.Message.Author == nil {
			continue
		}
		role := node.Message.Author.Role
		if role != "user" && role != "assistant" {
			continue
		}

		text := ExtractText(node.Message.Content)
		words, chars, hasCode, langs := contentMetrics(text)
		ts := node.Message.CreateTime
		msgs = append(msgs, models.FlatMessage{
			Role:          role,
			Timestamp:     ts.Time,
			HasTimestamp:  ts.Valid,
			Text:          text,
			WordCount:     words,
			CharCount:     chars,
			HasCode:       hasCode,
			CodeLanguages: langs,
		})
	}
	return msgs
}

// ActiveThread returns the node ids of conv's active thread in order. When
// the export carries a current_node pointer the thread is the parent chain
// from that node back to the root, reversed. Otherwise traversal descends
// from each root, picking the branch NextChild selects.
func ActiveThread(conv models.ConversationRecord) []string {
	if conv.CurrentNode != "" {
		if _, ok := conv.Mapping[conv.CurrentNode]; ok {
			return threadFromCurrent(conv.Mapping, conv.CurrentNode)
		}
	}

	visited := make(map[string]bool, len(conv.Mapping))
	var order []string
	for _, root := range rootIDs(conv.Mapping) {
		current := root
		for current != "" && !visited[current] {
			visited[current] = true
			order = append(order, current)
			current = NextChild(conv.Mapping, current, visited)
		}
	}
	return order
}

func threadFromCurrent(mapping map[string]models.MappingNode, currentID string) []string {
	visited := make(map[string]bool)
	var chain []string
	id := currentID
	for id != "" && !visited[id] {
		node, ok := mapping[id]
		if !ok {
			break
		}
		visited[id] = true
		chain = append(chain, id)
		if node.Parent == nil {
			break
		}
		id = *node.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// rootIDs returns the ids whose parent is nil or dangling, sorted for
// deterministic output. Orphan subtrees surface as extra roots, so nothing
// reachable is silently lost.
func rootIDs(mapping map[string]models.MappingNode) []string {
	var roots []string
	for id, node := range mapping {
		if node.Parent == nil {
			roots = append(roots, id)
			continue
		}
		if _, ok := mapping[*node.Parent]; !ok {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 && len(mapping) > 0 {
		// Fully cyclic graph: break it at the smallest id.
		for id := range mapping {
			if len(roots) == 0 || id < roots[0] {
				roots = []string{id}
			}
		}
	}
	sort.Strings(roots)
	return roots
}

// NextChild picks which child of nodeID the active thread follows: the
// unvisited child whose message has the latest create_time. Children
// without a timestamp sort oldest; ties break on the smaller id. Returns ""
// when no eligible child remains.
func NextChild(mapping map[string]models.MappingNode, nodeID string, visited map[string]bool) string {
	node, ok := mapping[nodeID]
	if !ok {
		return ""
	}

	best := ""
	for _, childID := range node.Children {
		child, ok := mapping[childID]
		if !ok || visited[childID] {
			continue
		}
		if best == "" {
			best = childID
			continue
		}
		if newerThan(child, mapping[best], childID, best) {
			best = childID
		}
	}
	return best
}

func newerThan(a, b models.MappingNode, aID, bID string) bool {
	at, bt := nodeTime(a), nodeTime(b)
	if at.Equal(bt) {
		return aID < bID
	}
	return at.After(bt)
}

func nodeTime(node models.MappingNode) time.Time {
	if node.Message != nil && node.Message.CreateTime.Valid {
		return node.Message.CreateTime.Time
	}
	return time.Time{}
}
