package models

import (
	"encoding/json"
	"strings"
)

const previewLimit = 100

// ContentPreview derives the short plain-text preview shown in note lists.
//
// Content produced by the rich-text editor is a JSON document holding a
// "root" node whose nested children optionally carry "insert" text
// fragments; those fragments are concatenated depth-first. Anything that
// does not parse as such a document — plain-text notes, truncated payloads,
// foreign formats — degrades to a truncation of the raw string with
// newlines collapsed. The method never fails.
func (n Note) ContentPreview() string {
	if n.Content == "" {
		return ""
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(n.Content), &doc); err == nil {
		if root, ok := doc["root"]; ok {
			var b strings.Builder
			collectInserts(root, &b)
			return truncatePreview(b.String())
		}
	}

	flat := strings.Join(strings.Fields(strings.ReplaceAll(n.Content, "\n", " ")), " ")
	return truncatePreview(flat)
}

// collectInserts walks the document tree depth-first, appending every
// "insert" text fragment it encounters.
func collectInserts(node any, b *strings.Builder) {
	switch value := node.(type) {
	case map[string]any:
		if text, ok := value["insert"].(string); ok {
			b.WriteString(text)
		}
		if children, ok := value["children"].([]any); ok {
			for _, child := range children {
				collectInserts(child, b)
			}
		}
	case []any:
		for _, child := range value {
			collectInserts(child, b)
		}
	}
}

func truncatePreview(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= previewLimit {
		return s
	}

	return string(runes[:previewLimit])
}
