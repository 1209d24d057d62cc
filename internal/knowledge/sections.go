package knowledge

import (
	"strings"
	"unicode"

	"github.com/dgallion1/docqa/internal/document"
)

// FallbackHeading names the single section produced when no heading is found.
const FallbackHeading = "Document"

// BuildSections groups paragraphs into sections keyed by heading text.
//
// A paragraph is a heading when its style starts with "Heading", its first
// run is bold, its text is fully upper-case, or it ends with a colon. Body
// text before the first heading becomes a heading itself. A repeated heading
// replaces the earlier body but keeps its original position.
func BuildSections(paragraphs []document.Paragraph) []document.Section {
	var (
		sections []document.Section
		position = make(map[string]int)
		current  string
		hasHead  bool
		buffer   []string
	)

	flush := func() {
		if !hasHead || current == "" || len(buffer) == 0 {
			return
		}
		body := strings.TrimSpace(strings.Join(buffer, " "))
		if i, ok := position[current]; ok {
			sections[i].Body = body
			return
		}
		position[current] = len(sections)
		sections = append(sections, document.Section{Heading: current, Body: body})
	}

	for _, p := range paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		if isHeading(p, text) {
			flush()
			current, hasHead = text, true
			buffer = buffer[:0]
			continue
		}
		if !hasHead {
			current, hasHead = text, true
			continue
		}
		buffer = append(buffer, text)
	}
	flush()

	if len(sections) == 0 {
		return []document.Section{{Heading: FallbackHeading, Body: document.FullText(paragraphs)}}
	}
	return sections
}

func isHeading(p document.Paragraph, text string) bool {
	return strings.HasPrefix(p.Style, "Heading") ||
		p.Bold ||
		isUpper(text) ||
		strings.HasSuffix(text, ":")
}

// isUpper reports whether text has at least one cased rune and every cased
// rune is upper case. Title-case runes such as U+01C5 count as cased but not
// upper; Other_Uppercase and Other_Lowercase runes (Roman numerals, circled
// letters) count by their case property.
func isUpper(text string) bool {
	cased := false
	for _, r := range text {
		switch {
		case unicode.IsLower(r) || unicode.IsTitle(r) || unicode.Is(unicode.Other_Lowercase, r):
			return false
		case unicode.IsUpper(r) || unicode.Is(unicode.Other_Uppercase, r):
			cased = true
		}
	}
	return cased
}
