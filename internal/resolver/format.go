package resolver

import (
	"strings"

	"github.com/dgallion1/docqa/internal/document"
)

const sentenceDelimiter = ". "

// Summarize keeps the first two sentences of every section body, one line
// per section.
func Summarize(sections []document.Section) string {
	lines := make([]string, len(sections))
	for i, s := range sections {
		sentences := strings.Split(s.Body, sentenceDelimiter)
		if len(sentences) > 2 {
			sentences = sentences[:2]
		}
		lines[i] = strings.TrimSpace(strings.Join(sentences, sentenceDelimiter))
	}
	return strings.Join(lines, "\n")
}

// Outline renders every heading as its ":" and "-" separated parts joined
// by " > ", one line per heading.
func Outline(sections []document.Section) string {
	lines := make([]string, len(sections))
	for i, s := range sections {
		parts := strings.FieldsFunc(s.Heading, func(r rune) bool { return r == ':' || r == '-' })
		kept := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				kept = append(kept, p)
			}
		}
		lines[i] = strings.Join(kept, " > ")
	}
	return strings.Join(lines, "\n")
}
