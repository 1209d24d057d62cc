package document

import (
	"strconv"
	"strings"
)

// StyleNormal is the style tag of body paragraphs.
const StyleNormal = "Normal"

// Paragraph is one paragraph record produced by a loader.
type Paragraph struct {
	Text  string // Paragraph text, trimmed
	Style string // "Heading 1".."Heading 6", "Title", a custom style name, or "Normal"
	Bold  bool   // First run/segment is bold
}

// Section is a heading and the body text that follows it.
type Section struct {
	Heading string
	Body    string
}

// HeadingStyle returns the style tag for a heading of the given level.
func HeadingStyle(level int) string {
	return "Heading " + strconv.Itoa(level)
}

// HasHeadingStyle reports whether the style tag names a heading.
func (p Paragraph) HasHeadingStyle() bool {
	return strings.Contains(p.Style, "Heading")
}

// FullText joins the text of all non-empty paragraphs with newlines.
func FullText(paragraphs []Paragraph) string {
	var sb strings.Builder
	for _, p := range paragraphs {
		t := strings.TrimSpace(p.Text)
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(t)
	}
	return sb.String()
}
