package knowledge

import (
	"strings"

	"github.com/dgallion1/docqa/internal/document"
	"github.com/dgallion1/docqa/internal/fuzzy"
)

// DefaultHeadingCutoff is the minimum similarity ratio for a heading match.
const DefaultHeadingCutoff = 0.5

type headingEntry struct {
	index   int
	text    string
	cleaned string
}

// FlatIndex answers fuzzy heading lookups over the raw paragraph sequence.
// Only style-tagged headings are indexed.
type FlatIndex struct {
	paragraphs []document.Paragraph
	headings   []headingEntry
	cleaned    []string
	cutoff     float64
}

// NewFlatIndex indexes every non-empty paragraph whose style contains
// "Heading". A non-positive cutoff uses DefaultHeadingCutoff.
func NewFlatIndex(paragraphs []document.Paragraph, cutoff float64) *FlatIndex {
	if cutoff <= 0 {
		cutoff = DefaultHeadingCutoff
	}
	idx := &FlatIndex{cutoff: cutoff}
	for _, p := range paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		p.Text = text
		if p.HasHeadingStyle() {
			c := fuzzy.Clean(text)
			idx.headings = append(idx.headings, headingEntry{index: len(idx.paragraphs), text: text, cleaned: c})
			idx.cleaned = append(idx.cleaned, c)
		}
		idx.paragraphs = append(idx.paragraphs, p)
	}
	return idx
}

// Len returns the number of indexed headings.
func (f *FlatIndex) Len() int {
	return len(f.headings)
}

// SearchHeading finds the heading closest to query and returns its section
// (heading line plus body lines, newline-joined). It reports false when no
// heading matches or the matched section has no body.
func (f *FlatIndex) SearchHeading(query string) (string, bool) {
	q := fuzzy.Clean(query)

	match, ok := fuzzy.BestMatch(q, f.cleaned, f.cutoff)
	if !ok {
		for _, c := range f.cleaned {
			if strings.Contains(c, q) {
				match, ok = c, true
				break
			}
		}
	}
	if !ok {
		return "", false
	}

	for _, h := range f.headings {
		if h.cleaned != match {
			continue
		}
		lines := f.extract(h.index)
		if len(lines) <= 1 {
			return "", false
		}
		return strings.Join(lines, "\n"), true
	}
	return "", false
}

// extract collects paragraph texts from start up to the next heading.
func (f *FlatIndex) extract(start int) []string {
	var lines []string
	for j := start; j < len(f.paragraphs); j++ {
		p := f.paragraphs[j]
		if j != start && p.HasHeadingStyle() && p.Text != "" {
			break
		}
		lines = append(lines, p.Text)
	}
	return lines
}
