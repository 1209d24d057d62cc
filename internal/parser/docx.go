package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docqa/internal/document"
)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) ([]document.Paragraph, error) {
	// go-docx needs a ReaderAt+size, so write to temp file.
	tmp, size, cleanup, err := spoolTemp(r, "docqa-docx-*.docx")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	doc, err := docx.Parse(tmp, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var paras []document.Paragraph
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		paras = appendText(paras, docxParagraphText(para), docxStyle(para), docxFirstRunBold(para))
	}
	return paras, nil
}

// docxStyle maps a paragraph's style ID to a style tag. Built-in heading
// IDs ("Heading1", "heading 1") become "Heading N".
func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return document.StyleNormal
	}
	return normalizeStyle(para.Properties.Style.Val)
}

func normalizeStyle(id string) string {
	style := strings.TrimSpace(id)
	if style == "" {
		return document.StyleNormal
	}
	lower := strings.ToLower(style)
	if rest, ok := strings.CutPrefix(lower, "heading"); ok {
		if level, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && level >= 1 && level <= 9 {
			return document.HeadingStyle(level)
		}
	}
	if lower == "title" {
		return "Title"
	}
	return style
}

// docxRuns returns the paragraph's runs in order, including the run
// carried by each hyperlink.
func docxRuns(para *docx.Paragraph) []*docx.Run {
	var runs []*docx.Run
	for _, child := range para.Children {
		switch c := child.(type) {
		case *docx.Run:
			runs = append(runs, c)
		case *docx.Hyperlink:
			runs = append(runs, &c.Run)
		}
	}
	return runs
}

func docxFirstRunBold(para *docx.Paragraph) bool {
	runs := docxRuns(para)
	if len(runs) == 0 {
		return false
	}
	return runs[0].RunProperties != nil && runs[0].RunProperties.Bold != nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, run := range docxRuns(para) {
		for _, rc := range run.Children {
			switch c := rc.(type) {
			case *docx.Text:
				buf.WriteString(c.Text)
			case *docx.Tab:
				buf.WriteByte('\t')
			case *docx.BarterRabbet:
				// Page and column breaks carry no text.
				if c.Type == "" || c.Type == "textWrapping" {
					buf.WriteByte('\n')
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
