package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docqa/internal/document"
)

// TextParser handles plain text files. Blank lines separate paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]document.Paragraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paras []document.Paragraph
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paras = appendText(paras, current.String(), document.StyleNormal, false)
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paras = appendText(paras, current.String(), document.StyleNormal, false)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paras, nil
}
