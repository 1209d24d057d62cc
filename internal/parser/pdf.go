package parser

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/docqa/internal/document"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled.
//
// PDFs carry no paragraph styles, so every non-empty line becomes a
// "Normal" paragraph and heading detection relies on casing and colons.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) ([]document.Paragraph, error) {
	// ledongthuc/pdf opens by path, so we write to a temp file.
	tmp, _, cleanup, err := spoolTemp(r, "docqa-pdf-*.pdf")
	if err != nil {
		return nil, err
	}
	defer cleanup()
	tmpPath := tmp.Name()

	text, err := extractPDFText(tmpPath)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return splitLines(text), nil
}

func splitLines(text string) []document.Paragraph {
	var paras []document.Paragraph
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\f' || r == '\r' }) {
		paras = appendText(paras, line, document.StyleNormal, false)
	}
	return paras
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
