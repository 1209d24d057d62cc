package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docqa/internal/document"
)

// ErrUnsupported is returned for file extensions no parser handles.
var ErrUnsupported = errors.New("unsupported file extension")

// Parser converts raw document bytes into an ordered paragraph sequence.
type Parser interface {
	Parse(r io.Reader, filename string) ([]document.Paragraph, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".xlsx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".xlsx":
		return &XLSXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Options tunes the parsers chosen by LoadFile.
type Options struct {
	PDFFallbackPdftotext bool
}

// LoadFile opens path and parses it with the parser for its extension.
func LoadFile(path string, opts Options) ([]document.Paragraph, error) {
	p, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*PDFParser); ok {
		pdf.FallbackPdftotext = opts.PDFFallbackPdftotext
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	paras, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return paras, nil
}

// appendText adds a paragraph if its trimmed text is non-empty.
func appendText(paras []document.Paragraph, text, style string, bold bool) []document.Paragraph {
	text = strings.TrimSpace(text)
	if text == "" {
		return paras
	}
	return append(paras, document.Paragraph{Text: text, Style: style, Bold: bold})
}

// spoolTemp copies r to a temporary file for libraries that need random
// access. The caller must call the returned cleanup.
func spoolTemp(r io.Reader, pattern string) (*os.File, int64, func(), error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}
	size, err := io.Copy(tmp, r)
	if err != nil {
		cleanup()
		return nil, 0, nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, 0, nil, fmt.Errorf("seek temp file: %w", err)
	}
	return tmp, size, cleanup, nil
}
