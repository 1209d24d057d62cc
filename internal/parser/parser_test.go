package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{"a.txt", &TextParser{}},
		{"a.MD", &MarkdownParser{}},
		{"a.markdown", &MarkdownParser{}},
		{"a.csv", &CSVParser{}},
		{"a.htm", &HTMLParser{}},
		{"a.pdf", &PDFParser{}},
		{"a.docx", &DOCXParser{}},
		{"a.xlsx", &XLSXParser{}},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.filename, err)
			continue
		}
		if got, want := typeName(p), typeName(tt.want); got != want {
			t.Errorf("%s: expected %s, got %s", tt.filename, want, got)
		}
		if !IsSupportedExtension(tt.filename) {
			t.Errorf("%s: expected extension to be supported", tt.filename)
		}
	}

	if _, err := ForFile("archive.zip"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guide.md")
	if err := os.WriteFile(path, []byte("# Intro\n\nHello.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	paras, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 2 || paras[0].Style != "Heading 1" {
		t.Errorf("unexpected paragraphs: %+v", paras)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.md"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "guide.odt"), Options{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func typeName(p Parser) string {
	switch p.(type) {
	case *TextParser:
		return "text"
	case *MarkdownParser:
		return "markdown"
	case *CSVParser:
		return "csv"
	case *HTMLParser:
		return "html"
	case *PDFParser:
		return "pdf"
	case *DOCXParser:
		return "docx"
	case *XLSXParser:
		return "xlsx"
	}
	return "unknown"
}
