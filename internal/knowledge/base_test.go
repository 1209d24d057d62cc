package knowledge

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/docqa/internal/document"
	"github.com/dgallion1/docqa/internal/embedding"
	"github.com/dgallion1/docqa/internal/embedding/embeddingtest"
	"github.com/dgallion1/docqa/internal/parser"
)

const guideMD = `# Getting Started

Install the app.

# Pricing Plans

We offer Basic and Pro tiers.
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad(t *testing.T) {
	doc := writeFile(t, "guide.md", guideMD)
	qaPath := writeFile(t, "qa.yaml", "What is Kasturi Assist: A productivity tool.\n")
	enc := embeddingtest.New(3).Set("Getting Started", 1, 0).Set("Pricing Plans", 0, 1)

	b, err := Load(t.Context(), Options{
		DocumentPath: doc,
		QAPath:       qaPath,
		Encoder:      enc,
		Logger:       quietLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Path != doc {
		t.Errorf("expected path %q, got %q", doc, b.Path)
	}
	want := []document.Section{
		{Heading: "Getting Started", Body: "Install the app."},
		{Heading: "Pricing Plans", Body: "We offer Basic and Pro tiers."},
	}
	assertSections(t, b.Sections, want)
	if b.Index.Len() != len(b.Sections) {
		t.Errorf("expected %d vectors, got %d", len(b.Sections), b.Index.Len())
	}
	if b.Flat.Len() != 2 {
		t.Errorf("expected 2 flat headings, got %d", b.Flat.Len())
	}
	if b.QA["what is kasturi assist"] != "A productivity tool." {
		t.Errorf("unexpected qa mapping: %v", b.QA)
	}
}

func TestLoad_WithoutQA(t *testing.T) {
	doc := writeFile(t, "guide.md", guideMD)
	b, err := Load(t.Context(), Options{DocumentPath: doc, Encoder: embeddingtest.New(3).Set("Getting Started", 1).Set("Pricing Plans", 0, 1), Logger: quietLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.QA != nil {
		t.Errorf("expected nil mapping, got %v", b.QA)
	}
}

func TestLoad_Failures(t *testing.T) {
	enc := embeddingtest.New(3)
	dir := t.TempDir()

	tests := []struct {
		name   string
		opts   Options
		target error
	}{
		{"missing file", Options{DocumentPath: filepath.Join(dir, "missing.md")}, os.ErrNotExist},
		{"unsupported", Options{DocumentPath: writeFile(t, "doc.odt", "x")}, parser.ErrUnsupported},
		{"empty document", Options{DocumentPath: writeFile(t, "empty.txt", "\n  \n")}, ErrEmptyDocument},
		{"missing qa", Options{DocumentPath: writeFile(t, "ok.txt", "Hello"), QAPath: filepath.Join(dir, "qa.yaml")}, os.ErrNotExist},
		{"zero vector", Options{DocumentPath: writeFile(t, "z.md", "# Zero\n\nBody.\n")}, embedding.ErrZeroVector},
	}
	enc.Set("Zero")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Encoder = enc
			tt.opts.Logger = quietLogger()
			_, err := Load(t.Context(), tt.opts)
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *LoadError, got %T: %v", err, err)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("expected error wrapping %v, got %v", tt.target, err)
			}
		})
	}
}

func TestBuild_NoEncoder(t *testing.T) {
	if _, err := Build(t.Context(), []document.Paragraph{body("x")}, nil, nil, 0); err == nil {
		t.Error("expected an error without an encoder")
	}
}
