// Package knowledge builds the read-only knowledge base a resolver answers
// from: document sections, the flat heading index, the embedding index and
// the optional Q&A mapping.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docqa/internal/document"
	"github.com/dgallion1/docqa/internal/embedding"
	"github.com/dgallion1/docqa/internal/parser"
	"github.com/dgallion1/docqa/internal/qa"
)

// ErrEmptyDocument is returned when a document has no non-empty paragraphs.
var ErrEmptyDocument = errors.New("document has no text")

// LoadError reports a knowledge base that could not be built. The process
// cannot serve queries without one.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load knowledge base %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Base is built once and never mutated, so it is safe for concurrent readers.
type Base struct {
	Path     string
	Sections []document.Section
	Flat     *FlatIndex
	Index    *embedding.Index
	QA       qa.Mapping // nil when no Q&A file was supplied
}

// Options configures Load.
type Options struct {
	DocumentPath  string
	QAPath        string // optional
	HeadingCutoff float64
	Parser        parser.Options
	Encoder       embedding.Encoder
	Logger        *slog.Logger
}

// Load parses the document, builds every index and loads the Q&A mapping.
// Any failure is returned as a *LoadError.
func Load(ctx context.Context, opts Options) (*Base, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	start := time.Now()

	paras, err := parser.LoadFile(opts.DocumentPath, opts.Parser)
	if err != nil {
		return nil, &LoadError{Path: opts.DocumentPath, Err: err}
	}

	var mapping qa.Mapping
	if opts.QAPath != "" {
		mapping, err = qa.LoadFile(opts.QAPath)
		if err != nil {
			return nil, &LoadError{Path: opts.QAPath, Err: err}
		}
	}

	b, err := Build(ctx, paras, mapping, opts.Encoder, opts.HeadingCutoff)
	if err != nil {
		return nil, &LoadError{Path: opts.DocumentPath, Err: err}
	}
	b.Path = opts.DocumentPath

	log.Info("knowledge base loaded",
		"path", b.Path,
		"paragraphs", len(paras),
		"sections", len(b.Sections),
		"headings", b.Flat.Len(),
		"qa_entries", len(b.QA),
		"model", b.Index.Model(),
		"dimension", b.Index.Dimension(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return b, nil
}

// Build assembles a Base from already parsed paragraphs.
func Build(ctx context.Context, paras []document.Paragraph, mapping qa.Mapping, enc embedding.Encoder, headingCutoff float64) (*Base, error) {
	if enc == nil {
		return nil, errors.New("no encoder configured")
	}
	if document.FullText(paras) == "" {
		return nil, ErrEmptyDocument
	}

	sections := BuildSections(paras)
	idx, err := embedding.NewIndex(ctx, enc, sections)
	if err != nil {
		return nil, fmt.Errorf("build embedding index: %w", err)
	}
	return &Base{
		Sections: sections,
		Flat:     NewFlatIndex(paras, headingCutoff),
		Index:    idx,
		QA:       mapping,
	}, nil
}
