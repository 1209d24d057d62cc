package embedding

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"github.com/dgallion1/docqa/internal/document"
)

const (
	collectionName = "sections"
	metaHeading    = "heading"
)

// Match is one ranked section. Position indexes the sections the Index was
// built from; Score is the cosine similarity between query and heading.
type Match struct {
	Position int
	Heading  string
	Body     string
	Score    float32
}

// Index holds one vector per section heading, aligned by position with the
// sections it was built from. It is read-only after NewIndex returns.
type Index struct {
	encoder    Encoder
	collection *chromem.Collection
	size       int
	dim        int
}

// NewIndex encodes every section heading and stores the vectors in an
// in-memory chromem collection. Transient encoder failures are retried.
func NewIndex(ctx context.Context, enc Encoder, sections []document.Section) (*Index, error) {
	headings := make([]string, len(sections))
	for i, s := range sections {
		headings[i] = s.Heading
	}

	vectors, err := withRetry(ctx, func() ([][]float32, error) {
		return enc.EncodeBatch(ctx, headings)
	})
	if err != nil {
		return nil, fmt.Errorf("encode headings: %w", err)
	}
	if len(vectors) != len(sections) {
		return nil, fmt.Errorf("encode headings: got %d vectors for %d headings", len(vectors), len(sections))
	}

	idx := &Index{encoder: enc, size: len(sections)}
	docs := make([]chromem.Document, len(sections))
	for i, v := range vectors {
		if i == 0 {
			idx.dim = len(v)
		} else if len(v) != idx.dim {
			return nil, fmt.Errorf("heading %q: %w (%d != %d)", headings[i], ErrDimensionMismatch, len(v), idx.dim)
		}
		if norm(v) == 0 {
			return nil, fmt.Errorf("heading %q: %w", headings[i], ErrZeroVector)
		}
		docs[i] = chromem.Document{
			ID:        strconv.Itoa(i),
			Metadata:  map[string]string{metaHeading: sections[i].Heading},
			Embedding: v,
			Content:   sections[i].Body,
		}
	}

	db := chromem.NewDB()
	col, err := db.CreateCollection(collectionName, map[string]string{"model": enc.Model()}, enc.Encode)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	if len(docs) > 0 {
		if err := col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
			return nil, fmt.Errorf("add documents: %w", err)
		}
	}
	idx.collection = col
	return idx, nil
}

// Len returns the number of indexed headings.
func (idx *Index) Len() int {
	return idx.size
}

// Dimension returns the vector length, or 0 for an empty index.
func (idx *Index) Dimension() int {
	return idx.dim
}

// Model identifies the embedding model the vectors came from.
func (idx *Index) Model() string {
	return idx.encoder.Model()
}

// Search encodes query and returns up to topN sections ranked by cosine
// similarity, highest first. A non-positive topN means 1. A query that
// encodes to the zero vector matches nothing.
func (idx *Index) Search(ctx context.Context, query string, topN int) ([]Match, error) {
	if idx.size == 0 {
		return nil, nil
	}
	if topN <= 0 {
		topN = 1
	}
	topN = min(topN, idx.size)

	q, err := idx.encoder.Encode(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	if len(q) != idx.dim {
		return nil, fmt.Errorf("encode query: %w (%d != %d)", ErrDimensionMismatch, len(q), idx.dim)
	}
	if norm(q) == 0 {
		return nil, nil
	}

	results, err := idx.collection.QueryEmbedding(ctx, q, topN, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		pos, err := strconv.Atoi(r.ID)
		if err != nil {
			return nil, fmt.Errorf("bad document id %q: %w", r.ID, err)
		}
		matches = append(matches, Match{
			Position: pos,
			Heading:  r.Metadata[metaHeading],
			Body:     r.Content,
			Score:    r.Similarity,
		})
	}
	return matches, nil
}
