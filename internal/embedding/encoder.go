// Package embedding encodes section headings with a sentence-embedding
// model and ranks them against queries by cosine similarity.
package embedding

import (
	"context"
	"errors"
	"math"
	"time"
)

var (
	// ErrZeroVector is returned when the model produces an all-zero vector.
	ErrZeroVector = errors.New("embedding: zero-length vector")
	// ErrDimensionMismatch is returned when vectors disagree on length.
	ErrDimensionMismatch = errors.New("embedding: dimension mismatch")
)

// Encoder turns text into fixed-length vectors. Implementations must be
// deterministic for a fixed model and safe for concurrent use.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Model identifies the model; scores are only comparable within one model.
	Model() string
}

// Instrument wraps enc so every call is recorded in stats.
func Instrument(enc Encoder, stats *Stats) Encoder {
	if stats == nil {
		return enc
	}
	return &timedEncoder{next: enc, stats: stats}
}

type timedEncoder struct {
	next  Encoder
	stats *Stats
}

func (e *timedEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	v, err := e.next.Encode(ctx, text)
	e.stats.Record(Call{
		Kind:       CallQuery,
		Texts:      1,
		DurationMs: time.Since(start).Milliseconds(),
		Failed:     err != nil,
	})
	return v, err
}

func (e *timedEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	v, err := e.next.EncodeBatch(ctx, texts)
	e.stats.Record(Call{
		Kind:       CallBatch,
		Texts:      len(texts),
		DurationMs: time.Since(start).Milliseconds(),
		Failed:     err != nil,
	})
	return v, err
}

func (e *timedEncoder) Model() string {
	return e.next.Model()
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
