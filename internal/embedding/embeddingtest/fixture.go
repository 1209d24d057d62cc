// Package embeddingtest provides a deterministic encoder backed by fixture
// vectors, for testing code that ranks by embedding similarity.
package embeddingtest

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
)

// Encoder returns pinned vectors for known texts. Unknown texts map to the
// one-hot vector on the last axis, so callers can keep that axis free to
// make unknown queries orthogonal to every fixture.
type Encoder struct {
	dim     int
	mu      sync.RWMutex
	vectors map[string][]float32
	err     error
	calls   atomic.Int64
}

// New creates an encoder producing vectors of length dim.
func New(dim int) *Encoder {
	return &Encoder{dim: dim, vectors: make(map[string][]float32)}
}

// Set pins the vector for text. Shorter vectors are zero-padded to dim.
func (e *Encoder) Set(text string, v ...float32) *Encoder {
	vec := make([]float32, e.dim)
	copy(vec, v)
	e.mu.Lock()
	e.vectors[text] = vec
	e.mu.Unlock()
	return e
}

// Fail makes every subsequent call return err.
func (e *Encoder) Fail(err error) {
	e.mu.Lock()
	e.err = err
	e.mu.Unlock()
}

// Calls returns the number of texts encoded so far.
func (e *Encoder) Calls() int64 {
	return e.calls.Load()
}

func (e *Encoder) Encode(ctx context.Context, text string) ([]float32, error) {
	e.calls.Add(1)
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vectors[text]; ok {
		return slices.Clone(v), nil
	}
	v := make([]float32, e.dim)
	v[e.dim-1] = 1
	return v, nil
}

func (e *Encoder) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Encode(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *Encoder) Model() string {
	return "fixture"
}
