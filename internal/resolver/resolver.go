// Package resolver answers free-text queries against a knowledge base by
// trying special commands, the Q&A mapping, fuzzy heading search and
// semantic search, in that order.
package resolver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dgallion1/docqa/internal/knowledge"
	"github.com/dgallion1/docqa/internal/qa"
)

// NotFound is the answer when every strategy comes up empty.
const NotFound = "Sorry, I could not find relevant information in the document."

// MoreDetails is appended to heading answers cut at the line limit.
const MoreDetails = "• ...more details in document"

// Defaults applied to zero-valued Options fields.
const (
	DefaultQACutoff = qa.DefaultCutoff
	DefaultMinScore = 0.4
	DefaultTopN     = 1
	DefaultMaxLines = 6
)

// Strategy names the stage that produced an answer.
type Strategy string

const (
	StrategyCommand  Strategy = "command"
	StrategyQA       Strategy = "qa"
	StrategyHeading  Strategy = "heading"
	StrategySemantic Strategy = "semantic"
	StrategyNone     Strategy = "none"
)

// Result is an answer and the stage that produced it.
type Result struct {
	Answer   string   `json:"answer"`
	Strategy Strategy `json:"strategy"`
}

// Options tunes the cascade. Zero values take the defaults above. The
// heading cutoff is fixed when the knowledge base is built.
type Options struct {
	QACutoff float64
	MinScore float64
	TopN     int
	MaxLines int
	Logger   *slog.Logger
}

// Resolver is stateless per call and safe for concurrent use.
type Resolver struct {
	base    *knowledge.Base
	opts    Options
	log     *slog.Logger
	summary string
	outline string
}

// New creates a resolver over base.
func New(base *knowledge.Base, opts Options) *Resolver {
	if opts.QACutoff <= 0 {
		opts.QACutoff = DefaultQACutoff
	}
	if opts.MinScore <= 0 {
		opts.MinScore = DefaultMinScore
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.MaxLines <= 0 {
		opts.MaxLines = DefaultMaxLines
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		base:    base,
		opts:    opts,
		log:     log.With("component", "resolver"),
		summary: Summarize(base.Sections),
		outline: Outline(base.Sections),
	}
}

// Answer returns the best answer for query. It never fails: when nothing
// matches the answer is NotFound.
func (r *Resolver) Answer(ctx context.Context, query string) string {
	return r.Resolve(ctx, query).Answer
}

// Resolve runs the cascade and reports which stage answered.
func (r *Resolver) Resolve(ctx context.Context, query string) Result {
	res := r.resolve(ctx, query)
	r.log.Debug("query resolved", "strategy", res.Strategy, "query_len", len(query))
	return res
}

func (r *Resolver) resolve(ctx context.Context, query string) Result {
	if strings.TrimSpace(query) == "" {
		return Result{Answer: NotFound, Strategy: StrategyNone}
	}

	if answer, ok := r.command(query); ok {
		return Result{Answer: answer, Strategy: StrategyCommand}
	}

	if r.base.QA != nil {
		if answer, ok := r.base.QA.Lookup(query, r.opts.QACutoff); ok {
			return Result{Answer: answer, Strategy: StrategyQA}
		}
	}

	if section, ok := r.base.Flat.SearchHeading(query); ok {
		return Result{Answer: r.truncate(section), Strategy: StrategyHeading}
	}

	if answer, ok := r.semantic(ctx, query); ok {
		return Result{Answer: answer, Strategy: StrategySemantic}
	}
	return Result{Answer: NotFound, Strategy: StrategyNone}
}

func (r *Resolver) command(query string) (string, bool) {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "summarize") || strings.Contains(q, "explain whole document"):
		return r.summary, true
	case strings.Contains(q, "index") || strings.Contains(q, "topic tree"):
		return r.outline, true
	}
	return "", false
}

func (r *Resolver) truncate(section string) string {
	lines := strings.Split(section, "\n")
	if len(lines) <= r.opts.MaxLines {
		return section
	}
	out := append(lines[:r.opts.MaxLines:r.opts.MaxLines], MoreDetails)
	return strings.Join(out, "\n")
}

func (r *Resolver) semantic(ctx context.Context, query string) (string, bool) {
	matches, err := r.base.Index.Search(ctx, query, r.opts.TopN)
	if err != nil {
		r.log.Error("semantic search failed", "error", err)
		return "", false
	}
	if len(matches) == 0 || float64(matches[0].Score) < r.opts.MinScore {
		return "", false
	}
	bodies := make([]string, len(matches))
	for i, m := range matches {
		bodies[i] = m.Body
	}
	return strings.Join(bodies, "\n\n"), true
}

// Summary returns the document summary served for "summarize".
func (r *Resolver) Summary() string {
	return r.summary
}

// Outline returns the heading outline served for "index".
func (r *Resolver) Outline() string {
	return r.outline
}

// Base returns the knowledge base the resolver answers from.
func (r *Resolver) Base() *knowledge.Base {
	return r.base
}
