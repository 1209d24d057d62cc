// Package fuzzy normalizes text and ranks strings by difflib's
// Ratcliff/Obershelp similarity ratio.
package fuzzy

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// Clean lowercases text, drops every rune that is not a-z or whitespace,
// and trims the result. Whitespace includes the information separators
// U+001C..U+001F.
func Clean(text string) string {
	text = strings.ToLower(text)
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || isSpace(r) {
			sb.WriteRune(r)
		}
	}
	return strings.TrimFunc(sb.String(), isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Ratio returns 2*M/T for the two strings, where M is the number of runes in
// matching blocks and T the total rune count. Two empty strings score 1.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// BestMatch returns the candidate most similar to word whose ratio is at
// least cutoff. Ties go to the lexicographically greatest candidate so the
// result does not depend on candidate order.
func BestMatch(word string, candidates []string, cutoff float64) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	// word is seq2 and each candidate seq1, so junk heuristics apply to word.
	m := difflib.NewMatcher(nil, runes(word))

	var (
		best      string
		bestScore float64
		found     bool
	)
	for _, c := range candidates {
		m.SetSeq1(runes(c))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		score := m.Ratio()
		if score < cutoff {
			continue
		}
		if !found || score > bestScore || (score == bestScore && c > best) {
			best, bestScore, found = c, score, true
		}
	}
	return best, found
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
