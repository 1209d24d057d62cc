package fuzzy

import (
	"math"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pricing Plans", "pricing plans"},
		{"  What is Kasturi Assist?  ", "what is kasturi assist"},
		{"Section 2.1: Setup!", "section  setup"},
		{"", ""},
		{"1234 !!", ""},
		{"Tabs\tand\nnewlines", "tabs\tand\nnewlines"},
		{"\x1cRecord\x1eUnit\x1f", "record\x1eunit"},
		{"\u00a0Price\u2003List\u3000", "price\u2003list"},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Pricing Plans",
		"  ÜBER-cool 42: Features & FAQ ",
		"\t\n",
		"already clean",
		"MIXED case, with punctuation...",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestRatio_KnownValues(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abcd", "bcde", 0.75},
		{"apple", "appel", 0.8},
		{"ape", "appel", 0.75},
		{"", "", 1.0},
		{"abc", "xyz", 0.0},
		{"pricing plans", "pricing plans", 1.0},
	}
	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Ratio(%q, %q): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestBestMatch_PicksHighestRatio(t *testing.T) {
	got, ok := BestMatch("appel", []string{"ape", "apple", "peach", "puppy"}, 0.6)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "apple" {
		t.Errorf("expected %q, got %q", "apple", got)
	}
}

func TestBestMatch_RespectsCutoff(t *testing.T) {
	if got, ok := BestMatch("wheel", []string{"ape", "peach"}, 0.6); ok {
		t.Errorf("expected no match, got %q", got)
	}
	if _, ok := BestMatch("anything", nil, 0.1); ok {
		t.Error("expected no match for empty candidates")
	}
}

func TestBestMatch_TieBreaksOnGreatestCandidate(t *testing.T) {
	// "ab" scores 0.8 against both candidates.
	for _, order := range [][]string{{"abx", "aby"}, {"aby", "abx"}} {
		got, ok := BestMatch("ab", order, 0.5)
		if !ok {
			t.Fatalf("expected a match for %v", order)
		}
		if got != "aby" {
			t.Errorf("order %v: expected %q, got %q", order, "aby", got)
		}
	}
}

func TestBestMatch_QuestionAgainstKey(t *testing.T) {
	got, ok := BestMatch("what is kasturi assist?", []string{"what is kasturi assist", "how do i reset my password"}, 0.6)
	if !ok || got != "what is kasturi assist" {
		t.Errorf("expected %q, got %q (ok=%v)", "what is kasturi assist", got, ok)
	}
}
