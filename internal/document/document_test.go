package document

import "testing"

func TestHeadingStyle(t *testing.T) {
	if got := HeadingStyle(2); got != "Heading 2" {
		t.Errorf("expected %q, got %q", "Heading 2", got)
	}
}

func TestParagraph_HasHeadingStyle(t *testing.T) {
	tests := []struct {
		style string
		want  bool
	}{
		{"Heading 1", true},
		{"Custom Heading", true},
		{"Normal", false},
		{"Title", false},
		{"", false},
	}
	for _, tt := range tests {
		p := Paragraph{Text: "x", Style: tt.style}
		if got := p.HasHeadingStyle(); got != tt.want {
			t.Errorf("style=%q: expected %v, got %v", tt.style, tt.want, got)
		}
	}
}

func TestFullText_SkipsBlankParagraphs(t *testing.T) {
	paras := []Paragraph{
		{Text: "First"},
		{Text: "   "},
		{Text: " Second "},
	}
	if got := FullText(paras); got != "First\nSecond" {
		t.Errorf("expected %q, got %q", "First\nSecond", got)
	}
}
