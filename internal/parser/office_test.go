package parser

import (
	"bytes"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/xuri/excelize/v2"

	"github.com/dgallion1/docqa/internal/document"
)

func TestNormalizeStyle(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"Heading1", "Heading 1"},
		{"heading 2", "Heading 2"},
		{"HEADING3", "Heading 3"},
		{"Title", "Title"},
		{"title", "Title"},
		{"HeadingCustom", "HeadingCustom"},
		{"Quote", "Quote"},
		{"  ", "Normal"},
		{"", "Normal"},
	}
	for _, tt := range tests {
		if got := normalizeStyle(tt.id); got != tt.want {
			t.Errorf("normalizeStyle(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestDOCXParser(t *testing.T) {
	w := docx.New().WithDefaultTheme()

	w.AddParagraph().Style("Heading1").AddText("Overview")
	w.AddParagraph().AddText("Bold lead").Bold()

	link := w.AddParagraph()
	link.AddText("See ")
	link.AddLink("our site", "https://example.com")
	link.AddText(" for more.")

	w.AddParagraph().AddLink("Linked lead", "https://example.com/lead").Run.Bold()

	tabbed := w.AddParagraph().AddText("Name")
	tabbed.Children = append(tabbed.Children, &docx.Tab{}, &docx.Text{Text: "Value"})

	broken := w.AddParagraph().AddText("line one")
	broken.Children = append(broken.Children, &docx.BarterRabbet{}, &docx.Text{Text: "line two"})

	w.AddParagraph().AddText("   ")

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	p := &DOCXParser{}
	got, err := p.Parse(bytes.NewReader(buf.Bytes()), "guide.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertParagraphs(t, got, []document.Paragraph{
		{Text: "Overview", Style: "Heading 1"},
		{Text: "Bold lead", Style: document.StyleNormal, Bold: true},
		{Text: "See our site for more.", Style: document.StyleNormal},
		{Text: "Linked lead", Style: document.StyleNormal, Bold: true},
		{Text: "Name\tValue", Style: document.StyleNormal},
		{Text: "line one\nline two", Style: document.StyleNormal},
	})
}

func TestDOCXParser_Corrupt(t *testing.T) {
	p := &DOCXParser{}
	if _, err := p.Parse(bytes.NewReader([]byte("not a zip")), "bad.docx"); err == nil {
		t.Error("expected an error for a corrupt docx")
	}
}

func TestXLSXParser(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Prices"); err != nil {
		t.Fatal(err)
	}
	f.SetCellValue("Prices", "A1", "plan")
	f.SetCellValue("Prices", "B1", "price")
	f.SetCellValue("Prices", "A2", "Basic")
	f.SetCellValue("Prices", "B2", 0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	p := &XLSXParser{}
	paras, err := p.Parse(buf, "prices.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []document.Paragraph{
		{Text: "Prices", Style: "Heading 1"},
		{Text: "plan\tprice", Style: "Normal"},
		{Text: "Basic\t0", Style: "Normal"},
	}
	assertParagraphs(t, paras, want)
}
