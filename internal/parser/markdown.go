package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docqa/internal/document"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]document.Paragraph, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var paras []document.Paragraph
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Heading:
				paras = appendText(paras, extractText(node, src), document.HeadingStyle(node.Level), false)
			case *ast.List, *ast.ListItem, *ast.Blockquote:
				walk(node)
			case *ast.Paragraph, *ast.TextBlock:
				paras = appendText(paras, extractText(node, src), document.StyleNormal, startsStrong(node))
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				paras = appendText(paras, extractText(node, src), document.StyleNormal, false)
			case *ast.ThematicBreak, *ast.HTMLBlock:
			default:
				paras = appendText(paras, extractText(node, src), document.StyleNormal, false)
			}
		}
	}
	walk(doc)
	return paras, nil
}

// startsStrong reports whether the first inline of a block is **strong**.
func startsStrong(n ast.Node) bool {
	em, ok := n.FirstChild().(*ast.Emphasis)
	return ok && em.Level == 2
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
