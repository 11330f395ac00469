package digest

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Outline lists the headings of digest text in document order, so a client
// can offer navigation over the rendered cards. Pass text through Normalize
// first if pseudo-headers should be counted. Text without headings yields an
// empty outline, never nil.
func Outline(input string) []Heading {
	src := []byte(input)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	headings := make([]Heading, 0, 8)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Title: string(h.Text(src)),
		})
	}
	return headings
}
