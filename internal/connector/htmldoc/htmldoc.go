// Package htmldoc extracts message blocks from an exported chat log page.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/hejijunhao/dicelog/internal/model"
)

// Tags names the elements that delimit messages and their fields.
type Tags struct {
	Block string // one element per chat message, e.g. "p"
	Field string // tab, name and text fields inside a message, e.g. "span"
}

// DefaultTags matches the common export layout:
// <p><span>[tab]</span><span>name</span><span>text</span></p>.
func DefaultTags() Tags {
	return Tags{Block: "p", Field: "span"}
}

type field struct {
	lines []string
}

func (f *field) TextLines() []string { return f.lines }

type block struct {
	fields []model.Field
}

func (b *block) Fields() []model.Field { return b.fields }

// Parse reads an HTML document and returns every block element in document
// order. A block's fields are its descendant field elements in pre-order,
// and a field's lines are its descendant text nodes.
func Parse(r io.Reader, tags Tags) ([]model.Block, error) {
	if tags.Block == "" || tags.Field == "" {
		return nil, fmt.Errorf("htmldoc: block and field tags are required")
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}

	blockTag := strings.ToLower(tags.Block)
	fieldTag := strings.ToLower(tags.Field)

	var blocks []model.Block
	walk(doc, func(n *html.Node) {
		if isElement(n, blockTag) {
			blocks = append(blocks, newBlock(n, fieldTag))
		}
	})
	return blocks, nil
}

func newBlock(n *html.Node, fieldTag string) *block {
	b := &block{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(d *html.Node) {
			if isElement(d, fieldTag) {
				b.fields = append(b.fields, &field{lines: textLines(d)})
			}
		})
	}
	return b
}

func textLines(n *html.Node) []string {
	var lines []string
	walk(n, func(d *html.Node) {
		if d.Type == html.TextNode {
			lines = append(lines, d.Data)
		}
	})
	return lines
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
