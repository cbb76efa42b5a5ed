package parser

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/hejijunhao/dicelog/internal/model"
)

// Field positions inside a message block.
const (
	tabField = iota
	nameField
	textField
)

// Parser converts message blocks into entries.
type Parser struct {
	// Normalize applies Unicode NFC to every raw line before trimming.
	Normalize bool
}

// New creates a Parser.
func New(normalize bool) *Parser {
	return &Parser{Normalize: normalize}
}

// Result is the outcome of parsing one block.
type Result struct {
	Entry *model.Entry
	Err   *ParseError
}

// Parse builds an Entry from one block. The first failure is returned and
// no Entry is produced.
func (p *Parser) Parse(block model.Block) (*model.Entry, error) {
	e, perr := p.parse(block)
	if perr != nil {
		return nil, perr
	}
	return e, nil
}

func (p *Parser) parse(block model.Block) (*model.Entry, *ParseError) {
	fields := block.Fields()

	tab, err := p.tab(fieldAt(fields, tabField))
	if err != nil {
		return nil, err
	}
	name, err := p.singleLine("name", fieldAt(fields, nameField))
	if err != nil {
		return nil, err
	}
	texts, err := p.texts(fieldAt(fields, textField))
	if err != nil {
		return nil, err
	}
	return model.NewEntry(tab, name, texts), nil
}

// ParseBatch parses every block and stops at the first failure.
func (p *Parser) ParseBatch(blocks []model.Block) ([]*model.Entry, error) {
	entries := make([]*model.Entry, 0, len(blocks))
	for i, b := range blocks {
		e, err := p.parse(b)
		if err != nil {
			return nil, &BlockError{Index: i, Err: err}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ParseEach parses every block independently and reports one Result per block.
func (p *Parser) ParseEach(blocks []model.Block) []Result {
	results := make([]Result, len(blocks))
	for i, b := range blocks {
		e, err := p.parse(b)
		results[i] = Result{Entry: e, Err: err}
	}
	return results
}

func fieldAt(fields []model.Field, i int) model.Field {
	if i >= len(fields) {
		return nil
	}
	return fields[i]
}

func (p *Parser) tab(f model.Field) (string, *ParseError) {
	raw, err := p.singleLine("tab", f)
	if err != nil {
		return "", err
	}
	clusters := graphemes(raw)
	if len(clusters) == 0 {
		return "", invalidTab(raw, "first or last character missing")
	}
	first, last := clusters[0], clusters[len(clusters)-1]
	if len(clusters) < 2 || first != "[" || last != "]" {
		return "", invalidTab(raw, "not enclosed in [ ]")
	}
	if len(clusters) == 2 {
		return "", invalidTab(raw, "empty tab name")
	}
	return strings.Join(clusters[1:len(clusters)-1], ""), nil
}

func (p *Parser) singleLine(field string, f model.Field) (string, *ParseError) {
	if f == nil {
		return "", missingField(field)
	}
	lines := f.TextLines()
	if len(lines) != 1 {
		return "", wrongLineCount(field, len(lines))
	}
	return p.clean(lines[0]), nil
}

func (p *Parser) texts(f model.Field) ([]string, *ParseError) {
	if f == nil {
		return nil, missingField("text")
	}
	lines := f.TextLines()
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, p.clean(line))
	}
	return texts, nil
}

// clean trims surrounding whitespace and drops any remaining newlines.
func (p *Parser) clean(s string) string {
	if p.Normalize {
		s = norm.NFC.String(s)
	}
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "")
}

func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
