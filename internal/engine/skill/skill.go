// Package skill derives "what was rolled" labels from dice-roll lines.
package skill

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hejijunhao/dicelog/internal/model"
)

// Delimiter separates the roll label from the result tail in bot output.
// It is the full-width sign, not ASCII '>'.
const Delimiter = "＞"

// Strategy selects how a label is cut out of a line. The strategies are
// alternatives; exactly one is active per Extractor.
type Strategy int

const (
	// DelimiterPrefix takes everything before the first Delimiter.
	DelimiterPrefix Strategy = iota
	// Bracket takes the text between the first 【 and the first 】.
	Bracket
)

func (s Strategy) String() string {
	switch s {
	case DelimiterPrefix:
		return "delimiter"
	case Bracket:
		return "bracket"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps "delimiter" or "bracket" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "delimiter":
		return DelimiterPrefix, nil
	case "bracket":
		return Bracket, nil
	default:
		return 0, fmt.Errorf("unknown skill strategy %q", s)
	}
}

// Extractor counts skill tokens across entries.
type Extractor struct {
	Strategy Strategy
}

// New creates an Extractor using strategy s.
func New(s Strategy) *Extractor {
	return &Extractor{Strategy: s}
}

// Token extracts the label from one line. ok is false when the line holds
// no label. An empty label is still a label.
func (x *Extractor) Token(line string) (token string, ok bool) {
	switch x.Strategy {
	case Bracket:
		return bracketToken(line)
	default:
		return prefixToken(line)
	}
}

// Extract maps every token found in the entries' lines to its number of
// occurrences. The map is built fresh on each call.
func (x *Extractor) Extract(entries []*model.Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		for _, text := range e.Texts {
			if token, ok := x.Token(text); ok {
				counts[token]++
			}
		}
	}
	return counts
}

func prefixToken(line string) (string, bool) {
	i := strings.Index(line, Delimiter)
	if i < 0 {
		return "", false
	}
	return strings.TrimRightFunc(line[:i], unicode.IsSpace), true
}

func bracketToken(line string) (string, bool) {
	start := strings.Index(line, "【")
	end := strings.Index(line, "】")
	if start < 0 || end < 0 || start >= end {
		return "", false
	}
	return line[start+len("【") : end], true
}
