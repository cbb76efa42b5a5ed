package taxonomy

import (
	"fmt"
	"strings"

	"github.com/hejijunhao/dicelog/internal/model"
)

// Rule recognizes one outcome in a text line: the line must contain at
// least one marker and none of the exclusions.
type Rule struct {
	Outcome  model.Outcome
	Markers  []string
	Excludes []string
}

// Match reports whether line satisfies the rule.
func (r Rule) Match(line string) bool {
	hit := false
	for _, m := range r.Markers {
		if strings.Contains(line, m) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, x := range r.Excludes {
		if strings.Contains(line, x) {
			return false
		}
	}
	return true
}

// Taxonomy holds one rule per outcome.
type Taxonomy struct {
	rules map[model.Outcome]Rule
}

// New builds a Taxonomy. Every outcome needs exactly one rule with at
// least one marker.
func New(rules []Rule) (*Taxonomy, error) {
	t := &Taxonomy{rules: make(map[model.Outcome]Rule, len(rules))}
	for _, r := range rules {
		if !r.Outcome.Valid() {
			return nil, fmt.Errorf("taxonomy: invalid outcome %v", r.Outcome)
		}
		if len(r.Markers) == 0 {
			return nil, fmt.Errorf("taxonomy: %s rule has no markers", r.Outcome)
		}
		if _, dup := t.rules[r.Outcome]; dup {
			return nil, fmt.Errorf("taxonomy: duplicate rule for %s", r.Outcome)
		}
		t.rules[r.Outcome] = r
	}
	for _, o := range model.Outcomes() {
		if _, ok := t.rules[o]; !ok {
			return nil, fmt.Errorf("taxonomy: missing rule for %s", o)
		}
	}
	return t, nil
}

// Rule returns the rule for o.
func (t *Taxonomy) Rule(o model.Outcome) (Rule, bool) {
	r, ok := t.rules[o]
	return r, ok
}

// Default returns the taxonomy built from DefaultRules.
func Default() *Taxonomy {
	t, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return t
}
