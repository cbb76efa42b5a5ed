package classifier

import (
	"github.com/hejijunhao/dicelog/internal/engine/taxonomy"
	"github.com/hejijunhao/dicelog/internal/model"
)

// Classifier buckets entries by outcome. Each outcome is an independent
// predicate, so one entry may land in several buckets.
type Classifier struct {
	taxonomy *taxonomy.Taxonomy
}

// New creates a Classifier over the given taxonomy.
func New(tax *taxonomy.Taxonomy) *Classifier {
	return &Classifier{taxonomy: tax}
}

// Matches reports whether any text line of e satisfies the rule for o.
func (c *Classifier) Matches(e *model.Entry, o model.Outcome) bool {
	rule, ok := c.taxonomy.Rule(o)
	if !ok {
		return false
	}
	for _, text := range e.Texts {
		if rule.Match(text) {
			return true
		}
	}
	return false
}

// Filter returns the entries matching o, in input order.
func (c *Classifier) Filter(entries []*model.Entry, o model.Outcome) []*model.Entry {
	var out []*model.Entry
	for _, e := range entries {
		if c.Matches(e, o) {
			out = append(out, e)
		}
	}
	return out
}

// Classify partitions entries into the four outcome buckets. The input is
// not modified.
func (c *Classifier) Classify(entries []*model.Entry) model.Summary {
	return model.Summary{
		Successes: c.Filter(entries, model.Success),
		Failures:  c.Filter(entries, model.Failure),
		Criticals: c.Filter(entries, model.Critical),
		Fumbles:   c.Filter(entries, model.Fumble),
	}
}
