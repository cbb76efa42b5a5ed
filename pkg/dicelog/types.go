package dicelog

import (
	"github.com/hejijunhao/dicelog/internal/engine/parser"
	"github.com/hejijunhao/dicelog/internal/model"
)

// Outcome is one of the four roll result categories, or NoOutcome.
type Outcome = model.Outcome

const (
	NoOutcome = model.NoOutcome
	Success   = model.Success
	Failure   = model.Failure
	Critical  = model.Critical
	Fumble    = model.Fumble
)

// ParseOutcome accepts "success", "failure", "critical", "fumble", the
// Japanese labels, or "none".
func ParseOutcome(s string) (Outcome, bool) { return model.ParseOutcome(s) }

// Parse failure kinds, for use with errors.Is.
var (
	ErrMissingField     = parser.ErrMissingField
	ErrWrongLineCount   = parser.ErrWrongLineCount
	ErrInvalidTabFormat = parser.ErrInvalidTabFormat
)

// Entry is one chat message.
type Entry struct {
	Tab   string   `json:"tab"`
	Name  string   `json:"name"`
	Texts []string `json:"texts"`
}

// Counts holds the size of each outcome bucket.
type Counts struct {
	Success  int `json:"success"`
	Failure  int `json:"failure"`
	Critical int `json:"critical"`
	Fumble   int `json:"fumble"`
}

// Total is the sum of the four buckets.
func (c Counts) Total() int {
	return c.Success + c.Failure + c.Critical + c.Fumble
}

func countsFromSummary(s model.Summary) Counts {
	return Counts{
		Success:  s.Count(model.Success),
		Failure:  s.Count(model.Failure),
		Critical: s.Count(model.Critical),
		Fumble:   s.Count(model.Fumble),
	}
}

func entryFromModel(e *model.Entry) Entry {
	texts := make([]string, len(e.Texts))
	copy(texts, e.Texts)
	return Entry{Tab: e.Tab, Name: e.Name, Texts: texts}
}
