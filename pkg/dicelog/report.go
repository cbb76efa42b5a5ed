package dicelog

import (
	"github.com/hejijunhao/dicelog/internal/model"
	"github.com/hejijunhao/dicelog/internal/output"
)

// Report is the analysis of one transcript. Methods that take a name look it
// up among the characters only; the empty string is a legal character name.
// Use Overall for the whole transcript.
type Report struct {
	report model.Report
	ex     output.SkillExtractor
}

func newReport(r model.Report, ex output.SkillExtractor) *Report {
	return &Report{report: r, ex: ex}
}

// Entries returns the messages kept after the start marker, in log order.
func (r *Report) Entries() []Entry {
	return entriesFromModel(r.report.Entries)
}

// Characters returns, sorted, the speakers with at least one classified roll.
func (r *Report) Characters() []string {
	return r.report.Names()
}

// Skipped is the number of malformed blocks dropped in lenient mode.
func (r *Report) Skipped() int {
	return r.report.Skipped
}

// Overall is the summary of every classified roll in the transcript.
func (r *Report) Overall() Summary {
	return Summary{s: r.report.Overall, ex: r.ex}
}

// Character returns the summary of name. ok is false when name has no
// classified roll.
func (r *Report) Character(name string) (s Summary, ok bool) {
	ms, ok := r.report.Characters[name]
	return Summary{s: ms, ex: r.ex}, ok
}

// Counts returns the outcome counts for name. ok is false when name has no
// classified roll.
func (r *Report) Counts(name string) (c Counts, ok bool) {
	s, ok := r.Character(name)
	if !ok {
		return Counts{}, false
	}
	return s.Counts(), true
}

// Rolls returns the entries of name classified under o.
func (r *Report) Rolls(name string, o Outcome) []Entry {
	s, _ := r.Character(name)
	return s.Rolls(o)
}

// Skills counts the skills name rolled with outcome o. The map is empty for
// an unknown name and nil for an invalid outcome.
func (r *Report) Skills(name string, o Outcome) map[string]int {
	s, _ := r.Character(name)
	return s.Skills(o)
}

// Format renders the counts of name, followed by the skill line for o when
// o is one of the four outcomes.
func (r *Report) Format(name string, o Outcome) string {
	s, _ := r.Character(name)
	return s.Format(o)
}

// SkillList renders the skills of name for o as "《skill》（n回）" items
// sorted by skill, "なし" when there are none, or "" for an invalid o.
func (r *Report) SkillList(name string, o Outcome) string {
	s, _ := r.Character(name)
	return s.SkillList(o)
}

// Summary holds the classified rolls of one character or of the whole
// transcript.
type Summary struct {
	s  model.Summary
	ex output.SkillExtractor
}

func (s Summary) Counts() Counts {
	return countsFromSummary(s.s)
}

func (s Summary) Rolls(o Outcome) []Entry {
	entries, _ := s.s.Bucket(o)
	return entriesFromModel(entries)
}

func (s Summary) Skills(o Outcome) map[string]int {
	entries, ok := s.s.Bucket(o)
	if !ok {
		return nil
	}
	return s.ex.Extract(entries)
}

func (s Summary) Format(o Outcome) string {
	return output.FormatWithSkills(s.s, o, s.ex)
}

func (s Summary) SkillList(o Outcome) string {
	return output.FormatSkills(s.s, o, s.ex)
}

func entriesFromModel(entries []*model.Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = entryFromModel(e)
	}
	return out
}
