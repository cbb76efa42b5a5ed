package model

import "sort"

// Report is the result of analysing one transcript.
type Report struct {
	Entries    []*Entry           // entries after the start cutoff
	Overall    Summary            // all entries, ungrouped
	Characters map[string]Summary // per speaker, only non-empty summaries
	Skipped    int                // blocks dropped in lenient mode
}

// Names returns the character names in lexicographic order.
func (r Report) Names() []string {
	names := make([]string, 0, len(r.Characters))
	for name := range r.Characters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
