package model

import (
	"fmt"
	"strings"
)

// Entry is one parsed chat message. Entries are built by the parser and
// never modified afterwards; collections share them by pointer.
type Entry struct {
	Tab   string   `json:"tab"`   // channel name with brackets stripped
	Name  string   `json:"name"`  // speaker display name, may be empty
	Texts []string `json:"texts"` // message lines, trimmed
}

// NewEntry returns an Entry owning a copy of texts.
func NewEntry(tab, name string, texts []string) *Entry {
	cp := make([]string, len(texts))
	copy(cp, texts)
	return &Entry{Tab: tab, Name: name, Texts: cp}
}

// IsMarker reports whether the entry consists of exactly one line equal to marker.
func (e *Entry) IsMarker(marker string) bool {
	return len(e.Texts) == 1 && e.Texts[0] == marker
}

// String renders the entry as tab, name and numbered text lines.
func (e *Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tab:%s\n", e.Tab)
	fmt.Fprintf(&b, "name:%s\n", e.Name)
	for i, text := range e.Texts {
		fmt.Fprintf(&b, "%d:%s\n", i, text)
	}
	return b.String()
}
