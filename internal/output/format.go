package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hejijunhao/dicelog/internal/model"
)

// NoSkills is printed when the selected bucket yields no skill token.
const NoSkills = "なし"

// FormatCounts renders one "<label>：<count>" line per outcome.
func FormatCounts(s model.Summary) string {
	var b strings.Builder
	for _, o := range model.Outcomes() {
		fmt.Fprintf(&b, "%s：%d\n", o.Label(), s.Count(o))
	}
	return b.String()
}

// FormatWithSkills renders the counts followed, for a valid selection, by a
// line listing the skills rolled in that bucket. Any other selection yields
// the counts alone.
func FormatWithSkills(s model.Summary, sel model.Outcome, ex SkillExtractor) string {
	out := FormatCounts(s)
	entries, ok := s.Bucket(sel)
	if !ok {
		return out
	}
	list := RenderSkills(ex.Extract(entries), false)
	if list == "" {
		list = NoSkills
	}
	return out + fmt.Sprintf("%sした技能: %s\n", sel.Label(), list)
}

// FormatSkills renders the skills of one bucket as a sorted, bracketed
// list. An invalid selection yields the empty string.
func FormatSkills(s model.Summary, sel model.Outcome, ex SkillExtractor) string {
	entries, ok := s.Bucket(sel)
	if !ok {
		return ""
	}
	list := RenderSkills(ex.Extract(entries), true)
	if list == "" {
		return NoSkills
	}
	return list
}

// RenderSkills joins "token（n回）" items with ", ", ordered by the rendered
// token. bracketed wraps each token in 《》.
func RenderSkills(counts map[string]int, bracketed bool) string {
	type item struct {
		token string
		count int
	}
	items := make([]item, 0, len(counts))
	for token, n := range counts {
		if bracketed {
			token = "《" + token + "》"
		}
		items = append(items, item{token, n})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].token < items[j].token })

	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s（%d回）", it.token, it.count)
	}
	return strings.Join(parts, ", ")
}

// FormatEntries lists every entry of every bucket under a heading.
func FormatEntries(s model.Summary) string {
	var b strings.Builder
	for _, o := range model.Outcomes() {
		fmt.Fprintf(&b, "----- %s -----\n", o.Label())
		entries, _ := s.Bucket(o)
		for _, e := range entries {
			b.WriteString(e.String())
		}
	}
	return b.String()
}
