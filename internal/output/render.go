package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hejijunhao/dicelog/internal/model"
)

// Verbosity controls how much of a report is rendered.
type Verbosity int

const (
	Minimal  Verbosity = iota // overall counts only
	Standard                  // overall and per-character counts with skills
	Full                      // standard plus every classified entry
)

// ParseVerbosity maps "minimal", "standard" or "full" to a Verbosity.
// Unknown strings default to Standard.
func ParseVerbosity(s string) Verbosity {
	switch strings.ToLower(s) {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ErrUnknownCharacter is returned when the selected Options.Character names
// nobody with a classified roll.
var ErrUnknownCharacter = errors.New("character has no classified rolls")

// OverallHeading titles the whole-transcript section.
const OverallHeading = "総計"

// Options controls report rendering.
type Options struct {
	Format    Format
	Verbosity Verbosity
	Outcome   model.Outcome // bucket whose skills are listed; NoOutcome for none
	Pretty    bool          // indent JSON

	// SingleCharacter renders only the section of Character. The empty
	// string is a legal name, so Character alone selects nothing.
	SingleCharacter bool
	Character       string

	// SkillsOnly reduces the text rendering to one "<title>: <skills>" line
	// per section, using the bracketed list of the Outcome bucket.
	SkillsOnly bool
}

// Render writes report to w in the configured format.
func Render(w io.Writer, report model.Report, opts Options, ex SkillExtractor) error {
	if opts.SingleCharacter {
		if _, ok := report.Characters[opts.Character]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCharacter, opts.Character)
		}
	}
	if opts.Format == FormatJSON {
		return renderJSON(w, report, opts, ex)
	}
	return renderText(w, report, opts, ex)
}

type section struct {
	title   string
	summary model.Summary
}

func sections(report model.Report, opts Options) []section {
	if opts.SingleCharacter {
		return []section{{opts.Character, report.Characters[opts.Character]}}
	}
	out := []section{{OverallHeading, report.Overall}}
	if opts.Verbosity == Minimal {
		return out
	}
	for _, name := range report.Names() {
		out = append(out, section{name, report.Characters[name]})
	}
	return out
}

func renderText(w io.Writer, report model.Report, opts Options, ex SkillExtractor) error {
	var b strings.Builder
	for _, sec := range sections(report, opts) {
		if opts.SkillsOnly {
			fmt.Fprintf(&b, "%s: %s\n", sec.title, FormatSkills(sec.summary, opts.Outcome, ex))
			continue
		}
		fmt.Fprintf(&b, "===== %s =====\n", sec.title)
		b.WriteString(FormatWithSkills(sec.summary, opts.Outcome, ex))
		if opts.Verbosity == Full {
			b.WriteString(FormatEntries(sec.summary))
		}
	}
	if report.Skipped > 0 {
		fmt.Fprintf(&b, "(skipped %d malformed blocks)\n", report.Skipped)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type jsonCounts struct {
	Success  int `json:"success"`
	Failure  int `json:"failure"`
	Critical int `json:"critical"`
	Fumble   int `json:"fumble"`
}

type jsonBuckets struct {
	Success  []*model.Entry `json:"success"`
	Failure  []*model.Entry `json:"failure"`
	Critical []*model.Entry `json:"critical"`
	Fumble   []*model.Entry `json:"fumble"`
}

type jsonSummary struct {
	Counts  jsonCounts     `json:"counts"`
	Skills  map[string]int `json:"skills,omitempty"`
	Entries *jsonBuckets   `json:"entries,omitempty"`
}

type jsonReport struct {
	Outcome    string                 `json:"outcome,omitempty"`
	Overall    *jsonSummary           `json:"overall,omitempty"`
	Characters map[string]jsonSummary `json:"characters,omitempty"`
	Skipped    int                    `json:"skipped,omitempty"`
}

func toJSONSummary(s model.Summary, opts Options, ex SkillExtractor) jsonSummary {
	js := jsonSummary{Counts: jsonCounts{
		Success:  len(s.Successes),
		Failure:  len(s.Failures),
		Critical: len(s.Criticals),
		Fumble:   len(s.Fumbles),
	}}
	if entries, ok := s.Bucket(opts.Outcome); ok {
		js.Skills = ex.Extract(entries)
	}
	if opts.Verbosity == Full {
		js.Entries = &jsonBuckets{
			Success:  s.Successes,
			Failure:  s.Failures,
			Critical: s.Criticals,
			Fumble:   s.Fumbles,
		}
	}
	return js
}

func renderJSON(w io.Writer, report model.Report, opts Options, ex SkillExtractor) error {
	jr := jsonReport{Skipped: report.Skipped}
	if opts.Outcome.Valid() {
		jr.Outcome = opts.Outcome.String()
	}
	secs := sections(report, opts)
	if !opts.SingleCharacter {
		overall := toJSONSummary(secs[0].summary, opts, ex)
		jr.Overall = &overall
		secs = secs[1:]
	}
	for _, sec := range secs {
		if jr.Characters == nil {
			jr.Characters = make(map[string]jsonSummary, len(secs))
		}
		jr.Characters[sec.title] = toJSONSummary(sec.summary, opts, ex)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if opts.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(jr); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
