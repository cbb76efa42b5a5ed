package engine

import (
	"log/slog"

	"github.com/hejijunhao/dicelog/internal/engine/classifier"
	"github.com/hejijunhao/dicelog/internal/engine/cutoff"
	"github.com/hejijunhao/dicelog/internal/engine/parser"
	"github.com/hejijunhao/dicelog/internal/engine/skill"
	"github.com/hejijunhao/dicelog/internal/model"
)

// Policy decides what a malformed block does to the rest of the batch.
type Policy int

const (
	FailFast    Policy = iota // first malformed block aborts the batch
	SkipInvalid               // malformed blocks are logged and dropped
)

// Engine orchestrates the parse → cutoff → classify pipeline.
type Engine struct {
	parser     *parser.Parser
	classifier *classifier.Classifier
	extractor  *skill.Extractor
	cutoff     *cutoff.Cutoff
	policy     Policy
}

// New creates an Engine with the provided components.
func New(p *parser.Parser, cls *classifier.Classifier, ext *skill.Extractor, cut *cutoff.Cutoff, policy Policy) *Engine {
	return &Engine{
		parser:     p,
		classifier: cls,
		extractor:  ext,
		cutoff:     cut,
		policy:     policy,
	}
}

// Parse turns blocks into entries according to the engine's policy and
// applies the start cutoff. skipped counts blocks dropped under SkipInvalid.
func (e *Engine) Parse(blocks []model.Block) (entries []*model.Entry, skipped int, err error) {
	switch e.policy {
	case SkipInvalid:
		for i, r := range e.parser.ParseEach(blocks) {
			if r.Err != nil {
				slog.Warn("skipping malformed block", "index", i, "error", r.Err)
				skipped++
				continue
			}
			entries = append(entries, r.Entry)
		}
	default:
		entries, err = e.parser.ParseBatch(blocks)
		if err != nil {
			return nil, 0, err
		}
	}
	return e.cutoff.Apply(entries), skipped, nil
}

// Summarize classifies all entries without grouping.
func (e *Engine) Summarize(entries []*model.Entry) model.Summary {
	return e.classifier.Classify(entries)
}

// ByCharacter classifies the entries of each speaker separately. Speakers
// without any classified entry are left out.
func (e *Engine) ByCharacter(entries []*model.Entry) map[string]model.Summary {
	groups := make(map[string][]*model.Entry)
	for _, entry := range entries {
		groups[entry.Name] = append(groups[entry.Name], entry)
	}

	out := make(map[string]model.Summary, len(groups))
	for name, group := range groups {
		s := e.classifier.Classify(group)
		if s.Total() == 0 {
			continue
		}
		out[name] = s
	}
	return out
}

// Skills counts skill tokens in the given entries.
func (e *Engine) Skills(entries []*model.Entry) map[string]int {
	return e.extractor.Extract(entries)
}

// Extractor returns the skill extractor in use.
func (e *Engine) Extractor() *skill.Extractor {
	return e.extractor
}

// Analyze runs the full pipeline over one transcript.
func (e *Engine) Analyze(blocks []model.Block) (model.Report, error) {
	entries, skipped, err := e.Parse(blocks)
	if err != nil {
		return model.Report{}, err
	}
	slog.Debug("parsed transcript", "blocks", len(blocks), "entries", len(entries), "skipped", skipped)
	return model.Report{
		Entries:    entries,
		Overall:    e.Summarize(entries),
		Characters: e.ByCharacter(entries),
		Skipped:    skipped,
	}, nil
}
