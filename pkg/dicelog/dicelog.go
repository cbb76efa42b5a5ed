package dicelog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hejijunhao/dicelog/internal/connector/htmldoc"
	"github.com/hejijunhao/dicelog/internal/engine"
	"github.com/hejijunhao/dicelog/internal/engine/classifier"
	"github.com/hejijunhao/dicelog/internal/engine/cutoff"
	"github.com/hejijunhao/dicelog/internal/engine/parser"
	"github.com/hejijunhao/dicelog/internal/engine/skill"
	"github.com/hejijunhao/dicelog/internal/engine/taxonomy"
)

// Dicelog analyzes chat log exports.
type Dicelog struct {
	engine *engine.Engine
	tags   htmldoc.Tags
}

// New creates a Dicelog instance.
func New(opts ...Option) (*Dicelog, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	strategy, err := skill.ParseStrategy(o.strategy)
	if err != nil {
		return nil, fmt.Errorf("dicelog: %w", err)
	}
	if o.blockTag == "" || o.fieldTag == "" {
		return nil, errors.New("dicelog: block and field tags must not be empty")
	}

	policy := engine.FailFast
	if o.lenient {
		policy = engine.SkipInvalid
	}
	eng := engine.New(
		parser.New(o.normalize),
		classifier.New(taxonomy.Default()),
		skill.New(strategy),
		cutoff.New(cutoff.Config{Marker: o.startMarker}),
		policy,
	)
	return &Dicelog{
		engine: eng,
		tags:   htmldoc.Tags{Block: o.blockTag, Field: o.fieldTag},
	}, nil
}

// Analyze reads an HTML export from r and builds its report. Parse
// failures match ErrMissingField, ErrWrongLineCount or ErrInvalidTabFormat
// under errors.Is.
func (d *Dicelog) Analyze(r io.Reader) (*Report, error) {
	blocks, err := htmldoc.Parse(r, d.tags)
	if err != nil {
		return nil, fmt.Errorf("dicelog: %w", err)
	}
	report, err := d.engine.Analyze(blocks)
	if err != nil {
		return nil, fmt.Errorf("dicelog: %w", err)
	}
	return newReport(report, d.engine.Extractor()), nil
}

// AnalyzeFile is Analyze over the file at path.
func (d *Dicelog) AnalyzeFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dicelog: %w", err)
	}
	defer f.Close()
	return d.Analyze(f)
}
