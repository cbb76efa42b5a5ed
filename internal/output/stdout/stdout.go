package stdout

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hejijunhao/dicelog/internal/model"
	"github.com/hejijunhao/dicelog/internal/output"
)

// Option configures a stdout Output.
type Option func(*Output)

// WithWriter redirects rendering away from os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *Output) { o.w = w }
}

// Output renders reports as text or JSON to stdout.
type Output struct {
	w    io.Writer
	opts output.Options
	ex   output.SkillExtractor
}

// New creates a stdout Output rendering with opts. ex supplies the skill
// lists for the selected outcome.
func New(opts output.Options, ex output.SkillExtractor, options ...Option) *Output {
	o := &Output{w: os.Stdout, opts: opts, ex: ex}
	for _, opt := range options {
		opt(o)
	}
	return o
}

func (o *Output) Write(_ context.Context, report model.Report) error {
	if err := output.Render(o.w, report, o.opts, o.ex); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
