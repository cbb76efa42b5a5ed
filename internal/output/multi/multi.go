package multi

import (
	"context"
	"errors"
	"fmt"

	"github.com/hejijunhao/dicelog/internal/model"
	"github.com/hejijunhao/dicelog/internal/output"
)

// Multi delivers one report to several destinations, for example a terminal
// rendering plus a saved copy plus a chat webhook. Delivery is sequential and
// a failing destination does not stop the others.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi over the non-nil outputs, so optional destinations
// can be passed unconditionally.
func New(outputs ...output.Output) *Multi {
	m := &Multi{}
	for _, o := range outputs {
		if o != nil {
			m.outputs = append(m.outputs, o)
		}
	}
	return m
}

// Len reports how many destinations are wrapped.
func (m *Multi) Len() int { return len(m.outputs) }

// Write delivers the report everywhere and joins the failures, each tagged
// with the destination's position.
func (m *Multi) Write(ctx context.Context, report model.Report) error {
	var errs []error
	for i, o := range m.outputs {
		if err := o.Write(ctx, report); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every destination, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
