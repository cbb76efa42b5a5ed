package output

import (
	"context"

	"github.com/hejijunhao/dicelog/internal/model"
)

// Output defines the interface for report destinations.
type Output interface {
	Write(ctx context.Context, report model.Report) error
	Close() error
}

// SkillExtractor computes skill frequencies for a set of entries.
type SkillExtractor interface {
	Extract(entries []*model.Entry) map[string]int
}
