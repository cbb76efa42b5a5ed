package connector

import (
	"context"
	"fmt"

	"github.com/hejijunhao/dicelog/internal/connector/htmldoc"
	"github.com/hejijunhao/dicelog/internal/model"
)

// Connector defines the interface all transcript sources must implement.
type Connector interface {
	// Fetch loads one transcript and splits it into message blocks.
	Fetch(ctx context.Context, cfg ConnectorConfig) ([]model.Block, error)
}

// ConnectorConfig holds source-specific settings.
type ConnectorConfig struct {
	Provider string
	Location string // file path or URL
	APIKey   string
	Tags     htmldoc.Tags
	Extra    map[string]string
}

// ReadError reports that the transcript could not be loaded. It is kept
// apart from parse failures so callers can tell the two apart.
type ReadError struct {
	Location string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Location, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
