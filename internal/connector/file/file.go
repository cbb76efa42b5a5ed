package file

import (
	"context"
	"os"

	"github.com/hejijunhao/dicelog/internal/connector"
	"github.com/hejijunhao/dicelog/internal/connector/htmldoc"
	"github.com/hejijunhao/dicelog/internal/model"
)

func init() {
	connector.Register("file", func() connector.Connector {
		return &Connector{}
	})
}

// Connector reads an HTML log export from the local filesystem.
type Connector struct{}

// Fetch opens cfg.Location and extracts its message blocks.
func (c *Connector) Fetch(_ context.Context, cfg connector.ConnectorConfig) ([]model.Block, error) {
	f, err := os.Open(cfg.Location)
	if err != nil {
		return nil, &connector.ReadError{Location: cfg.Location, Err: err}
	}
	defer f.Close()

	tags := cfg.Tags
	if tags.Block == "" || tags.Field == "" {
		tags = htmldoc.DefaultTags()
	}
	blocks, err := htmldoc.Parse(f, tags)
	if err != nil {
		return nil, &connector.ReadError{Location: cfg.Location, Err: err}
	}
	return blocks, nil
}
