package remote

import (
	"bytes"
	"context"
	"time"

	"github.com/hejijunhao/dicelog/internal/connector"
	"github.com/hejijunhao/dicelog/internal/connector/htmldoc"
	"github.com/hejijunhao/dicelog/internal/connector/httpclient"
	"github.com/hejijunhao/dicelog/internal/model"
)

func init() {
	connector.Register("http", func() connector.Connector {
		return &Connector{}
	})
}

// Connector downloads an HTML log export over HTTP(S).
//
// Extra keys: "timeout" (Go duration, default 30s).
type Connector struct {
	opts []httpclient.Option
}

// Fetch downloads cfg.Location and extracts its message blocks. cfg.APIKey,
// when set, is sent as a Bearer token.
func (c *Connector) Fetch(ctx context.Context, cfg connector.ConnectorConfig) ([]model.Block, error) {
	opts := append([]httpclient.Option(nil), c.opts...)
	if v := cfg.Extra["timeout"]; v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			opts = append(opts, httpclient.WithTimeout(d))
		}
	}

	body, err := httpclient.New(cfg.APIKey, opts...).Get(ctx, cfg.Location)
	if err != nil {
		return nil, &connector.ReadError{Location: cfg.Location, Err: err}
	}

	tags := cfg.Tags
	if tags.Block == "" || tags.Field == "" {
		tags = htmldoc.DefaultTags()
	}
	blocks, err := htmldoc.Parse(bytes.NewReader(body), tags)
	if err != nil {
		return nil, &connector.ReadError{Location: cfg.Location, Err: err}
	}
	return blocks, nil
}
