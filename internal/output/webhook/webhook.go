package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hejijunhao/dicelog/internal/model"
	"github.com/hejijunhao/dicelog/internal/output"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultBaseDelay = time.Second
	maxRetries       = 3
)

// Option configures a webhook Output.
type Option func(*Output)

// WithHeaders sets custom HTTP headers sent with every POST.
func WithHeaders(h map[string]string) Option {
	return func(o *Output) { o.headers = h }
}

// WithTimeout sets the HTTP client timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(o *Output) { o.client.Timeout = d }
}

// WithBaseDelay sets the first retry delay; later retries double it.
// Default: 1s.
func WithBaseDelay(d time.Duration) Option {
	return func(o *Output) { o.baseDelay = d }
}

// WithTextField posts the text rendering as {"<field>": "..."} instead of
// the JSON report. Chat webhooks expect this shape ("content" for Discord,
// "text" for Slack).
func WithTextField(field string) Option {
	return func(o *Output) { o.textField = field }
}

// Output POSTs each report to an HTTP endpoint. Retries on 5xx with
// exponential backoff.
type Output struct {
	client    *http.Client
	url       string
	headers   map[string]string
	baseDelay time.Duration
	textField string
	opts      output.Options
	ex        output.SkillExtractor
}

// New creates a webhook output targeting url.
func New(url string, opts output.Options, ex output.SkillExtractor, options ...Option) *Output {
	o := &Output{
		client:    &http.Client{Timeout: defaultTimeout},
		url:       url,
		baseDelay: defaultBaseDelay,
		opts:      opts,
		ex:        ex,
	}
	for _, opt := range options {
		opt(o)
	}
	return o
}

func (o *Output) Write(ctx context.Context, report model.Report) error {
	body, err := o.payload(report)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	return o.postWithRetry(ctx, body)
}

func (o *Output) Close() error {
	return nil
}

func (o *Output) payload(report model.Report) ([]byte, error) {
	opts := o.opts
	if o.textField == "" {
		opts.Format = output.FormatJSON
		var buf bytes.Buffer
		if err := output.Render(&buf, report, opts, o.ex); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	opts.Format = output.FormatText
	var sb strings.Builder
	if err := output.Render(&sb, report, opts, o.ex); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]string{o.textField: sb.String()})
}

// postWithRetry sends the body via HTTP POST with retry on 5xx.
func (o *Output) postWithRetry(ctx context.Context, body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := o.baseDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return fmt.Errorf("webhook: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range o.headers {
			req.Header.Set(k, v)
		}

		resp, err := o.client.Do(req)
		if err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}

		lastErr = fmt.Errorf("webhook: HTTP %d", resp.StatusCode)
		if resp.StatusCode < 500 {
			return lastErr
		}
	}
	return lastErr
}
