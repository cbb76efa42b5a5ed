package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hejijunhao/dicelog/internal/connector"
	"github.com/hejijunhao/dicelog/internal/model"
	"github.com/hejijunhao/dicelog/internal/output"
)

// Analyzer turns the message blocks of one transcript into a report.
// *engine.Engine satisfies it.
type Analyzer interface {
	Analyze(blocks []model.Block) (model.Report, error)
}

// Pipeline connects a connector, an analyzer, and an output.
type Pipeline struct {
	connector connector.Connector
	analyzer  Analyzer
	output    output.Output
}

// New creates a Pipeline from the given components.
func New(conn connector.Connector, an Analyzer, out output.Output) *Pipeline {
	return &Pipeline{
		connector: conn,
		analyzer:  an,
		output:    out,
	}
}

// Run fetches one transcript, analyzes it and writes the report. The
// report is returned even when writing it fails.
func (p *Pipeline) Run(ctx context.Context, cfg connector.ConnectorConfig) (model.Report, error) {
	start := time.Now()
	blocks, err := p.connector.Fetch(ctx, cfg)
	if err != nil {
		return model.Report{}, fmt.Errorf("pipeline fetch: %w", err)
	}
	slog.Debug("fetched transcript", "location", cfg.Location, "blocks", len(blocks), "elapsed", time.Since(start))

	start = time.Now()
	report, err := p.analyzer.Analyze(blocks)
	if err != nil {
		return model.Report{}, fmt.Errorf("pipeline analyze: %w", err)
	}
	slog.Debug("analyzed transcript", "entries", len(report.Entries), "characters", len(report.Characters), "elapsed", time.Since(start))

	if err := p.output.Write(ctx, report); err != nil {
		return report, fmt.Errorf("pipeline output: %w", err)
	}
	return report, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
