package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hejijunhao/dicelog/internal/config"
	"github.com/hejijunhao/dicelog/internal/connector"
	"github.com/hejijunhao/dicelog/internal/connector/htmldoc"
	"github.com/hejijunhao/dicelog/internal/engine"
	"github.com/hejijunhao/dicelog/internal/engine/classifier"
	"github.com/hejijunhao/dicelog/internal/engine/cutoff"
	"github.com/hejijunhao/dicelog/internal/engine/parser"
	"github.com/hejijunhao/dicelog/internal/engine/skill"
	"github.com/hejijunhao/dicelog/internal/engine/taxonomy"
	"github.com/hejijunhao/dicelog/internal/logging"
	"github.com/hejijunhao/dicelog/internal/model"
	"github.com/hejijunhao/dicelog/internal/output"
	"github.com/hejijunhao/dicelog/internal/output/file"
	"github.com/hejijunhao/dicelog/internal/output/multi"
	"github.com/hejijunhao/dicelog/internal/output/stdout"
	"github.com/hejijunhao/dicelog/internal/output/webhook"
	"github.com/hejijunhao/dicelog/internal/pipeline"

	// Register connector implementations.
	_ "github.com/hejijunhao/dicelog/internal/connector/file"
	_ "github.com/hejijunhao/dicelog/internal/connector/remote"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dicelog: %s\n", describe(err))
		stop()
		os.Exit(1)
	}
}

// describe labels parse failures so they read differently from I/O errors.
func describe(err error) string {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return "parse error: " + err.Error()
	}
	return err.Error()
}

// flags holds command-line overrides. Only flags the user set are applied
// on top of the environment.
type flags struct {
	category   string
	character  string
	lenient    bool
	format     string
	verbosity  string
	outputFile string
	webhook    string
	connector  string
	strategy   string
	pretty     bool
	skillsOnly bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "dicelog [file|url]",
		Short: "Count dice-roll outcomes in a TRPG chat log",
		Long: "dicelog reads an HTML chat log export and reports, per character, how many\n" +
			"rolls were successes, failures, criticals and fumbles, plus the skills\n" +
			"rolled for a chosen outcome.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, f.skillsOnly)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.category, "category", "c", "", "outcome whose skills are listed: success, failure, critical, fumble or none")
	pf.StringVar(&f.character, "character", "", "only report this character")
	pf.BoolVar(&f.lenient, "lenient", false, "skip malformed message blocks instead of failing")
	pf.StringVarP(&f.format, "format", "f", "", "report format: text or json")
	pf.StringVarP(&f.verbosity, "verbosity", "v", "", "minimal, standard or full")
	pf.StringVarP(&f.outputFile, "output-file", "o", "", "also save the report to this file")
	pf.StringVar(&f.webhook, "webhook", "", "also POST the report to this URL")
	pf.StringVar(&f.connector, "connector", "", "transcript source: file or http (default from the argument)")
	pf.StringVar(&f.strategy, "strategy", "", "skill token strategy: delimiter or bracket")
	pf.BoolVar(&f.pretty, "pretty", false, "indent JSON output")
	pf.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	cmd.Flags().BoolVar(&f.skillsOnly, "skills-only", false, "print only the skill list of --category per character")

	cmd.AddCommand(newSkillsCmd(&f))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newSkillsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "skills <category> [file|url]",
		Short: "List the skills rolled for one outcome, per character",
		Example: "  dicelog skills critical session.html\n" +
			"  dicelog skills ファンブル session.html",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, ok := model.ParseOutcome(args[0])
			if !ok || sel == model.NoOutcome {
				return fmt.Errorf("unknown category %q", args[0])
			}
			cfg, err := loadConfig(cmd, *f, args[1:])
			if err != nil {
				return err
			}
			cfg.Output.Category = sel.String()
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, true)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dicelog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dicelog %s\n", config.Version)
		},
	}
}

// loadConfig reads the environment, then applies flags and the source
// argument.
func loadConfig(cmd *cobra.Command, f flags, args []string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	changed := cmd.Flags().Changed

	if len(args) > 0 {
		cfg.Connector.Source = args[0]
		if !changed("connector") && isURL(args[0]) {
			cfg.Connector.Provider = "http"
		}
	}
	if changed("connector") {
		cfg.Connector.Provider = f.connector
	}
	if changed("category") {
		cfg.Output.Category = f.category
	}
	if changed("character") {
		cfg.Output.Character = f.character
		cfg.Output.CharacterSet = true
	}
	if changed("lenient") {
		cfg.Engine.Strict = !f.lenient
	}
	if changed("format") {
		cfg.Output.Format = f.format
	}
	if changed("verbosity") {
		cfg.Output.Verbosity = f.verbosity
	}
	if changed("strategy") {
		cfg.Engine.SkillStrategy = f.strategy
	}
	if changed("pretty") {
		cfg.Output.Pretty = f.pretty
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("output-file") {
		cfg.Output.File = f.outputFile
		addDestination(&cfg, "file")
	}
	if changed("webhook") {
		cfg.Output.WebhookURL = f.webhook
		addDestination(&cfg, "webhook")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

func addDestination(cfg *config.Config, name string) {
	if !cfg.HasDestination(name) {
		cfg.Output.Destinations = append(cfg.Output.Destinations, name)
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func run(ctx context.Context, stdoutW, stderrW io.Writer, cfg config.Config, skillsOnly bool) error {
	logging.Init(stderrW, logging.ParseLevel(cfg.LogLevel))

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	opts := output.Options{
		Format:     output.Format(cfg.Output.Format),
		Verbosity:  output.ParseVerbosity(cfg.Output.Verbosity),
		Outcome:    cfg.Outcome(),
		Pretty:     cfg.Output.Pretty,
		SkillsOnly: skillsOnly,

		SingleCharacter: cfg.Output.CharacterSet,
		Character:       cfg.Output.Character,
	}
	out, err := buildOutput(cfg, opts, eng.Extractor(), stdoutW)
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, eng, out)
	if err != nil {
		return err
	}
	_, runErr := p.Run(ctx, connector.ConnectorConfig{
		Provider: cfg.Connector.Provider,
		Location: cfg.Connector.Source,
		APIKey:   cfg.Connector.APIKey,
		Tags:     htmldoc.Tags{Block: cfg.Connector.BlockTag, Field: cfg.Connector.FieldTag},
		Extra:    map[string]string{"timeout": cfg.Connector.Timeout.String()},
	})
	return errors.Join(runErr, p.Close())
}

// newPipeline takes ownership of out and closes it when no pipeline can be
// built around it.
func newPipeline(cfg config.Config, eng *engine.Engine, out output.Output) (*pipeline.Pipeline, error) {
	ctor, err := connector.Get(cfg.Connector.Provider)
	if err != nil {
		return nil, errors.Join(err, out.Close())
	}
	return pipeline.New(ctor(), eng, out), nil
}

func buildEngine(cfg config.Config) (*engine.Engine, error) {
	strategy, err := skill.ParseStrategy(cfg.Engine.SkillStrategy)
	if err != nil {
		return nil, err
	}
	policy := engine.FailFast
	if !cfg.Engine.Strict {
		policy = engine.SkipInvalid
	}
	return engine.New(
		parser.New(cfg.Engine.Normalize),
		classifier.New(taxonomy.Default()),
		skill.New(strategy),
		cutoff.New(cutoff.Config{Marker: cfg.Engine.StartMarker}),
		policy,
	), nil
}

// buildOutput assembles every configured destination behind one Output.
func buildOutput(cfg config.Config, opts output.Options, ex output.SkillExtractor, w io.Writer) (output.Output, error) {
	var outs []output.Output
	if cfg.HasDestination("stdout") {
		outs = append(outs, stdout.New(opts, ex, stdout.WithWriter(w)))
	}
	if cfg.HasDestination("file") {
		var fileOpts []file.Option
		if cfg.Output.Append {
			fileOpts = append(fileOpts, file.WithAppend())
		}
		fo, err := file.New(cfg.Output.File, opts, ex, fileOpts...)
		if err != nil {
			return nil, err
		}
		outs = append(outs, fo)
	}
	if cfg.HasDestination("webhook") {
		var hookOpts []webhook.Option
		if cfg.Output.WebhookField != "" {
			hookOpts = append(hookOpts, webhook.WithTextField(cfg.Output.WebhookField))
		}
		outs = append(outs, webhook.New(cfg.Output.WebhookURL, opts, ex, hookOpts...))
	}
	return multi.New(outs...), nil
}
