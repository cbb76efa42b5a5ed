package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/hejijunhao/dicelog/internal/engine/skill"
	"github.com/hejijunhao/dicelog/internal/model"
)

// Version is the dicelog release version.
const Version = "0.3.0"

// Config holds all dicelog configuration.
type Config struct {
	Connector ConnectorConfig
	Engine    EngineConfig
	Output    OutputConfig
	LogLevel  string `env:"DICELOG_LOG_LEVEL" envDefault:"info"`
}

// ConnectorConfig says where the transcript comes from.
type ConnectorConfig struct {
	Provider string        `env:"DICELOG_CONNECTOR" envDefault:"file"`
	Source   string        `env:"DICELOG_SOURCE" envDefault:"data/log.html"`
	APIKey   string        `env:"DICELOG_API_KEY"`
	BlockTag string        `env:"DICELOG_BLOCK_TAG" envDefault:"p"`
	FieldTag string        `env:"DICELOG_FIELD_TAG" envDefault:"span"`
	Timeout  time.Duration `env:"DICELOG_HTTP_TIMEOUT" envDefault:"30s"`
}

// EngineConfig holds parsing and classification settings.
type EngineConfig struct {
	Strict        bool   `env:"DICELOG_STRICT" envDefault:"true"`
	Normalize     bool   `env:"DICELOG_NORMALIZE"`
	SkillStrategy string `env:"DICELOG_SKILL_STRATEGY" envDefault:"delimiter"`
	StartMarker   string `env:"DICELOG_START_MARKER" envDefault:"---start---"`
}

// OutputConfig holds report rendering and destination settings.
type OutputConfig struct {
	Destinations []string `env:"DICELOG_OUTPUT" envSeparator:"," envDefault:"stdout"`
	Format       string   `env:"DICELOG_OUTPUT_FORMAT" envDefault:"text"`
	Pretty       bool     `env:"DICELOG_OUTPUT_PRETTY"`
	File         string   `env:"DICELOG_OUTPUT_FILE"`
	Append       bool     `env:"DICELOG_OUTPUT_APPEND"`
	WebhookURL   string   `env:"DICELOG_WEBHOOK_URL"`
	WebhookField string   `env:"DICELOG_WEBHOOK_FIELD"`
	Category     string   `env:"DICELOG_CATEGORY" envDefault:"none"`
	Character    string   `env:"DICELOG_CHARACTER"`
	Verbosity    string   `env:"DICELOG_VERBOSITY" envDefault:"standard"`

	// CharacterSet is true when Character was given at all, since the
	// empty string is itself a character name.
	CharacterSet bool
}

const characterVar = "DICELOG_CHARACTER"

// Load reads configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	_, cfg.Output.CharacterSet = os.LookupEnv(characterVar)
	return cfg, nil
}

// LoadFrom reads configuration from the given variables only.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	_, cfg.Output.CharacterSet = vars[characterVar]
	return cfg, nil
}

// Outcome returns the selected category. Validate reports unparsable values.
func (c Config) Outcome() model.Outcome {
	o, _ := model.ParseOutcome(c.Output.Category)
	return o
}

// HasDestination reports whether name is among the configured outputs.
func (c Config) HasDestination(name string) bool {
	for _, d := range c.Output.Destinations {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}

// Validate checks the configuration for errors. Returns all problems found,
// joined.
func (c Config) Validate() error {
	var errs []error

	switch c.Connector.Provider {
	case "file":
		if c.Connector.Source == "" {
			errs = append(errs, errors.New("DICELOG_SOURCE must name a file"))
		}
	case "http":
		u, err := url.Parse(c.Connector.Source)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("DICELOG_SOURCE must be an http(s) URL, got %q", c.Connector.Source))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown connector %q", c.Connector.Provider))
	}
	if c.Connector.BlockTag == "" || c.Connector.FieldTag == "" {
		errs = append(errs, errors.New("block and field tags must not be empty"))
	}
	if c.Connector.Timeout < 0 {
		errs = append(errs, fmt.Errorf("http timeout must be >= 0, got %v", c.Connector.Timeout))
	}

	if _, err := skill.ParseStrategy(c.Engine.SkillStrategy); err != nil {
		errs = append(errs, err)
	}

	if len(c.Output.Destinations) == 0 {
		errs = append(errs, errors.New("at least one output is required"))
	}
	for _, d := range c.Output.Destinations {
		switch strings.ToLower(strings.TrimSpace(d)) {
		case "stdout":
		case "file":
			if c.Output.File == "" {
				errs = append(errs, errors.New("file output requires DICELOG_OUTPUT_FILE"))
			}
		case "webhook":
			if c.Output.WebhookURL == "" {
				errs = append(errs, errors.New("webhook output requires DICELOG_WEBHOOK_URL"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown output %q", d))
		}
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("output format must be text or json, got %q", c.Output.Format))
	}
	if _, ok := model.ParseOutcome(c.Output.Category); !ok {
		errs = append(errs, fmt.Errorf("unknown category %q", c.Output.Category))
	}
	switch c.Output.Verbosity {
	case "minimal", "standard", "full":
	default:
		errs = append(errs, fmt.Errorf("verbosity must be minimal, standard, or full, got %q", c.Output.Verbosity))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log level must be debug, info, warn, or error, got %q", c.LogLevel))
	}

	return errors.Join(errs...)
}
