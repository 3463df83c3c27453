package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/joeshaw/envdecode"

	"github.com/goliatone/go-formschema/pkg/orchestrator"
)

// Config holds the environment defaults. Flags override individual values.
type Config struct {
	Library      string        `env:"FORMSCHEMA_LIBRARY" json:"library,omitempty" jsonschema:"description=Destination library for to-form,enum=attrform,enum=chainform"`
	OnError      string        `env:"FORMSCHEMA_ON_ERROR,default=abort" json:"on_error" jsonschema:"description=Policy for untranslatable fields,enum=abort,enum=skip,default=abort"`
	LogLevel     string        `env:"FORMSCHEMA_LOG_LEVEL,default=info" json:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
	HTTPTimeout  time.Duration `env:"FORMSCHEMA_HTTP_TIMEOUT,default=10s" json:"http_timeout" jsonschema:"description=Timeout for URL sources in nanoseconds"`
	Sanitize     bool          `env:"FORMSCHEMA_SANITIZE,default=false" json:"sanitize" jsonschema:"description=Strip HTML from titles and descriptions"`
	DeriveTitles bool          `env:"FORMSCHEMA_DERIVE_TITLES,default=false" json:"derive_titles" jsonschema:"description=Derive missing titles from field names"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.OnError == "" {
		cfg.OnError = "abort"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

func (c Config) policy() (orchestrator.Policy, error) {
	switch strings.ToLower(c.OnError) {
	case "abort", "":
		return orchestrator.PolicyAbort, nil
	case "skip":
		return orchestrator.PolicySkip, nil
	}
	return orchestrator.PolicyAbort, fmt.Errorf("config: unknown on-error policy %q", c.OnError)
}

func (c Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: %w", err)
	}
	return level, nil
}

func (c Config) orchestratorOptions(logger *slog.Logger) ([]orchestrator.Option, error) {
	policy, err := c.policy()
	if err != nil {
		return nil, err
	}
	options := []orchestrator.Option{
		orchestrator.WithPolicy(policy),
		orchestrator.WithLogger(logger),
		orchestrator.WithDerivedTitles(c.DeriveTitles),
	}
	if c.Sanitize {
		options = append(options, orchestrator.WithHTMLStripping())
	}
	return options, nil
}

// configSchema reflects Config into a JSON Schema document.
func configSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	out := reflector.Reflect(&Config{})
	out.Title = "formschema-cli environment"
	return json.MarshalIndent(out, "", "  ")
}
