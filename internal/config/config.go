// Package config loads simulator settings from audiometry.yaml and
// AUDIOMETRY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sky-flux/audiometry"
	"github.com/spf13/viper"
)

// Config is the top-level configuration structure.
type Config struct {
	Procedure ProcedureConfig `mapstructure:"procedure"`
	Response  ResponseConfig  `mapstructure:"response"`
	Protocol  ProtocolConfig  `mapstructure:"protocol"`
	Roster    RosterConfig    `mapstructure:"roster"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Seed      int64           `mapstructure:"seed"`
}

// ProcedureConfig holds the staircase settings.
type ProcedureConfig struct {
	DescendStep      int  `mapstructure:"descend_step"`
	AscendStep       int  `mapstructure:"ascend_step"`
	SearchStep       int  `mapstructure:"search_step"`
	RequiredHits     int  `mapstructure:"required_hits"`
	MaxPresentations int  `mapstructure:"max_presentations"`
	CountFirstAscent bool `mapstructure:"count_first_ascent"`
}

// ResponseConfig holds the simulated patient settings.
type ResponseConfig struct {
	// Variability is the jitter half-width in dB, default 3. An explicit 0
	// gives a deterministic patient, the same as Deterministic.
	Variability       int  `mapstructure:"variability"`
	FallbackThreshold int  `mapstructure:"fallback_threshold"`
	Deterministic     bool `mapstructure:"deterministic"`
}

// ProtocolConfig selects the frequency order.
type ProtocolConfig struct {
	Order string `mapstructure:"order"`
}

// RosterConfig selects the patient. An empty Path uses the built-in roster.
type RosterConfig struct {
	Path      string `mapstructure:"path"`
	PatientID int    `mapstructure:"patient_id"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Procedure defaults
	v.SetDefault("procedure.descend_step", 10)
	v.SetDefault("procedure.ascend_step", 5)
	v.SetDefault("procedure.search_step", 10)
	v.SetDefault("procedure.required_hits", 2)
	v.SetDefault("procedure.max_presentations", 60)
	v.SetDefault("procedure.count_first_ascent", false)

	// Response defaults
	v.SetDefault("response.variability", 3)
	v.SetDefault("response.fallback_threshold", 20)
	v.SetDefault("response.deterministic", false)

	v.SetDefault("protocol.order", "standard")

	v.SetDefault("roster.path", "")
	v.SetDefault("roster.patient_id", 1)

	v.SetDefault("seed", 0)

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
}

// Load reads audiometry.yaml from dir, if present, and applies environment
// overrides such as AUDIOMETRY_PROTOCOL_ORDER.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName("audiometry")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("AUDIOMETRY") // e.g., AUDIOMETRY_RESPONSE_VARIABILITY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing file is fine; defaults and env vars are used.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Response.Variability < 0 {
		return nil, fmt.Errorf("config: response.variability %d must not be negative: %w",
			cfg.Response.Variability, audiometry.ErrInvalidConfig)
	}
	if _, err := audiometry.ParseProtocolOrder(cfg.Protocol.Order); err != nil {
		return nil, fmt.Errorf("config: protocol.order: %w", err)
	}
	return &cfg, nil
}

// ControllerConfig converts the settings into an audiometry.ControllerConfig.
func (c *Config) ControllerConfig() (audiometry.ControllerConfig, error) {
	order, err := audiometry.ParseProtocolOrder(c.Protocol.Order)
	if err != nil {
		return audiometry.ControllerConfig{}, err
	}
	return audiometry.ControllerConfig{
		Engine: audiometry.EngineConfig{
			DescendStep:      c.Procedure.DescendStep,
			AscendStep:       c.Procedure.AscendStep,
			SearchStep:       c.Procedure.SearchStep,
			RequiredHits:     c.Procedure.RequiredHits,
			MaxPresentations: c.Procedure.MaxPresentations,
			CountFirstAscent: c.Procedure.CountFirstAscent,
		},
		Response: audiometry.ResponseConfig{
			Variability:       c.Response.Variability,
			FallbackThreshold: c.Response.FallbackThreshold,
			Deterministic:     c.Response.Deterministic || c.Response.Variability == 0,
		},
		Order: order,
		Seed:  c.Seed,
	}, nil
}
