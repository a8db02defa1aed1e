// Package config provides Viper-based configuration loading for the textmoba binary.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is the zap sink the logger writes to, e.g. "stderr" or a file path.
	Output string `mapstructure:"output"`
}

// GameConfig holds match setup settings.
type GameConfig struct {
	// Seed selects the random source: 0 uses crypto randomness, any other value a
	// deterministic source seeded with it.
	Seed int64 `mapstructure:"seed"`
	// ContentDir is a directory holding nodes.yaml, classes.yaml, skills.yaml and
	// gameplay.yaml. Empty means the embedded default content.
	ContentDir string `mapstructure:"content_dir"`
	// PlayerClass is the class ID the player character is spawned with.
	PlayerClass string `mapstructure:"player_class"`
	// PlayerTeam is the team the player fights for: "blue" or "red".
	PlayerTeam string `mapstructure:"player_team"`
}

// RulesConfig holds switches for behaviour that differs between rule sets.
type RulesConfig struct {
	// PlayerInTurnLoop makes the player receive hero regeneration and buff ticks in
	// the turn loop like every other character.
	PlayerInTurnLoop bool `mapstructure:"player_in_turn_loop"`
	// LevelUpTeams lists the teams whose heroes convert experience into levels.
	LevelUpTeams []string `mapstructure:"level_up_teams"`
}

// TelemetryConfig holds OpenTelemetry tracing settings.
type TelemetryConfig struct {
	// Enabled installs an OTLP/HTTP exporter configured from the OTEL_* environment.
	Enabled bool `mapstructure:"enabled"`
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `mapstructure:"service_name"`
}

// TelnetConfig holds the optional Telnet acceptor that serves one match per
// connection instead of playing on the terminal.
type TelnetConfig struct {
	// Enabled switches the binary from the local terminal to the Telnet listener.
	Enabled bool `mapstructure:"enabled"`
	// Host is the bind address for the Telnet listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the Telnet listener.
	Port int `mapstructure:"port"`
	// ReadTimeout is the per-read timeout for Telnet connections; 0 disables it.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the per-write timeout for Telnet connections; 0 disables it.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the "host:port" listen address.
func (t TelnetConfig) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Game      GameConfig      `mapstructure:"game"`
	Rules     RulesConfig     `mapstructure:"rules"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Telnet    TelnetConfig    `mapstructure:"telnet"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRules(c.Rules); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTelemetry(c.Telemetry); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTelnet(c.Telnet); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

var validTeams = map[string]bool{"blue": true, "red": true}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.PlayerClass == "" {
		errs = append(errs, "game.player_class must not be empty")
	}
	if !validTeams[g.PlayerTeam] {
		errs = append(errs, fmt.Sprintf("game.player_team must be one of [blue, red], got %q", g.PlayerTeam))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRules(r RulesConfig) error {
	for _, team := range r.LevelUpTeams {
		if !validTeams[team] {
			return fmt.Errorf("rules.level_up_teams entries must be one of [blue, red], got %q", team)
		}
	}
	return nil
}

func validateTelemetry(t TelemetryConfig) error {
	if t.Enabled && t.ServiceName == "" {
		return errors.New("telemetry.service_name must not be empty when telemetry is enabled")
	}
	return nil
}

func validateTelnet(t TelnetConfig) error {
	if !t.Enabled {
		return nil
	}
	var errs []string
	if t.Port < 0 || t.Port > 65535 {
		errs = append(errs, fmt.Sprintf("telnet.port must be 0-65535, got %d", t.Port))
	}
	if t.ReadTimeout < 0 {
		errs = append(errs, "telnet.read_timeout must not be negative")
	}
	if t.WriteTimeout < 0 {
		errs = append(errs, "telnet.write_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides only.
//
// Precondition: path is empty or names a readable YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with TEXTMOBA_ prefix
	v.SetEnvPrefix("TEXTMOBA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	setDefaults(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.content_dir", "")
	v.SetDefault("game.player_class", "ranger")
	v.SetDefault("game.player_team", "blue")

	v.SetDefault("rules.player_in_turn_loop", true)
	v.SetDefault("rules.level_up_teams", []string{"blue"})

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "textmoba")

	v.SetDefault("telnet.enabled", false)
	v.SetDefault("telnet.host", "127.0.0.1")
	v.SetDefault("telnet.port", 4000)
	v.SetDefault("telnet.read_timeout", 10*time.Minute)
	v.SetDefault("telnet.write_timeout", 10*time.Second)
}
