package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/framepipe/internal/app"
)

// StdioInput selects standard input as the frame stream.
const StdioInput = "-"

// Config holds CLI configuration for framepipe.
type Config struct {
	// Frame reader
	Input         string
	Follow        bool
	Prefix        string
	Resync        string
	MaxEmptyReads int
	DumpDir       string
	DumpKeep      int
	MetricsAddr   string
	LogLevel      string

	// Stats printer
	StatsInterval time.Duration
	ProcRoot      string
	IWConfig      string
	Iface         string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Input:         StdioInput,
		Resync:        app.ResyncRestart.String(),
		MaxEmptyReads: app.DefaultMaxEmptyReads,
		LogLevel:      zerolog.InfoLevel.String(),
		StatsInterval: time.Second,
		ProcRoot:      "/proc",
		IWConfig:      "/sbin/iwconfig",
		Iface:         "wlan0",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Input == "" {
		c.Input = StdioInput
	}
	if c.Follow && c.Input == StdioInput {
		return fmt.Errorf("follow requires a file input")
	}
	if _, err := app.ParseResyncPolicy(c.Resync); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.DumpKeep < 0 {
		return fmt.Errorf("dump-keep must not be negative")
	}
	if c.StatsInterval <= 0 {
		return fmt.Errorf("stats interval must be positive")
	}
	return nil
}

// ReaderConfig converts the CLI settings into the frame reader's Config.
func (c Config) ReaderConfig() (app.Config, error) {
	policy, err := app.ParseResyncPolicy(c.Resync)
	if err != nil {
		return app.Config{}, err
	}
	rc := app.DefaultConfig()
	rc.Resync = policy
	rc.MaxEmptyReads = c.MaxEmptyReads
	return rc, nil
}

// configSetter applies configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntPtr sets an int value from a pointer, accepting zero and negatives.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination.
// Zero and negative values are kept; used for environment variables.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
