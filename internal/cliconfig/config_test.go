package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Input != StdioInput {
		t.Errorf("Input = %q, want %q", cfg.Input, StdioInput)
	}
	if cfg.MaxEmptyReads != 100 {
		t.Errorf("MaxEmptyReads = %d, want 100", cfg.MaxEmptyReads)
	}
	if cfg.Prefix != "" {
		t.Errorf("Prefix = %q, want empty", cfg.Prefix)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"empty input becomes stdin", func(c *Config) { c.Input = "" }, false},
		{"follow stdin", func(c *Config) { c.Follow = true }, true},
		{"follow file", func(c *Config) { c.Follow = true; c.Input = "/tmp/x" }, false},
		{"scan resync", func(c *Config) { c.Resync = "scan" }, false},
		{"bad resync", func(c *Config) { c.Resync = "rewind" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"negative dump keep", func(c *Config) { c.DumpKeep = -1 }, true},
		{"zero interval", func(c *Config) { c.StatsInterval = 0 }, true},
		{"unbounded empty reads", func(c *Config) { c.MaxEmptyReads = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ReaderConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resync = "scan"
	cfg.MaxEmptyReads = 7

	rc, err := cfg.ReaderConfig()
	if err != nil {
		t.Fatalf("ReaderConfig: %v", err)
	}
	if rc.Resync.String() != "scan" {
		t.Errorf("Resync = %s, want scan", rc.Resync)
	}
	if rc.MaxEmptyReads != 7 {
		t.Errorf("MaxEmptyReads = %d, want 7", rc.MaxEmptyReads)
	}
}

func TestConfigSetter_RespectsChangedFlags(t *testing.T) {
	s := newConfigSetter(map[string]bool{"prefix": true, "interval": true})

	prefix := "flag"
	s.setString("prefix", "file", &prefix)
	if prefix != "flag" {
		t.Errorf("prefix = %q, want flag value kept", prefix)
	}

	d := time.Second
	if err := s.setDuration("interval", "5s", &d); err != nil {
		t.Fatalf("setDuration: %v", err)
	}
	if d != time.Second {
		t.Errorf("interval = %v, want 1s kept", d)
	}

	n := 100
	zero := 0
	s.setIntPtr("max-empty-reads", &zero, &n)
	if n != 0 {
		t.Errorf("max-empty-reads = %d, want 0", n)
	}
}
