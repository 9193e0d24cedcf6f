package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("FRAMEPIPE_INPUT", "/dev/ttyUSB0")
	t.Setenv("FRAMEPIPE_PREFIX", "OD: ")
	t.Setenv("FRAMEPIPE_RESYNC", "scan")
	t.Setenv("FRAMEPIPE_MAX_EMPTY_READS", "0")
	t.Setenv("FRAMEPIPE_FOLLOW", "1")
	t.Setenv("FRAMEPIPE_STATS_INTERVAL", "250ms")
	t.Setenv("FRAMEPIPE_LOG_LEVEL", "warn")

	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	if err := ApplyEnvConfig(&cfg, map[string]bool{"log-level": true}); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.Input != "/dev/ttyUSB0" || !cfg.Follow {
		t.Errorf("input = %q follow = %v", cfg.Input, cfg.Follow)
	}
	if cfg.Prefix != "OD: " || cfg.Resync != "scan" {
		t.Errorf("prefix = %q resync = %q", cfg.Prefix, cfg.Resync)
	}
	if cfg.MaxEmptyReads != 0 {
		t.Errorf("MaxEmptyReads = %d, want 0", cfg.MaxEmptyReads)
	}
	if cfg.StatsInterval != 250*time.Millisecond {
		t.Errorf("StatsInterval = %v", cfg.StatsInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, flag value should win", cfg.LogLevel)
	}
}

func TestApplyEnvConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"FRAMEPIPE_MAX_EMPTY_READS", "lots"},
		{"FRAMEPIPE_DUMP_KEEP", "1.5"},
		{"FRAMEPIPE_STATS_INTERVAL", "fast"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := DefaultConfig()
			if err := ApplyEnvConfig(&cfg, nil); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
