package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Input         string `toml:"input"`
	Follow        *bool  `toml:"follow"`
	Prefix        string `toml:"prefix"`
	Resync        string `toml:"resync"`
	MaxEmptyReads *int   `toml:"max_empty_reads"`
	DumpDir       string `toml:"dump_dir"`
	DumpKeep      int    `toml:"dump_keep"`
	MetricsAddr   string `toml:"metrics_addr"`
	LogLevel      string `toml:"log_level"`

	Stats StatsFileConfig `toml:"stats"`
}

// StatsFileConfig is the [stats] table.
type StatsFileConfig struct {
	Interval string `toml:"interval"`
	ProcRoot string `toml:"proc_root"`
	IWConfig string `toml:"iwconfig"`
	Iface    string `toml:"iface"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.framepipe/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".framepipe", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", fc.Input, &cfg.Input)
	s.setBool("follow", fc.Follow, &cfg.Follow)
	s.setString("prefix", fc.Prefix, &cfg.Prefix)
	s.setString("resync", fc.Resync, &cfg.Resync)
	s.setIntPtr("max-empty-reads", fc.MaxEmptyReads, &cfg.MaxEmptyReads)
	s.setString("dump-dir", fc.DumpDir, &cfg.DumpDir)
	s.setInt("dump-keep", fc.DumpKeep, &cfg.DumpKeep)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("interval", fc.Stats.Interval, &cfg.StatsInterval); err != nil {
		return err
	}
	s.setString("proc-root", fc.Stats.ProcRoot, &cfg.ProcRoot)
	s.setString("iwconfig", fc.Stats.IWConfig, &cfg.IWConfig)
	s.setString("iface", fc.Stats.Iface, &cfg.Iface)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
