package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (FRAMEPIPE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", os.Getenv("FRAMEPIPE_INPUT"), &cfg.Input)
	s.setBoolFromString("follow", os.Getenv("FRAMEPIPE_FOLLOW"), &cfg.Follow)
	s.setString("prefix", os.Getenv("FRAMEPIPE_PREFIX"), &cfg.Prefix)
	s.setString("resync", os.Getenv("FRAMEPIPE_RESYNC"), &cfg.Resync)
	if err := s.setIntFromString("max-empty-reads", os.Getenv("FRAMEPIPE_MAX_EMPTY_READS"), &cfg.MaxEmptyReads); err != nil {
		return err
	}
	s.setString("dump-dir", os.Getenv("FRAMEPIPE_DUMP_DIR"), &cfg.DumpDir)
	if err := s.setIntFromString("dump-keep", os.Getenv("FRAMEPIPE_DUMP_KEEP"), &cfg.DumpKeep); err != nil {
		return err
	}
	s.setString("metrics-addr", os.Getenv("FRAMEPIPE_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("log-level", os.Getenv("FRAMEPIPE_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("interval", os.Getenv("FRAMEPIPE_STATS_INTERVAL"), &cfg.StatsInterval); err != nil {
		return err
	}
	s.setString("proc-root", os.Getenv("FRAMEPIPE_PROC_ROOT"), &cfg.ProcRoot)
	s.setString("iwconfig", os.Getenv("FRAMEPIPE_IWCONFIG"), &cfg.IWConfig)
	s.setString("iface", os.Getenv("FRAMEPIPE_IFACE"), &cfg.Iface)

	return nil
}
