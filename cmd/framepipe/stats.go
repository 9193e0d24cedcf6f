package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/framepipe/internal/cliconfig"
	"github.com/bft-labs/framepipe/internal/sysstats"
	"github.com/bft-labs/framepipe/pkg/log"
)

func newStatsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print uptime minutes, load average x10 and wireless signal once per interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			zl, err := cliconfig.NewLogger(c.cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p := sysstats.NewPrinter(sysstats.Config{
				Interval: c.cfg.StatsInterval,
				ProcRoot: c.cfg.ProcRoot,
				IWConfig: c.cfg.IWConfig,
				Iface:    c.cfg.Iface,
			}, cmd.OutOrStdout(), sysstats.ExecRunner, log.NewZerologAdapterWithLogger(zl))

			return p.Run(ctx)
		},
	}

	fs := cmd.Flags()
	fs.DurationVar(&c.cfg.StatsInterval, "interval", c.cfg.StatsInterval, "sampling interval")
	fs.StringVar(&c.cfg.ProcRoot, "proc-root", c.cfg.ProcRoot, "procfs mount point")
	fs.StringVar(&c.cfg.IWConfig, "iwconfig", c.cfg.IWConfig, "path to the iwconfig binary")
	fs.StringVar(&c.cfg.Iface, "iface", c.cfg.Iface, "wireless interface to query")
	return cmd
}
