package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/framepipe"
	"github.com/bft-labs/framepipe/internal/adapters/fs"
	"github.com/bft-labs/framepipe/internal/adapters/source"
	"github.com/bft-labs/framepipe/internal/cliconfig"
	"github.com/bft-labs/framepipe/internal/metrics"
	"github.com/bft-labs/framepipe/pkg/log"
)

const shutdownTimeout = 5 * time.Second

func newReadCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read frames and print status lines (default command)",
		Args:  cobra.NoArgs,
		RunE:  c.runRead,
	}
	addReadFlags(cmd.Flags(), &c.cfg)
	return cmd
}

func addReadFlags(flags *pflag.FlagSet, cfg *cliconfig.Config) {
	flags.StringVarP(&cfg.Input, "input", "i", cfg.Input, `frame stream path, "-" for stdin`)
	flags.BoolVar(&cfg.Follow, "follow", cfg.Follow, "keep reading as the input file grows")
	flags.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, `prefix for every status line (e.g. "OD: ")`)
	flags.StringVar(&cfg.Resync, "resync", cfg.Resync, "recovery after a bad Z marker: restart or scan")
	flags.IntVar(&cfg.MaxEmptyReads, "max-empty-reads", cfg.MaxEmptyReads, "consecutive empty reads before giving up (0: default, negative: never)")
	flags.StringVar(&cfg.DumpDir, "dump-dir", cfg.DumpDir, "write each received payload to this directory")
	flags.IntVar(&cfg.DumpKeep, "dump-keep", cfg.DumpKeep, "keep only the newest N dumps (0: keep all)")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve /metrics and /healthz on this address")
}

func (c *cli) runRead(cmd *cobra.Command, _ []string) error {
	if err := c.loadConfig(cmd); err != nil {
		return err
	}
	cfg := c.cfg

	zl, err := cliconfig.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewZerologAdapterWithLogger(zl)
	zl.Debug().Interface("config", cfg).Msg("configuration")

	src, closeSrc, err := openInput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	rc, err := cfg.ReaderConfig()
	if err != nil {
		return err
	}
	opts := []framepipe.Option{framepipe.WithLogger(logger)}

	if cfg.DumpDir != "" {
		opts = append(opts, framepipe.WithFrameHandler(fs.NewFrameDumper(cfg.DumpDir, cfg.DumpKeep)))
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, framepipe.WithObserver(metrics.NewCollector(metrics.Config{Registry: reg})))

		srv := metrics.NewServer(cfg.MetricsAddr, reg)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", log.Err(err))
			}
		}()
		logger.Info("serving metrics", log.String("addr", cfg.MetricsAddr))
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("metrics server shutdown", log.Err(err))
			}
		}()
	}

	r, err := framepipe.New(framepipe.Config{
		Prefix:        cfg.Prefix,
		Resync:        rc.Resync,
		MaxEmptyReads: rc.MaxEmptyReads,
	}, src, cmd.OutOrStdout(), opts...)
	if err != nil {
		return fmt.Errorf("create reader: %w", err)
	}
	return r.Run()
}

// openInput returns the byte source and its release func.
func openInput(cmd *cobra.Command, cfg cliconfig.Config) (io.Reader, func(), error) {
	if cfg.Input == cliconfig.StdioInput {
		return cmd.InOrStdin(), func() {}, nil
	}

	if !cfg.Follow {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	ff, err := source.OpenFollow(cfg.Input)
	if err != nil {
		return nil, nil, err
	}

	// A signal closes the follower, which ends the stream cleanly.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		_ = ff.Close()
	}()
	return ff, func() {
		stop()
		_ = ff.Close()
	}, nil
}
