package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/framepipe/internal/cliconfig"
)

const longHelp = `
Read a raw frame stream ('A' W H BPP RUN 'Z' + payload) and report progress as
one status line per event on stdout. Logs go to stderr.

Configuration is read from $HOME/.framepipe/config.toml, then FRAMEPIPE_*
environment variables, then flags.
`

var exampleUsage = strings.TrimSpace(`
  camera-feed | framepipe --prefix "OD: "
  framepipe read --input /var/run/frames.raw --follow --dump-dir /tmp/frames
  framepipe gen --width 64 --height 48 --count 3 --stop | framepipe read
  framepipe stats --iface wlan1
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli holds the settings shared by all subcommands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	c := &cli{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:           "framepipe",
		Short:         "Read a raw frame stream and report status lines",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runRead,
	}

	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.framepipe/config.toml)")
	root.PersistentFlags().StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	addReadFlags(root.Flags(), &c.cfg)

	root.AddCommand(newReadCmd(c), newStatsCmd(c), newGenCmd())
	return root
}

// loadConfig layers the config file and environment under explicitly set flags.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	} else if c.cfgPath != "" {
		return fmt.Errorf("config file %s not found", c.cfgPath)
	}

	// FRAMEPIPE_* override the file but not flags.
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	return c.cfg.Validate()
}

// execute runs root and returns the process exit code, logging any failure.
func execute(root *cobra.Command) int {
	if err := root.Execute(); err != nil {
		log := cliconfig.Logger()
		log.Error().Err(err).Msg("framepipe")
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
