package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rickgao/emoji-trader/internal/config"
)

var (
	configPath string
	envFiles   []string
)

// rootCmd runs the bootstrap and then waits for a shutdown signal.
var rootCmd = &cobra.Command{
	Use:   "trader",
	Short: "Register with the emoji exchange and prepare an authenticated client",
	Long: `trader checks that the exchange is reachable, reuses cached team credentials
or registers the team to obtain new ones, and configures the API client with
the team's authentication headers. It then runs until interrupted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runTrader,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (built-in defaults when empty)")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files loaded before the config")
}

// loadConfig loads dotenv files and the validated config named by the flags.
func loadConfig() (*config.TraderConfig, error) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}
	return config.LoadAndValidate(configPath)
}

// newLogger builds the process logger from the log config.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}
