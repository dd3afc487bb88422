package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rickgao/emoji-trader/internal/credentials"
)

// credentialsCmd prints the cached record without contacting the exchange.
var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Show the cached team credentials",
	Long:  `Reads the configured credential store and prints the cached record with the API key masked.`,
	Args:  cobra.NoArgs,
	RunE:  showCredentials,
}

func init() {
	rootCmd.AddCommand(credentialsCmd)
}

func showCredentials(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	store, closeStore, err := credentials.Open(cmd.Context(), cfg.Credentials, logger.With(slog.String("cmd", "credentials")))
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer closeStore()

	out := cmd.OutOrStdout()
	creds, ok := store.Load(cmd.Context())
	if !ok {
		fmt.Fprintf(out, "no credentials stored (backend %s)\n", cfg.Credentials.Backend)
		return nil
	}

	fmt.Fprintf(out, "team_id:      %s\n", creds.TeamID)
	fmt.Fprintf(out, "api_key:      %s\n", creds.MaskedAPIKey())
	fmt.Fprintf(out, "initial_cash: %s\n", creds.InitialCash.String())
	return nil
}
