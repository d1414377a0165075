package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eoscore/eosgo"
)

var (
	endpoint string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "eosctl",
	Short: "Sign and push EOSIO transactions from the command line",
	Long: `eosctl is a thin CLI front-end for the eos package: add keys to an
in-memory keychain, push actions as a signed transaction, and inspect chain
state (get_info, get_abi, get_table_rows).`,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		zerolog.SetGlobalLevel(level)
		return nil
	},
}

// Execute adds all child commands to rootCmd and runs it. Called once by main.
func Execute() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", envOr("EOSCTL_ENDPOINT", "https://eos.greymass.com"),
		"EOSIO node RPC endpoint")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("EOSCTL_LOG_LEVEL", "info"),
		"log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newAddKeyCmd(),
		newPushCmd(),
		newGetInfoCmd(),
		newGetAbiCmd(),
		newGetTableRowsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("eosctl: command failed")
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func newClient() *eos.Client {
	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	return eos.NewClient(endpoint, eos.WithLogger(logger))
}
