package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	cmd := &cobra.Command{
		Use:           "weather-bot",
		Short:         "Telegram bot that replies with the current weather for a city",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if err := godotenv.Load(); err != nil {
				bootstrapLogger().Info().Err(err).Msg("no .env file loaded")
			}
		},
		// Running without a subcommand starts the bot.
		RunE: serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(newReportCmd())
	return cmd
}

// bootstrapLogger is used before configuration is available.
func bootstrapLogger() *zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return &logger
}
