package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/i474232898/weather-bot/internal/common"
	"github.com/i474232898/weather-bot/internal/config"
	"github.com/i474232898/weather-bot/internal/weather"
	"github.com/i474232898/weather-bot/internal/weather/providers"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <city>",
		Short: "Print the current weather report for a city",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadReportOnly()
			if err != nil {
				bootstrapLogger().WithLevel(zerolog.FatalLevel).Err(err).Msg("cannot load configuration")
				return err
			}

			logger, err := common.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
			if err != nil {
				return err
			}

			httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
			provider := providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, cfg.WeatherEndpoint, logger)
			service := weather.NewService(provider, logger)

			return printReport(cmd.Context(), service, strings.Join(args, " "), cmd.OutOrStdout())
		},
	}
}

func printReport(ctx context.Context, service *weather.Service, city string, out io.Writer) error {
	report, err := service.Report(ctx, city)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "* * * * * * %s * * * * * *\n", city)
	fmt.Fprintln(out, report.Render())
	return nil
}
