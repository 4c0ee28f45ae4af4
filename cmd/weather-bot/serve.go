package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-bot/internal/api/http"
	"github.com/i474232898/weather-bot/internal/bot"
	"github.com/i474232898/weather-bot/internal/common"
	"github.com/i474232898/weather-bot/internal/config"
	"github.com/i474232898/weather-bot/internal/scheduler"
	"github.com/i474232898/weather-bot/internal/weather"
	"github.com/i474232898/weather-bot/internal/weather/providers"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot, digest scheduler and HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		bootstrapLogger().WithLevel(zerolog.FatalLevel).Err(err).Msg("cannot load configuration")
		return err
	}

	logger, err := common.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		return err
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	provider := providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, cfg.WeatherEndpoint, logger)
	service := weather.NewService(provider, logger)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Error().Err(err).Msg("cannot connect to telegram")
		return err
	}
	logger.Info().Str("bot", api.Self.UserName).Msg("authorized on telegram")

	handler := bot.NewHandler(service, bot.NewTelegramSender(api), logger)
	dispatcher := bot.NewDispatcher(handler, logger)

	sched := scheduler.New(cfg.TelegramChatID, cfg.DigestCity, cfg.DigestInterval, dispatcher, logger)
	if err := sched.Start(); err != nil {
		logger.Error().Err(err).Msg("cannot start scheduler")
		return err
	}
	defer sched.Stop()

	app := httpapi.NewApp(service)
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	logger.Info().Str("port", cfg.Port).Msg("weather bot started")
	dispatcher.Run(ctx, updates)

	logger.Info().Msg("shutting down")
	api.StopReceivingUpdates()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during http shutdown")
	}
	return nil
}
