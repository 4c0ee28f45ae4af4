package bot

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/i474232898/weather-bot/internal/weather"
)

const (
	greetingTemplate = "Спасибо, что включили меня, %s!"
	ackTemplate      = "В настоящий момент погода в %s такая:"
	failureTemplate  = "Не удалось получить погоду для %s."
)

// Keyboard is the quick-reply grid shown on /start.
var Keyboard = [][]string{
	{"Провидения", "Анадырь", "Угольные Копи"},
	{"Эгвекинот", "Лаврентия", "Мыс Шмидта"},
	{"Певек", "Билибино", "Беринговский"},
}

// Reporter produces a weather report for a free-text location.
type Reporter interface {
	Report(ctx context.Context, query string) (weather.Report, error)
}

// Sender delivers outbound messages to a chat.
type Sender interface {
	SendText(chatID int64, text string) error
	SendKeyboard(chatID int64, text string, rows [][]string) error
}

// Handler reacts to inbound chat events.
type Handler struct {
	reporter Reporter
	sender   Sender
	logger   zerolog.Logger
}

func NewHandler(reporter Reporter, sender Sender, logger zerolog.Logger) *Handler {
	return &Handler{
		reporter: reporter,
		sender:   sender,
		logger:   logger,
	}
}

// Start greets the user and shows the place-name keyboard.
func (h *Handler) Start(_ context.Context, chatID int64, firstName string) error {
	if err := h.sender.SendKeyboard(chatID, fmt.Sprintf(greetingTemplate, firstName), Keyboard); err != nil {
		return fmt.Errorf("send greeting: %w", err)
	}
	return nil
}

// Weather acknowledges the query, then replies with the report or, if the
// report cannot be produced, with a failure notice.
func (h *Handler) Weather(ctx context.Context, chatID int64, city string) error {
	if err := h.sender.SendText(chatID, fmt.Sprintf(ackTemplate, city)); err != nil {
		return fmt.Errorf("send acknowledgement: %w", err)
	}
	return h.reply(ctx, chatID, city)
}

// Digest sends the report without the acknowledgement.
func (h *Handler) Digest(ctx context.Context, chatID int64, city string) error {
	return h.reply(ctx, chatID, city)
}

func (h *Handler) reply(ctx context.Context, chatID int64, city string) error {
	report, err := h.reporter.Report(ctx, city)
	if err != nil {
		if sendErr := h.sender.SendText(chatID, fmt.Sprintf(failureTemplate, city)); sendErr != nil {
			h.logger.Error().Err(sendErr).Int64("chat_id", chatID).Msg("cannot send failure notice")
		}
		return fmt.Errorf("weather report for %q: %w", city, err)
	}

	if err := h.sender.SendText(chatID, report.Render()); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	return nil
}
