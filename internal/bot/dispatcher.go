package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DigestRequest asks for a report to be sent to a chat without an inbound message.
type DigestRequest struct {
	ChatID int64
	City   string
}

// Dispatcher routes inbound updates and digest requests to the Handler,
// one at a time.
type Dispatcher struct {
	handler *Handler
	digests chan DigestRequest
	logger  zerolog.Logger
}

func NewDispatcher(handler *Handler, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		digests: make(chan DigestRequest, 1),
		logger:  logger,
	}
}

// Enqueue schedules a digest. It never blocks: if a digest is already
// pending the request is dropped and false is returned.
func (d *Dispatcher) Enqueue(chatID int64, city string) bool {
	select {
	case d.digests <- DigestRequest{ChatID: chatID, City: city}:
		return true
	default:
		d.logger.Warn().Int64("chat_id", chatID).Str("city", city).Msg("digest already pending; dropping request")
		return false
	}
}

// Run processes events until ctx is done or updates is closed.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			d.dispatch(ctx, update)
		case req := <-d.digests:
			log := d.eventLogger(req.ChatID)
			if err := d.handler.Digest(ctx, req.ChatID, req.City); err != nil {
				log.Error().Err(err).Str("city", req.City).Msg("digest failed")
				continue
			}
			log.Info().Str("city", req.City).Msg("digest sent")
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	log := d.eventLogger(msg.Chat.ID)

	// Commands other than /start are never looked up as a city.
	if msg.IsCommand() {
		if msg.Command() != "start" {
			log.Debug().Str("command", msg.Command()).Msg("ignoring unknown command")
			return
		}
		if err := d.handler.Start(ctx, msg.Chat.ID, firstName(msg)); err != nil {
			log.Error().Err(err).Msg("start command failed")
			return
		}
		log.Info().Msg("start command handled")
		return
	}

	if msg.Text == "" {
		return
	}
	if err := d.handler.Weather(ctx, msg.Chat.ID, msg.Text); err != nil {
		log.Error().Err(err).Str("city", msg.Text).Msg("weather request failed")
		return
	}
	log.Info().Str("city", msg.Text).Msg("weather report sent")
}

func (d *Dispatcher) eventLogger(chatID int64) zerolog.Logger {
	return d.logger.With().
		Str("event_id", uuid.NewString()).
		Int64("chat_id", chatID).
		Logger()
}

func firstName(msg *tgbotapi.Message) string {
	if msg.From != nil && msg.From.FirstName != "" {
		return msg.From.FirstName
	}
	return msg.Chat.FirstName
}
