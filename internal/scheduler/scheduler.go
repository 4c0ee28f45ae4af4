package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// Queue accepts digest requests for later delivery.
type Queue interface {
	Enqueue(chatID int64, city string) bool
}

// Scheduler periodically queues a weather digest for the configured chat.
type Scheduler struct {
	scheduler *gocron.Scheduler
	queue     Queue
	chatID    int64
	city      string
	interval  time.Duration
	logger    zerolog.Logger
}

// New creates a new Scheduler. An empty city disables it.
func New(chatID int64, city string, interval time.Duration, queue Queue, logger zerolog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		queue:     queue,
		chatID:    chatID,
		city:      city,
		interval:  interval,
		logger:    logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start schedules the digest job and starts the underlying scheduler.
// The first digest is queued immediately.
func (s *Scheduler) Start() error {
	if s.city == "" {
		s.logger.Info().Msg("no digest city configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		if s.queue.Enqueue(s.chatID, s.city) {
			s.logger.Debug().Str("city", s.city).Int64("chat_id", s.chatID).Msg("digest queued")
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info().Str("city", s.city).Dur("interval", interval).Msg("digest scheduled")
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
