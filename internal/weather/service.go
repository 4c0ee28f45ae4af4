package weather

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var errNoProvider = errors.New("no weather provider configured")

// Service fetches current conditions from the provider and builds reports.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new Service.
func NewService(provider Provider, logger zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// Report fetches the current weather for query and converts it into a Report.
func (s *Service) Report(ctx context.Context, query string) (Report, error) {
	if s.provider == nil {
		return nil, errNoProvider
	}

	raw, err := s.provider.Fetch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.provider.Name(), err)
	}

	report, err := BuildReport(raw)
	if err != nil {
		s.logger.Error().Err(err).Str("city", query).Msg("cannot build weather report")
		return nil, err
	}

	s.logger.Debug().
		Str("city", query).
		Str("report", report.Render()).
		Msg("weather report built")
	return report, nil
}
