package weather

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	raw   RawResponse
	err   error
	query string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Fetch(_ context.Context, query string) (RawResponse, error) {
	p.query = query
	return p.raw, p.err
}

func TestServiceReport(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	provider := &stubProvider{raw: decodeSample(t, samplePayload)}

	report, err := NewService(provider, logger).Report(context.Background(), "Анадырь")
	require.NoError(t, err)

	assert.Equal(t, "Анадырь", provider.query)
	assert.Len(t, report, len(Fields))
	assert.Contains(t, buf.String(), "weather report built")
}

func TestServiceReport_ProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.Join(ErrTransport, errors.New("dial tcp: refused"))}

	_, err := NewService(provider, zerolog.Nop()).Report(context.Background(), "Певек")
	require.ErrorIs(t, err, ErrTransport)
}

func TestServiceReport_ShapeError(t *testing.T) {
	var buf bytes.Buffer
	provider := &stubProvider{raw: RawResponse{"current": map[string]any{}}}

	_, err := NewService(provider, zerolog.New(&buf)).Report(context.Background(), "Певек")
	require.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, buf.String(), "cannot build weather report")
}

func TestServiceReport_NoProvider(t *testing.T) {
	_, err := NewService(nil, zerolog.Nop()).Report(context.Background(), "Певек")
	require.Error(t, err)
}
