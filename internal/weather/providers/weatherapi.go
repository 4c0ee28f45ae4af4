package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-bot/internal/weather"
)

// DefaultWeatherAPIEndpoint is the WeatherAPI.com current conditions endpoint.
const DefaultWeatherAPIEndpoint = "http://api.weatherapi.com/v1/current.json"

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	logger  zerolog.Logger
}

func NewWeatherAPIProvider(client *http.Client, apiKey, baseURL string, logger zerolog.Logger) *WeatherAPIProvider {
	if baseURL == "" {
		baseURL = DefaultWeatherAPIEndpoint
	}
	httpCfg := HTTPClientConfig{
		Client:      client,
		MaxFailures: 5,
		OpenTimeout: 30 * time.Second,
	}

	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("weatherapi", httpCfg),
		logger:  logger.With().Str("provider", "weatherapi").Logger(),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// Fetch requests current conditions for query. The query is passed through
// verbatim; language and air quality flags are fixed.
func (p *WeatherAPIProvider) Fetch(ctx context.Context, query string) (weather.RawResponse, error) {
	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", query)
	values.Set("aqi", "no")
	values.Set("lang", "ru")

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, req)
	if err != nil {
		p.logger.Error().Err(err).Str("city", query).Msg("weather provider request failed")
		return nil, fmt.Errorf("%w: %v", weather.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Error().Int("status", resp.StatusCode).Str("city", query).Msg("weather endpoint unavailable")
		return nil, fmt.Errorf("%w: status %d", weather.ErrWrongEndpoint, resp.StatusCode)
	}

	payload, err := decodeRawResponse(resp.Body)
	if err != nil {
		p.logger.Error().Err(err).Str("city", query).Msg("cannot decode weather response")
		return nil, fmt.Errorf("%w: %v", weather.ErrDecode, err)
	}
	return payload, nil
}

func decodeRawResponse(r io.Reader) (weather.RawResponse, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var payload weather.RawResponse
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, fmt.Errorf("empty payload")
	}
	return payload, nil
}
