package weather

import (
	"context"
	"errors"
)

var (
	// ErrTransport is returned when the provider cannot be reached.
	ErrTransport = errors.New("weather provider unreachable")
	// ErrWrongEndpoint is returned when the provider answers with a non-200 status.
	ErrWrongEndpoint = errors.New("weather endpoint unavailable")
	// ErrDecode is returned when the response body is not a JSON object.
	ErrDecode = errors.New("cannot decode weather response")
)

// RawResponse is the provider payload as decoded JSON. Numbers are kept as
// json.Number so that values copied into a report keep their literal form.
type RawResponse map[string]any

// Provider abstracts the current-conditions weather source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query string) (RawResponse, error)
}
