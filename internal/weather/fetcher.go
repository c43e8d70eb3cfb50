package weather

import (
	"context"
	"errors"

	"github.com/namefreezers/weather-lookup-api/internal/weather/types"
)

var (
	// ErrMissingAPIKey is returned when the provider credential is not configured.
	ErrMissingAPIKey = errors.New("weather provider API key not configured")

	// ErrUpstream is returned when the provider cannot be reached or its body is not JSON.
	ErrUpstream = errors.New("weather provider request failed")
)

// Fetcher returns the provider's current-weather document for a location.
// The document is returned as the provider sent it, including any error
// object the provider embeds in a successful response.
type Fetcher interface {
	FetchCurrent(ctx context.Context, location string) (types.Document, error)
}

// ProviderError extracts the error object a provider embedded in doc, if any.
// Weatherstack reports failures as {"success": false, "error": {...}} with
// HTTP 200.
func ProviderError(doc types.Document) (map[string]any, bool) {
	if success, ok := doc["success"].(bool); !ok || success {
		return nil, false
	}
	perr, ok := doc["error"].(map[string]any)
	if !ok {
		return map[string]any{}, true
	}
	return perr, true
}
