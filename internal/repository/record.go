package repository

import (
	"context"
	"errors"

	"github.com/namefreezers/weather-lookup-api/internal/weather/types"
)

// ErrRecordNotFound is returned when no record is stored under the requested id.
var ErrRecordNotFound = errors.New("weather data not found")

// WeatherRecord is a lookup request combined with the provider's response.
// Records are immutable once stored: repositories copy WeatherData on the
// way in and out.
type WeatherRecord struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"`
	Location    string         `json:"location"`
	Notes       string         `json:"notes"`
	WeatherData types.Document `json:"weatherData"`
}

// RecordRepository stores weather records under generated ids.
type RecordRepository interface {
	// Put assigns a fresh id to rec, stores it and returns the id.
	// Any ID already set on rec is ignored.
	Put(ctx context.Context, rec WeatherRecord) (string, error)
	Get(ctx context.Context, id string) (WeatherRecord, error)
}
