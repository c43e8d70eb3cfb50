package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup-api/internal/repository"
	"github.com/namefreezers/weather-lookup-api/internal/weather"
)

// Sentinel errors for the HTTP handlers to inspect:
var (
	// returned when the provider credential is not configured
	ErrConfiguration = errors.New("weather provider is not configured")

	// returned when the provider call fails or its response cannot be parsed
	ErrUpstream = errors.New("weather provider unavailable")

	// returned when no record exists for the requested id
	ErrNotFound = errors.New("weather data not found")
)

// WeatherRequest is a lookup submitted by a client.
type WeatherRequest struct {
	Date     string
	Location string
	Notes    string
}

// WeatherService defines the lookup operations.
type WeatherService interface {
	Create(ctx context.Context, req WeatherRequest) (id string, err error)
	Get(ctx context.Context, id string) (repository.WeatherRecord, error)
}

type weatherService struct {
	repo    repository.RecordRepository
	fetcher weather.Fetcher
	logger  *zap.Logger
}

// NewWeatherService wires up service dependencies.
func NewWeatherService(
	repo repository.RecordRepository,
	fetcher weather.Fetcher,
	logger *zap.Logger,
) WeatherService {
	return &weatherService{repo, fetcher, logger}
}

// Create fetches current weather for req.Location and stores it together with
// the request. Nothing is stored unless the fetch succeeds.
func (s *weatherService) Create(ctx context.Context, req WeatherRequest) (string, error) {
	doc, err := s.fetcher.FetchCurrent(ctx, req.Location)
	if err != nil {
		if errors.Is(err, weather.ErrMissingAPIKey) {
			return "", fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	id, err := s.repo.Put(ctx, repository.WeatherRecord{
		Date:        req.Date,
		Location:    req.Location,
		Notes:       req.Notes,
		WeatherData: doc,
	})
	if err != nil {
		return "", fmt.Errorf("repo.Put: %w", err)
	}

	s.logger.Info("weather record created",
		zap.String("id", id),
		zap.String("date", req.Date),
		zap.String("location", req.Location),
	)
	return id, nil
}

// Get returns the record stored under id.
func (s *weatherService) Get(ctx context.Context, id string) (repository.WeatherRecord, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return repository.WeatherRecord{}, ErrNotFound
		}
		return repository.WeatherRecord{}, fmt.Errorf("repo.Get: %w", err)
	}
	return rec, nil
}
