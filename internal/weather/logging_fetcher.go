package weather

import (
	"context"

	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup-api/internal/weather/types"
)

// LoggingFetcher decorates another Fetcher with call-level logging.
type LoggingFetcher struct {
	inner  Fetcher
	logger *zap.Logger
}

// NewLoggingFetcher wraps inner so every lookup and its outcome is logged.
func NewLoggingFetcher(inner Fetcher, logger *zap.Logger) *LoggingFetcher {
	return &LoggingFetcher{inner: inner, logger: logger}
}

func (l *LoggingFetcher) FetchCurrent(ctx context.Context, location string) (types.Document, error) {
	l.logger.Debug("fetching current weather", zap.String("location", location))

	doc, err := l.inner.FetchCurrent(ctx, location)
	if err != nil {
		l.logger.Error("weather fetch failed", zap.String("location", location), zap.Error(err))
		return nil, err
	}

	l.logger.Info("weather fetched",
		zap.String("location", location),
		zap.Int("fields", len(doc)),
	)
	return doc, nil
}
