package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memoryRepo struct {
	mu      sync.RWMutex
	records map[string]WeatherRecord
	newID   func() string
	logger  *zap.Logger
}

// NewMemoryRepository returns an empty, process-local RecordRepository.
func NewMemoryRepository(logger *zap.Logger) RecordRepository {
	return newMemoryRepository(logger, uuid.NewString)
}

func newMemoryRepository(logger *zap.Logger, newID func() string) *memoryRepo {
	return &memoryRepo{
		records: make(map[string]WeatherRecord),
		newID:   newID,
		logger:  logger,
	}
}

func (r *memoryRepo) Put(ctx context.Context, rec WeatherRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for {
		if _, taken := r.records[id]; !taken {
			break
		}
		r.logger.Warn("record id collision, regenerating", zap.String("id", id))
		id = r.newID()
	}

	rec.ID = id
	rec.WeatherData = rec.WeatherData.Clone()
	r.records[id] = rec

	r.logger.Debug("weather record stored",
		zap.String("id", id),
		zap.String("location", rec.Location),
		zap.Int("total", len(r.records)),
	)
	return id, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (WeatherRecord, error) {
	if err := ctx.Err(); err != nil {
		return WeatherRecord{}, err
	}

	r.mu.RLock()
	rec, ok := r.records[id]
	r.mu.RUnlock()

	if !ok {
		r.logger.Debug("weather record not found", zap.String("id", id))
		return WeatherRecord{}, ErrRecordNotFound
	}
	rec.WeatherData = rec.WeatherData.Clone()
	return rec, nil
}
