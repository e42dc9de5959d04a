package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"sales-dashboard/internal/events"
	"sales-dashboard/internal/repositories"
	"sales-dashboard/pkg/eventbus"
)

// BaseService carries the cache and bus helpers shared by the services.
type BaseService struct {
	cache  repositories.CacheRepositoryInterface
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewBaseService(cache repositories.CacheRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) *BaseService {
	return &BaseService{cache: cache, bus: bus, logger: logger}
}

// CacheGet decodes key into dest; any failure counts as a miss.
func (s *BaseService) CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("falha ao ler cache", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		s.logger.Warn("cache corrompido", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *BaseService) CacheSet(ctx context.Context, key string, data interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	serialized, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn("falha ao serializar cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, serialized, ttl); err != nil {
		s.logger.Warn("falha ao gravar cache", zap.String("key", key), zap.Error(err))
	}
}

// PublishChange announces a committed write to table.
func (s *BaseService) PublishChange(ctx context.Context, table, operation string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.TableChanged{TableName: table, Operation: operation})
}
