package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"certificate-system/internal/certificates"
	"certificate-system/internal/entities"
	"certificate-system/internal/repositories"
	"certificate-system/pkg/metrics"
)

const recentClientsKeyPrefix = "clients:recent:"

type ClientHistoryServiceInterface interface {
	Recent(ctx context.Context, kind certificates.Kind) ([]entities.Client, error)
	Invalidate(ctx context.Context, kind certificates.Kind)
}

// ClientHistoryService serves the most recent distinct clients per certificate kind
// through a Redis read-through cache.
type ClientHistoryService struct {
	repo   repositories.ClientHistoryRepositoryInterface
	cache  repositories.CacheRepositoryInterface
	limit  int
	ttl    time.Duration
	logger *zap.Logger
}

func NewClientHistoryService(
	repo repositories.ClientHistoryRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	limit int,
	ttl time.Duration,
	logger *zap.Logger,
) ClientHistoryServiceInterface {
	return &ClientHistoryService{repo: repo, cache: cache, limit: limit, ttl: ttl, logger: logger}
}

func recentClientsKey(kind certificates.Kind) string {
	return recentClientsKeyPrefix + string(kind)
}

// Recent falls back to the database when the cache is unavailable. Database errors are
// returned as is.
func (s *ClientHistoryService) Recent(ctx context.Context, kind certificates.Kind) ([]entities.Client, error) {
	key := recentClientsKey(kind)

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var clients []entities.Client
		if jsonErr := json.Unmarshal([]byte(cached), &clients); jsonErr == nil {
			metrics.IncClientCache("hit")
			return clients, nil
		}
		s.logger.Warn("corrupt recent-clients cache entry", zap.String("key", key))
	case errors.Is(err, repositories.ErrCacheMiss):
		metrics.IncClientCache("miss")
	default:
		metrics.IncClientCache("error")
		s.logger.Warn("recent-clients cache read failed", zap.String("key", key), zap.Error(err))
	}

	clients, err := s.repo.RecentClients(ctx, string(kind), s.limit)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(clients); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
			s.logger.Warn("recent-clients cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return clients, nil
}

func (s *ClientHistoryService) Invalidate(ctx context.Context, kind certificates.Kind) {
	if err := s.cache.Del(ctx, recentClientsKey(kind)); err != nil {
		s.logger.Warn("recent-clients cache invalidation failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}
