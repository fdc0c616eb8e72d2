package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fjod/frocone/internal/domain"
	"golang.org/x/sync/singleflight"
)

type Service struct {
	repo   RepoInterface
	cache  Cache
	logger *slog.Logger
	sfg    singleflight.Group
}

// NewService builds the catalog service. A nil cache disables caching.
func NewService(repo RepoInterface, cache Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	if s.cache == nil {
		return s.repo.GetProducts(ctx, filter)
	}

	key := filterKey(filter)
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		products, err := s.cache.GetProducts(ctx, key)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.WarnContext(ctx, "cache get error", "key", key, "error", err)
		}

		products, err = s.repo.GetProducts(ctx, filter)
		if err != nil {
			return nil, err
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.SetProducts(ctx, key, products); err != nil {
				s.logger.Warn("cache set error", "key", key, "error", err)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*domain.Product), nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}
