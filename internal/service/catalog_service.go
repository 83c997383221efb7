package service

import (
	"context"
	"errors"
	"fmt"

	"bakery-service/internal/models"
	"bakery-service/internal/redisclient"
	"bakery-service/internal/store"
	"bakery-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService serves product reads: Redis first, then Postgres, then the
// embedded seed. Catalog reads never fail on store unavailability; the
// storefront keeps rendering with static data.
type CatalogService struct {
	store  *store.Store
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewCatalogService creates a catalog service. cache may be nil when Redis
// is not configured.
func NewCatalogService(store *store.Store, cache *redisclient.Client) *CatalogService {
	return &CatalogService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// ListProducts returns the catalog, optionally filtered by category. An
// unknown category simply matches nothing, as in the original storefront.
func (s *CatalogService) ListProducts(ctx context.Context, category string) []models.Product {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	if s.cache != nil {
		products, err := s.cache.GetCatalog(ctx, category)
		if err == nil {
			util.CatalogCacheHits.Inc()
			return products
		}
		if !redisclient.IsCacheMiss(err) {
			s.logger.Warn("Catalog cache read failed", zap.Error(err))
		}
		util.CatalogCacheMisses.Inc()
	}

	products, err := s.store.GetProducts(ctx, category)
	if err != nil {
		util.CatalogFallbacksTotal.Inc()
		s.logger.Warn("Catalog unavailable, serving embedded seed", zap.Error(err))
		return seedByCategory(category)
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, category, products); err != nil {
			s.logger.Warn("Catalog cache write failed", zap.Error(err))
		}
	}
	return products
}

// GetProduct returns one catalog entry by id, falling back to the embedded
// seed when the store is unreachable. A genuinely absent product returns
// store.ErrNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	if s.cache != nil {
		product, err := s.cache.GetProduct(ctx, id)
		if err == nil {
			util.CatalogCacheHits.Inc()
			return product, nil
		}
		if !redisclient.IsCacheMiss(err) {
			s.logger.Warn("Product cache read failed", zap.Error(err))
		}
		util.CatalogCacheMisses.Inc()
	}

	product, err := s.store.GetProductByID(ctx, id)
	if err == nil {
		if s.cache != nil {
			if cerr := s.cache.SetProduct(ctx, product); cerr != nil {
				s.logger.Warn("Product cache write failed", zap.Error(cerr))
			}
		}
		return product, nil
	}
	// Not-found passes through; anything else degrades to the seed.
	if errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	util.CatalogFallbacksTotal.Inc()
	s.logger.Warn("Catalog unavailable, serving embedded seed", zap.Error(err))
	for _, p := range models.SeedProducts() {
		if p.ID == id {
			seeded := p
			return &seeded, nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", id, store.ErrNotFound)
}

func seedByCategory(category string) []models.Product {
	all := models.SeedProducts()
	if category == "" {
		return all
	}
	filtered := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
