package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"restaurant-quiz/internal/cache"
	"restaurant-quiz/internal/domain"
	"restaurant-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CatalogService materializes a restaurant's catalog before generation.
type CatalogService interface {
	GetCatalog(ctx context.Context, restaurantID string) (*domain.RestaurantData, error)
}

type catalogService struct {
	repo  domain.CatalogRepository
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewCatalogService reads through cache when it is non-nil. Concurrent
// loads of the same restaurant share one repository round trip.
func NewCatalogService(repo domain.CatalogRepository, cache domain.Cache, ttl time.Duration) CatalogService {
	return &catalogService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

func (s *catalogService) GetCatalog(ctx context.Context, restaurantID string) (*domain.RestaurantData, error) {
	if restaurantID == "" {
		return nil, domain.NewInvalidInputError("restaurant id is required")
	}

	if data, ok := s.fromCache(ctx, restaurantID); ok {
		return data, nil
	}

	// The load is shared, so one caller's cancellation must not fail the rest.
	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(restaurantID, func() (interface{}, error) {
		return s.load(loadCtx, restaurantID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Shared catalog load", zap.String("restaurantID", restaurantID))
	}
	return v.(*domain.RestaurantData), nil
}

func (s *catalogService) fromCache(ctx context.Context, restaurantID string) (*domain.RestaurantData, bool) {
	if s.cache == nil {
		return nil, false
	}
	key := cache.CatalogKey(restaurantID)
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Failed to read catalog from cache", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}

	var data domain.RestaurantData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		logger.Get().Warn("Discarding unreadable cached catalog", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	logger.Get().Debug("Catalog cache hit", zap.String("key", key))
	return &data, true
}

func (s *catalogService) load(ctx context.Context, restaurantID string) (*domain.RestaurantData, error) {
	menuItems, err := s.repo.GetMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load menu items", err)
	}
	ingredients, err := s.repo.GetIngredients(ctx, restaurantID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load ingredients", err)
	}
	allergies, err := s.repo.GetAllergies(ctx, restaurantID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load allergies", err)
	}
	if allergies == nil {
		allergies = map[string]domain.Allergy{}
	}

	data := &domain.RestaurantData{
		MenuItems:   menuItems,
		Ingredients: ingredients,
		Allergies:   allergies,
	}
	logger.Get().Info("Loaded restaurant catalog",
		zap.String("restaurantID", restaurantID),
		zap.Int("menu_items", len(menuItems)),
		zap.Int("ingredients", len(ingredients)),
		zap.Int("allergies", len(allergies)))

	if s.cache != nil {
		key := cache.CatalogKey(restaurantID)
		if raw, err := json.Marshal(data); err != nil {
			logger.Get().Warn("Failed to marshal catalog for caching", zap.Error(err))
		} else if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
			logger.Get().Warn("Failed to cache catalog", zap.Error(err), zap.String("key", key))
		}
	}
	return data, nil
}
