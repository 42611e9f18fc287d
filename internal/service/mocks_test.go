package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"restaurant-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockCatalogRepository ---
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *MockCatalogRepository) GetIngredients(ctx context.Context, restaurantID string) ([]domain.Ingredient, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ingredient), args.Error(1)
}

func (m *MockCatalogRepository) GetAllergies(ctx context.Context, restaurantID string) (map[string]domain.Allergy, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Allergy), args.Error(1)
}

// --- MockCatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetCatalog(ctx context.Context, restaurantID string) (*domain.RestaurantData, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestaurantData), args.Error(1)
}

// ManualMockCache for domain.Cache interface
type ManualMockCache struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
	PingFunc   func(ctx context.Context) error
}

func (m *ManualMockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errors.New("GetFunc not set")
}

func (m *ManualMockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return errors.New("SetFunc not set")
}

func (m *ManualMockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return errors.New("DeleteFunc not set")
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return errors.New("PingFunc not set")
}

// newMapCache returns a ManualMockCache backed by a map, plus the map.
func newMapCache() (*ManualMockCache, map[string]string) {
	var mu sync.Mutex
	data := map[string]string{}
	c := &ManualMockCache{
		GetFunc: func(ctx context.Context, key string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			v, ok := data[key]
			if !ok {
				return "", domain.ErrCacheMiss
			}
			return v, nil
		},
		SetFunc: func(ctx context.Context, key string, value string, ttl time.Duration) error {
			mu.Lock()
			defer mu.Unlock()
			data[key] = value
			return nil
		},
		DeleteFunc: func(ctx context.Context, key string) error {
			mu.Lock()
			defer mu.Unlock()
			delete(data, key)
			return nil
		},
		PingFunc: func(ctx context.Context) error { return nil },
	}
	return c, data
}

func testCatalog() *domain.RestaurantData {
	ing := func(id string, allergies []string, subs ...string) domain.Ingredient {
		return domain.Ingredient{ID: id, Name: id, Allergies: allergies, SubIngredients: subs}
	}
	return &domain.RestaurantData{
		Ingredients: []domain.Ingredient{
			ing("flour", []string{"gluten"}),
			ing("milk", []string{"dairy"}),
			ing("egg", []string{"egg"}),
			ing("dough", nil, "flour", "egg"),
			ing("salt", nil),
			ing("sugar", nil),
			ing("tomato", nil),
			ing("basil", nil),
			ing("rice", nil),
		},
		MenuItems: []domain.MenuItem{
			{ID: "pizza", Name: "Pizza", Ingredients: []string{"dough", "tomato", "basil"}},
			{ID: "pasta", Name: "Pasta", Ingredients: []string{"flour", "egg", "salt"}},
			{ID: "pancake", Name: "Pancake", Ingredients: []string{"flour", "milk", "sugar"}},
			{ID: "caprese", Name: "Caprese", Ingredients: []string{"tomato", "basil"}},
			{ID: "ricebowl", Name: "Rice Bowl", Ingredients: []string{"rice"}},
		},
		Allergies: map[string]domain.Allergy{
			"gluten": {ID: "gluten", Name: "Gluten"},
			"dairy":  {ID: "dairy", Name: "Dairy"},
			"egg":    {ID: "egg", Name: "Egg"},
		},
	}
}
