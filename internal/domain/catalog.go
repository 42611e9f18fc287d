package domain

import (
	"context"
	"sort"
)

// Ingredient is a node in the composition graph. SubIngredients may form
// cycles; traversals must track visited IDs.
type Ingredient struct {
	ID               string   `json:"ingredientId"`
	Name             string   `json:"ingredientName"`
	ImageURL         string   `json:"ingredientImageUrl,omitempty"`
	Allergies        []string `json:"ingredientAllergies"`
	DerivedAllergies []string `json:"derivedAllergies"`
	SubIngredients   []string `json:"subIngredients"`
}

// MenuItem references its direct ingredients only.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"menuItemName"`
	ImageURL    string   `json:"menuItemUrl,omitempty"`
	Ingredients []string `json:"menuItemIngredients"`
}

type Allergy struct {
	ID      string `json:"allergyId"`
	Name    string `json:"allergyName"`
	LogoURL string `json:"allergyLogoUrl,omitempty"`
}

// RestaurantData is a read-only snapshot of one restaurant's catalog.
type RestaurantData struct {
	MenuItems   []MenuItem         `json:"menuItems"`
	Ingredients []Ingredient       `json:"ingredients"`
	Allergies   map[string]Allergy `json:"allergies"`
}

// SortedAllergies returns the allergies ordered by ID so that seeded
// random sources produce repeatable picks.
func (d *RestaurantData) SortedAllergies() []Allergy {
	out := make([]Allergy, 0, len(d.Allergies))
	for _, a := range d.Allergies {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CatalogRepository loads a restaurant's catalog from persistent storage.
type CatalogRepository interface {
	GetMenuItems(ctx context.Context, restaurantID string) ([]MenuItem, error)
	GetIngredients(ctx context.Context, restaurantID string) ([]Ingredient, error)
	GetAllergies(ctx context.Context, restaurantID string) (map[string]Allergy, error)
}

// CatalogWriter replaces a restaurant's stored catalog as one unit.
type CatalogWriter interface {
	ReplaceCatalog(ctx context.Context, restaurantID string, data *RestaurantData) error
}
