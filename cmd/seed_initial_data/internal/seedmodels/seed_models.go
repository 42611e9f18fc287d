package seedmodels

import (
	"fmt"

	"restaurant-quiz/internal/domain"
)

// SeedRestaurant is one restaurant entry of the seed file. The catalog
// fields use the same JSON names as the quiz API.
type SeedRestaurant struct {
	RestaurantID string `json:"restaurantId"`
	domain.RestaurantData
}

// DanglingReferences lists references to ingredients or allergies that the
// entry does not define. They are allowed but usually point at a typo.
func (r SeedRestaurant) DanglingReferences() []string {
	ingredients := make(map[string]struct{}, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients[ing.ID] = struct{}{}
	}

	var out []string
	for _, ing := range r.Ingredients {
		for _, sub := range ing.SubIngredients {
			if _, ok := ingredients[sub]; !ok {
				out = append(out, fmt.Sprintf("ingredient %s: sub-ingredient %s", ing.ID, sub))
			}
		}
		for _, a := range append(append([]string(nil), ing.Allergies...), ing.DerivedAllergies...) {
			if _, ok := r.Allergies[a]; !ok {
				out = append(out, fmt.Sprintf("ingredient %s: allergy %s", ing.ID, a))
			}
		}
	}
	for _, item := range r.MenuItems {
		for _, id := range item.Ingredients {
			if _, ok := ingredients[id]; !ok {
				out = append(out, fmt.Sprintf("menu item %s: ingredient %s", item.ID, id))
			}
		}
	}
	return out
}
