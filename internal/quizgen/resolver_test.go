package quizgen

import (
	"testing"

	"restaurant-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ExpandIngredientIDs(t *testing.T) {
	catalog := kitchenCatalog()
	r := NewResolver(catalog.Ingredients, 0)

	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{name: "empty input", ids: nil, want: []string{}},
		{name: "leaf ingredient", ids: []string{"salt"}, want: []string{"salt"}},
		{name: "nested ingredient", ids: []string{"dough", "tomato"}, want: []string{"dough", "egg", "flour", "tomato"}},
		{name: "unknown id kept", ids: []string{"ghost"}, want: []string{"ghost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ExpandIngredientIDs(tt.ids).Sorted())
		})
	}
}

func TestResolver_ExpandIngredientIDs_Cycle(t *testing.T) {
	r := NewResolver([]domain.Ingredient{
		ing("a", nil, "b"),
		ing("b", nil, "a"),
	}, 0)

	assert.Equal(t, []string{"a", "b"}, r.ExpandIngredientIDs([]string{"a"}).Sorted())
	assert.Equal(t, []string{"a", "b"}, r.ExpandIngredientIDs([]string{"b"}).Sorted())
}

func TestResolver_ExpandIngredientIDs_Idempotent(t *testing.T) {
	catalog := kitchenCatalog()
	r := NewResolver(catalog.Ingredients, 0)

	for _, item := range catalog.MenuItems {
		once := r.ExpandIngredientIDs(item.Ingredients)
		twice := r.ExpandIngredientIDs(once.Sorted())
		assert.Equal(t, once.Sorted(), twice.Sorted(), item.ID)
	}
}

func TestResolver_ExpandIngredientIDs_ReturnsCopy(t *testing.T) {
	catalog := kitchenCatalog()
	r := NewResolver(catalog.Ingredients, 0)

	first := r.ExpandIngredientIDs([]string{"dough"})
	first.Add("mutated")
	first.Delete("flour")

	second := r.ExpandIngredientIDs([]string{"dough"})
	assert.Equal(t, []string{"dough", "egg", "flour"}, second.Sorted())
}

func TestResolver_ExpandIngredientIDs_SeparatorInID(t *testing.T) {
	r := NewResolver([]domain.Ingredient{
		ing("a", nil, "c"),
		ing("b", nil),
		ing("c", nil),
	}, 0)

	assert.Equal(t, []string{"a", "b", "c"}, r.ExpandIngredientIDs([]string{"a", "b"}).Sorted())
	assert.Equal(t, []string{"a,b"}, r.ExpandIngredientIDs([]string{"a,b"}).Sorted())
	assert.Equal(t, 2, r.CacheLen())
}

func TestResolver_CacheBounded(t *testing.T) {
	catalog := kitchenCatalog()
	r := NewResolver(catalog.Ingredients, 2)

	r.ExpandIngredientIDs([]string{"salt"})
	r.ExpandIngredientIDs([]string{"sugar"})
	assert.Equal(t, 2, r.CacheLen())

	r.ExpandIngredientIDs([]string{"salt"})
	assert.Equal(t, 2, r.CacheLen())

	r.ExpandIngredientIDs([]string{"tomato"})
	assert.Equal(t, 1, r.CacheLen())
}

func TestResolver_IngredientAllAllergies(t *testing.T) {
	r := NewResolver([]domain.Ingredient{
		ing("dough", nil, "flour"),
		ing("flour", []string{"gluten"}),
		{ID: "cheese", Allergies: []string{"dairy"}, DerivedAllergies: []string{"lactose"}},
		ing("a", []string{"x"}, "b"),
		ing("b", []string{"y"}, "a"),
	}, 0)

	dough, _ := r.Ingredient("dough")
	assert.Equal(t, []string{"gluten"}, r.IngredientAllAllergies(*dough, nil).Sorted())

	cheese, _ := r.Ingredient("cheese")
	assert.Equal(t, []string{"dairy", "lactose"}, r.IngredientAllAllergies(*cheese, nil).Sorted())

	a, _ := r.Ingredient("a")
	assert.Equal(t, []string{"x", "y"}, r.IngredientAllAllergies(*a, nil).Sorted())

	visited := NewIDSet("b")
	assert.Equal(t, []string{"x"}, r.IngredientAllAllergies(*a, visited).Sorted())
	assert.True(t, visited.Has("a"))
}

func TestResolver_IngredientAllAllergies_AdHocIngredient(t *testing.T) {
	r := NewResolver([]domain.Ingredient{ing("flour", []string{"gluten"})}, 0)

	flour, _ := r.Ingredient("flour")
	require.Equal(t, []string{"gluten"}, r.IngredientAllAllergies(*flour, nil).Sorted())

	retagged := ing("flour", []string{"wheat"})
	assert.Equal(t, []string{"wheat"}, r.IngredientAllAllergies(retagged, nil).Sorted())
}

func TestResolver_MenuItemContainsAllergy(t *testing.T) {
	r := NewResolver([]domain.Ingredient{
		ing("dough", nil, "flour"),
		ing("flour", []string{"gluten"}),
		ing("tomato", nil),
	}, 0)

	pizza := menuItem("pizza", "dough", "tomato")
	salad := menuItem("salad", "tomato")

	assert.True(t, r.MenuItemContainsAllergy(pizza, "gluten"))
	assert.False(t, r.MenuItemContainsAllergy(salad, "gluten"))
	assert.True(t, r.MenuItemContainsIngredient(pizza, "flour"))
	assert.False(t, r.MenuItemContainsIngredient(salad, "flour"))
	assert.False(t, r.MenuItemContainsAllergy(menuItem("empty"), "gluten"))
}
