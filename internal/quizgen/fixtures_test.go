package quizgen

import (
	"math/rand/v2"
	"testing"

	"restaurant-quiz/internal/domain"

	"github.com/stretchr/testify/require"
)

func ing(id string, allergies []string, subs ...string) domain.Ingredient {
	return domain.Ingredient{ID: id, Name: id, Allergies: allergies, SubIngredients: subs}
}

func menuItem(id string, ingredients ...string) domain.MenuItem {
	return domain.MenuItem{ID: id, Name: id, Ingredients: ingredients}
}

// kitchenCatalog has five allergies that each support an allergy
// question, six multi-ingredient and two single-ingredient menu items.
func kitchenCatalog() *domain.RestaurantData {
	return &domain.RestaurantData{
		Ingredients: []domain.Ingredient{
			ing("flour", []string{"gluten"}),
			ing("milk", []string{"dairy"}),
			ing("egg", []string{"egg"}),
			ing("almond", []string{"nuts"}),
			ing("tofu", []string{"soy"}),
			ing("butter", nil, "milk"),
			ing("dough", nil, "flour", "egg"),
			ing("salt", nil),
			ing("sugar", nil),
			ing("tomato", nil),
			ing("basil", nil),
			ing("rice", nil),
			ing("water", nil),
			ing("pepper", nil),
		},
		MenuItems: []domain.MenuItem{
			{ID: "pizza", Name: "Pizza", ImageURL: "https://img/pizza.png", Ingredients: []string{"dough", "tomato", "basil"}},
			menuItem("pasta", "flour", "egg", "salt"),
			menuItem("salad", "tomato", "basil", "almond"),
			menuItem("stirfry", "tofu", "rice", "pepper"),
			{ID: "pancake", Name: "Pancake", ImageURL: "https://img/pancake.png", Ingredients: []string{"flour", "milk", "sugar", "egg"}},
			menuItem("risotto", "rice", "butter", "salt"),
			menuItem("ricebowl", "rice"),
			menuItem("broth", "water"),
		},
		Allergies: map[string]domain.Allergy{
			"gluten": {ID: "gluten", Name: "Gluten"},
			"dairy":  {ID: "dairy", Name: "Dairy"},
			"egg":    {ID: "egg", Name: "Egg"},
			"nuts":   {ID: "nuts", Name: "Tree Nuts"},
			"soy":    {ID: "soy", Name: "Soy"},
		},
	}
}

func seededSampler(seed uint64) *Sampler {
	return NewSampler(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newTestBuilder(catalog *domain.RestaurantData, seed uint64) *Builder {
	return NewBuilder(catalog, NewResolver(catalog.Ingredients, 0), seededSampler(seed), nil, domain.DifficultyMedium)
}

func optionIDs(q *domain.QuizQuestion) []string {
	ids := make([]string, len(q.Options))
	for i, o := range q.Options {
		ids[i] = o.ID
	}
	return ids
}

// requireQuestionInvariants asserts the option invariants every question
// must satisfy.
func requireQuestionInvariants(t *testing.T, q *domain.QuizQuestion) {
	t.Helper()
	require.NotNil(t, q)
	require.GreaterOrEqual(t, len(q.Options), domain.MinOptions)
	require.LessOrEqual(t, len(q.Options), domain.MaxOptions)
	require.NotEmpty(t, q.CorrectAnswerIDs)

	ids := NewIDSet()
	for _, o := range q.Options {
		require.False(t, ids.Has(o.ID), "duplicate option %s in %s", o.ID, q.ID)
		ids.Add(o.ID)
	}
	for _, id := range q.CorrectAnswerIDs {
		require.True(t, ids.Has(id), "correct answer %s missing from options of %s", id, q.ID)
	}
	require.NoError(t, q.Validate())
}
