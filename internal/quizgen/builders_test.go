package quizgen

import (
	"testing"

	"restaurant-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bakeryCatalog(withSalt bool) *domain.RestaurantData {
	ingredients := []domain.Ingredient{
		ing("Flour", []string{"Gluten"}),
		ing("Milk", nil),
		ing("Sugar", nil),
	}
	if withSalt {
		ingredients = append(ingredients, ing("Salt", nil))
	}
	return &domain.RestaurantData{
		Ingredients: ingredients,
		MenuItems:   []domain.MenuItem{menuItem("Cake", "Flour", "Milk", "Sugar")},
		Allergies:   map[string]domain.Allergy{"Gluten": {ID: "Gluten", Name: "Gluten"}},
	}
}

func TestIngredientsWithAllergy_NeedsThreeDistractors(t *testing.T) {
	catalog := bakeryCatalog(false)
	b := newTestBuilder(catalog, 1)
	assert.Nil(t, b.IngredientsWithAllergy(catalog.Allergies["Gluten"]))
}

func TestIngredientsWithAllergy_SingleCarrier(t *testing.T) {
	catalog := bakeryCatalog(true)

	for seed := uint64(0); seed < 20; seed++ {
		b := newTestBuilder(catalog, seed)
		q := b.IngredientsWithAllergy(catalog.Allergies["Gluten"])
		requireQuestionInvariants(t, q)

		assert.Equal(t, []string{"Flour"}, q.CorrectAnswerIDs)
		assert.Len(t, q.Options, 4)
		assert.ElementsMatch(t, []string{"Flour", "Milk", "Sugar", "Salt"}, optionIDs(q))
		assert.False(t, q.IsSingleChoice)
		assert.Equal(t, domain.QuestionIngredientsWithAllergy, q.Type)
	}
}

func TestIngredientsWithAllergy_InheritedAllergy(t *testing.T) {
	catalog := &domain.RestaurantData{
		Ingredients: []domain.Ingredient{
			ing("Dough", nil, "Flour"),
			ing("Flour", []string{"Gluten"}),
			ing("Tomato", nil),
			ing("Basil", nil),
			ing("Oil", nil),
		},
		MenuItems: []domain.MenuItem{menuItem("Pizza", "Dough", "Tomato")},
		Allergies: map[string]domain.Allergy{"Gluten": {ID: "Gluten", Name: "Gluten"}},
	}

	for seed := uint64(0); seed < 20; seed++ {
		q := newTestBuilder(catalog, seed).IngredientsWithAllergy(catalog.Allergies["Gluten"])
		requireQuestionInvariants(t, q)
		assert.Subset(t, []string{"Dough", "Flour"}, q.CorrectAnswerIDs)
		for _, id := range optionIDs(q) {
			if id == "Dough" || id == "Flour" {
				assert.Contains(t, q.CorrectAnswerIDs, id, "carrier %s must be correct when offered", id)
			}
		}
	}

	r := NewResolver(catalog.Ingredients, 0)
	assert.True(t, r.MenuItemContainsAllergy(catalog.MenuItems[0], "Gluten"))
}

func TestIngredientsInDish(t *testing.T) {
	catalog := kitchenCatalog()

	for seed := uint64(0); seed < 20; seed++ {
		b := newTestBuilder(catalog, seed)
		pancake := catalog.MenuItems[4]
		q := b.IngredientsInDish(pancake)
		requireQuestionInvariants(t, q)

		assert.False(t, q.IsSingleChoice)
		assert.GreaterOrEqual(t, len(q.CorrectAnswerIDs), 2)
		assert.LessOrEqual(t, len(q.CorrectAnswerIDs), 3)
		assert.Subset(t, pancake.Ingredients, q.CorrectAnswerIDs)
		assert.Len(t, q.Options, domain.MaxOptions)
		require.NotNil(t, q.ImageURL)
		assert.Equal(t, "https://img/pancake.png", *q.ImageURL)
	}

	b := newTestBuilder(catalog, 1)
	assert.Nil(t, b.IngredientsInDish(menuItem("ricebowl", "rice")))
}

func TestIngredientsInDish_NoDistractors(t *testing.T) {
	catalog := &domain.RestaurantData{
		Ingredients: []domain.Ingredient{ing("a", nil), ing("b", nil)},
		MenuItems:   []domain.MenuItem{menuItem("dish", "a", "b")},
	}
	assert.Nil(t, newTestBuilder(catalog, 1).IngredientsInDish(catalog.MenuItems[0]))
}

func TestMenuItemByIngredient(t *testing.T) {
	catalog := kitchenCatalog()
	ricebowl := catalog.MenuItems[6]

	for seed := uint64(0); seed < 20; seed++ {
		q := newTestBuilder(catalog, seed).MenuItemByIngredient(ricebowl)
		requireQuestionInvariants(t, q)

		assert.True(t, q.IsSingleChoice)
		assert.Equal(t, []string{"ricebowl"}, q.CorrectAnswerIDs)
		assert.GreaterOrEqual(t, len(q.Options), 4)
		assert.LessOrEqual(t, len(q.Options), 5)
		for _, id := range optionIDs(q) {
			assert.NotContains(t, []string{"stirfry", "risotto"}, id, "distractors must not contain rice")
		}
	}
}

func TestMenuItemByIngredient_TooFewDistractors(t *testing.T) {
	catalog := &domain.RestaurantData{
		Ingredients: []domain.Ingredient{ing("rice", nil), ing("fish", nil)},
		MenuItems: []domain.MenuItem{
			menuItem("bowl", "rice"),
			menuItem("sushi", "rice", "fish"),
			menuItem("sashimi", "fish"),
		},
	}
	assert.Nil(t, newTestBuilder(catalog, 1).MenuItemByIngredient(catalog.MenuItems[0]))
}

func TestTrueFalseQuestions(t *testing.T) {
	catalog := kitchenCatalog()
	b := newTestBuilder(catalog, 9)

	builders := map[string]func() *domain.QuizQuestion{
		"ingredient contains allergy":   b.IngredientContainsAllergy,
		"menu item contains allergy":    b.MenuItemContainsAllergy,
		"menu item contains ingredient": b.MenuItemContainsIngredient,
		"either allergy question":       b.IngredientOrMenuItemContainsAllergy,
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				q := build()
				requireQuestionInvariants(t, q)
				assert.True(t, q.IsSingleChoice)
				assert.ElementsMatch(t, []string{domain.TrueOptionID, domain.FalseOptionID}, optionIDs(q))
				require.Len(t, q.CorrectAnswerIDs, 1)
			}
		})
	}
}

func TestTrueFalseQuestions_Answers(t *testing.T) {
	catalog := kitchenCatalog()
	b := newTestBuilder(catalog, 2)
	gluten := catalog.Allergies["gluten"]

	q := b.MenuItemContainsAllergyFor(catalog.MenuItems[0], gluten)
	requireQuestionInvariants(t, q)
	assert.Equal(t, []string{domain.TrueOptionID}, q.CorrectAnswerIDs)

	q = b.MenuItemContainsAllergyFor(catalog.MenuItems[2], gluten)
	requireQuestionInvariants(t, q)
	assert.Equal(t, []string{domain.FalseOptionID}, q.CorrectAnswerIDs)

	q = b.IngredientContainsAllergyFor(ing("butter", nil, "milk"), catalog.Allergies["dairy"])
	requireQuestionInvariants(t, q)
	assert.Equal(t, []string{domain.TrueOptionID}, q.CorrectAnswerIDs)
}

func TestMenuItemContainsIngredientFor_NeedsBothPartitions(t *testing.T) {
	catalog := &domain.RestaurantData{
		Ingredients: []domain.Ingredient{ing("a", nil), ing("b", nil)},
		MenuItems:   []domain.MenuItem{menuItem("dish", "a", "b")},
	}
	assert.Nil(t, newTestBuilder(catalog, 1).MenuItemContainsIngredientFor(catalog.MenuItems[0]))
}

func TestWhichMenuItemIsThis(t *testing.T) {
	catalog := kitchenCatalog()

	for difficulty, setting := range domain.DifficultySettings {
		b := NewBuilder(catalog, NewResolver(catalog.Ingredients, 0), seededSampler(3), nil, difficulty)
		q := b.WhichMenuItemIsThis()
		requireQuestionInvariants(t, q)
		assert.Len(t, q.Options, setting.TotalChoices, string(difficulty))
		assert.True(t, q.IsSingleChoice)
		require.NotNil(t, q.ImageURL)
	}

	b := newTestBuilder(catalog, 3)
	assert.Nil(t, b.WhichMenuItemIsThisFor(menuItem("pasta", "flour")))
}

func TestBuilder_GuardRecoversPanic(t *testing.T) {
	catalog := kitchenCatalog()
	b := NewBuilder(catalog, nil, seededSampler(1), nil, domain.DifficultyMedium)

	assert.NotPanics(t, func() {
		assert.Nil(t, b.IngredientsWithAllergy(catalog.Allergies["gluten"]))
	})
}

func TestBuilder_QuestionIDsUnique(t *testing.T) {
	catalog := kitchenCatalog()
	b := newTestBuilder(catalog, 5)

	seen := NewIDSet()
	for i := 0; i < 50; i++ {
		q := b.MenuItemContainsIngredient()
		require.NotNil(t, q)
		require.False(t, seen.Has(q.ID))
		seen.Add(q.ID)
	}
}
