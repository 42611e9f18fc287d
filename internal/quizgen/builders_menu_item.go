package quizgen

import (
	"fmt"

	"restaurant-quiz/internal/domain"

	"go.uber.org/zap"
)

// IngredientsInDish asks which ingredients a multi-ingredient menu item
// contains. Two or three of its direct ingredients are correct; the
// distractors are ingredients it does not list directly.
func (b *Builder) IngredientsInDish(item domain.MenuItem) *domain.QuizQuestion {
	return b.guard(domain.QuestionIngredientsInDish, item.ID, func() *domain.QuizQuestion {
		if len(item.Ingredients) < 2 {
			return nil
		}

		direct := NewIDSet(item.Ingredients...)
		var correct []domain.AnswerOption
		for _, id := range direct.Sorted() {
			if ing, ok := b.resolver.Ingredient(id); ok {
				correct = append(correct, ingredientOption(*ing))
			}
		}
		if len(correct) == 0 {
			return nil
		}

		var incorrect []domain.AnswerOption
		for _, ing := range b.ingredients {
			if !direct.Has(ing.ID) {
				incorrect = append(incorrect, ingredientOption(ing))
			}
		}
		if len(incorrect) < 1 {
			return nil
		}

		selectedCorrect := RandomSubset(b.sampler, correct, 2+b.sampler.IntN(2))
		selectedIncorrect := RandomSubset(b.sampler, incorrect, domain.MaxOptions-len(selectedCorrect))

		return b.newQuestion(domain.QuestionIngredientsInDish, item.ID,
			fmt.Sprintf("Which ingredients are in %s?", item.Name), item.ImageURL,
			selectedCorrect, selectedIncorrect, false)
	})
}

// MenuItemByIngredient flips the framing for single-ingredient items: the
// item is the one correct answer among three or four menu items that do
// not contain its ingredient.
func (b *Builder) MenuItemByIngredient(item domain.MenuItem) *domain.QuizQuestion {
	return b.guard(domain.QuestionMenuItemByIngredient, item.ID, func() *domain.QuizQuestion {
		if len(item.Ingredients) != 1 {
			return nil
		}
		ing, ok := b.resolver.Ingredient(item.Ingredients[0])
		if !ok {
			return nil
		}

		var distractors []domain.AnswerOption
		for _, other := range b.menuItems {
			if other.ID == item.ID || b.resolver.MenuItemContainsIngredient(other, ing.ID) {
				continue
			}
			distractors = append(distractors, menuItemOption(other))
		}
		if len(distractors) < 3 {
			return nil
		}

		selected := RandomSubset(b.sampler, distractors, 3+b.sampler.IntN(2))
		return b.newQuestion(domain.QuestionMenuItemByIngredient, item.ID,
			fmt.Sprintf("Which menu item contains %s?", ing.Name), ing.ImageURL,
			[]domain.AnswerOption{menuItemOption(item)}, selected, true)
	})
}

// MenuItemContainsIngredient is a true/false question about a random menu
// item and an ingredient drawn, with equal odds, from inside or outside
// its expanded ingredient set.
func (b *Builder) MenuItemContainsIngredient() *domain.QuizQuestion {
	item, ok := b.randomMenuItem()
	if !ok {
		b.log.Debug("Not enough data for question", zap.String("type", string(domain.QuestionMenuItemContainsIngredient)))
		return nil
	}
	return b.MenuItemContainsIngredientFor(item)
}

// MenuItemContainsIngredientFor is MenuItemContainsIngredient for a given item.
func (b *Builder) MenuItemContainsIngredientFor(item domain.MenuItem) *domain.QuizQuestion {
	return b.guard(domain.QuestionMenuItemContainsIngredient, item.ID, func() *domain.QuizQuestion {
		expanded := b.resolver.MenuItemAllIngredientIDs(item)
		var inside, outside []domain.Ingredient
		for _, ing := range b.ingredients {
			if expanded.Has(ing.ID) {
				inside = append(inside, ing)
			} else {
				outside = append(outside, ing)
			}
		}
		if len(inside) == 0 || len(outside) == 0 {
			return nil
		}

		contains := b.sampler.Chance(0.5)
		pool := outside
		if contains {
			pool = inside
		}
		ing, _ := PickOne(b.sampler, pool)

		return b.trueFalseQuestion(domain.QuestionMenuItemContainsIngredient, item.ID,
			fmt.Sprintf("True or false: %s contains %s.", item.Name, ing.Name), item.ImageURL, contains)
	})
}

// WhichMenuItemIsThis shows a menu item's image and asks for its name. The
// option count is fixed by the builder's difficulty.
func (b *Builder) WhichMenuItemIsThis() *domain.QuizQuestion {
	var pictured []domain.MenuItem
	for _, item := range b.menuItems {
		if item.ImageURL != "" {
			pictured = append(pictured, item)
		}
	}
	item, ok := PickOne(b.sampler, pictured)
	if !ok {
		b.log.Debug("Not enough data for question", zap.String("type", string(domain.QuestionWhichMenuItemIsThis)))
		return nil
	}
	return b.WhichMenuItemIsThisFor(item)
}

// WhichMenuItemIsThisFor is WhichMenuItemIsThis for a given pictured item.
func (b *Builder) WhichMenuItemIsThisFor(item domain.MenuItem) *domain.QuizQuestion {
	return b.guard(domain.QuestionWhichMenuItemIsThis, item.ID, func() *domain.QuizQuestion {
		if item.ImageURL == "" {
			return nil
		}
		total := domain.DifficultySettings[b.difficulty].TotalChoices

		var others []domain.AnswerOption
		for _, other := range b.menuItems {
			if other.ID != item.ID {
				others = append(others, menuItemOption(other))
			}
		}
		if len(others) < total-1 {
			return nil
		}

		distractors := RandomSubset(b.sampler, others, total-1)
		return b.newQuestion(domain.QuestionWhichMenuItemIsThis, item.ID,
			"Which menu item is this?", item.ImageURL,
			[]domain.AnswerOption{menuItemOption(item)}, distractors, true)
	})
}
