package quizgen

import (
	"fmt"

	"restaurant-quiz/internal/domain"

	"go.uber.org/zap"
)

// IngredientsWithAllergy asks which ingredients carry allergy, counting
// allergies inherited from sub-ingredients. It needs at least one
// ingredient with the allergy and three without.
func (b *Builder) IngredientsWithAllergy(allergy domain.Allergy) *domain.QuizQuestion {
	return b.guard(domain.QuestionIngredientsWithAllergy, allergy.ID, func() *domain.QuizQuestion {
		var with, without []domain.AnswerOption
		for _, ing := range b.ingredients {
			if b.resolver.IngredientAllAllergies(ing, nil).Has(allergy.ID) {
				with = append(with, ingredientOption(ing))
			} else {
				without = append(without, ingredientOption(ing))
			}
		}
		if len(with) < 1 || len(without) < 3 {
			return nil
		}

		correct := RandomSubset(b.sampler, with, 1+b.sampler.IntN(3))
		incorrect := RandomSubset(b.sampler, without, max(3, domain.MaxOptions-len(correct)))

		return b.newQuestion(domain.QuestionIngredientsWithAllergy, allergy.ID,
			fmt.Sprintf("Which ingredients contain the %s allergy?", allergy.Name), allergy.LogoURL,
			correct, incorrect, false)
	})
}

// IngredientContainsAllergy is a true/false question pairing a random
// allergy with a random ingredient.
func (b *Builder) IngredientContainsAllergy() *domain.QuizQuestion {
	allergy, okA := b.randomAllergy()
	ing, okI := b.randomIngredient()
	if !okA || !okI {
		b.log.Debug("Not enough data for question", zap.String("type", string(domain.QuestionIngredientContainsAllergy)))
		return nil
	}
	return b.IngredientContainsAllergyFor(ing, allergy)
}

func (b *Builder) IngredientContainsAllergyFor(ing domain.Ingredient, allergy domain.Allergy) *domain.QuizQuestion {
	return b.guard(domain.QuestionIngredientContainsAllergy, ing.ID, func() *domain.QuizQuestion {
		contains := b.resolver.IngredientAllAllergies(ing, nil).Has(allergy.ID)
		return b.trueFalseQuestion(domain.QuestionIngredientContainsAllergy, ing.ID,
			fmt.Sprintf("True or false: %s contains the %s allergy.", ing.Name, allergy.Name),
			ing.ImageURL, contains)
	})
}

// MenuItemContainsAllergy is a true/false question pairing a random
// allergy with a random menu item.
func (b *Builder) MenuItemContainsAllergy() *domain.QuizQuestion {
	allergy, okA := b.randomAllergy()
	item, okM := b.randomMenuItem()
	if !okA || !okM {
		b.log.Debug("Not enough data for question", zap.String("type", string(domain.QuestionMenuItemContainsAllergy)))
		return nil
	}
	return b.MenuItemContainsAllergyFor(item, allergy)
}

func (b *Builder) MenuItemContainsAllergyFor(item domain.MenuItem, allergy domain.Allergy) *domain.QuizQuestion {
	return b.guard(domain.QuestionMenuItemContainsAllergy, item.ID, func() *domain.QuizQuestion {
		contains := b.resolver.MenuItemContainsAllergy(item, allergy.ID)
		return b.trueFalseQuestion(domain.QuestionMenuItemContainsAllergy, item.ID,
			fmt.Sprintf("True or false: %s contains the %s allergy.", item.Name, allergy.Name),
			item.ImageURL, contains)
	})
}

// IngredientOrMenuItemContainsAllergy picks, with equal odds, between
// IngredientContainsAllergy and MenuItemContainsAllergy.
func (b *Builder) IngredientOrMenuItemContainsAllergy() *domain.QuizQuestion {
	if b.sampler.Chance(0.5) {
		return b.IngredientContainsAllergy()
	}
	return b.MenuItemContainsAllergy()
}

// AllergyTrueFalse is IngredientOrMenuItemContainsAllergy for a given
// allergy; the ingredient or menu item is still chosen at random.
func (b *Builder) AllergyTrueFalse(allergy domain.Allergy) *domain.QuizQuestion {
	if b.sampler.Chance(0.5) {
		if ing, ok := b.randomIngredient(); ok {
			return b.IngredientContainsAllergyFor(ing, allergy)
		}
	}
	if item, ok := b.randomMenuItem(); ok {
		return b.MenuItemContainsAllergyFor(item, allergy)
	}
	return nil
}
