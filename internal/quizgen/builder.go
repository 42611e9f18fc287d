package quizgen

import (
	"fmt"

	"restaurant-quiz/internal/domain"
	"restaurant-quiz/internal/util"

	"go.uber.org/zap"
)

// Builder synthesizes single questions from one catalog snapshot. Every
// build method returns nil when the catalog cannot support a fair question
// of that type; callers should move on and try something else.
type Builder struct {
	catalog    *domain.RestaurantData
	resolver   *Resolver
	sampler    *Sampler
	log        *zap.Logger
	difficulty domain.Difficulty

	ingredients []domain.Ingredient
	menuItems   []domain.MenuItem
	allergies   []domain.Allergy
}

// NewBuilder binds a Builder to catalog. A nil logger disables logging.
func NewBuilder(catalog *domain.RestaurantData, resolver *Resolver, sampler *Sampler, log *zap.Logger, difficulty domain.Difficulty) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	if _, ok := domain.DifficultySettings[difficulty]; !ok {
		difficulty = domain.DifficultyMedium
	}
	return &Builder{
		catalog:     catalog,
		resolver:    resolver,
		sampler:     sampler,
		log:         log,
		difficulty:  difficulty,
		ingredients: uniqueIngredients(catalog.Ingredients),
		menuItems:   uniqueMenuItems(catalog.MenuItems),
		allergies:   catalog.SortedAllergies(),
	}
}

// guard converts a panicking or invalid build into a nil question so one
// malformed entity cannot abort a whole generation pass.
func (b *Builder) guard(kind domain.QuestionType, entityID string, build func() *domain.QuizQuestion) (q *domain.QuizQuestion) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("Question builder failed",
				zap.String("type", string(kind)),
				zap.String("entity_id", entityID),
				zap.Any("panic", r))
			q = nil
		}
	}()

	q = build()
	if q == nil {
		b.log.Debug("Not enough data for question",
			zap.String("type", string(kind)),
			zap.String("entity_id", entityID))
		return nil
	}
	if err := q.Validate(); err != nil {
		b.log.Error("Question builder produced an invalid question",
			zap.String("type", string(kind)),
			zap.String("entity_id", entityID),
			zap.Error(err))
		return nil
	}
	return q
}

func (b *Builder) newQuestion(kind domain.QuestionType, entityID, text string, imageURL string,
	correct, incorrect []domain.AnswerOption, singleChoice bool) *domain.QuizQuestion {
	correctIDs := make([]string, len(correct))
	for i, o := range correct {
		correctIDs[i] = o.ID
	}
	return &domain.QuizQuestion{
		ID:               fmt.Sprintf("%s_%s_%s", kind, entityID, util.NewULID()),
		Type:             kind,
		QuestionText:     text,
		ImageURL:         optionalURL(imageURL),
		Options:          CombineAndShuffleOptions(b.sampler, correct, incorrect),
		CorrectAnswerIDs: correctIDs,
		IsSingleChoice:   singleChoice,
	}
}

func (b *Builder) trueFalseQuestion(kind domain.QuestionType, entityID, text, imageURL string, answer bool) *domain.QuizQuestion {
	trueOpt := domain.AnswerOption{ID: domain.TrueOptionID, Text: "True"}
	falseOpt := domain.AnswerOption{ID: domain.FalseOptionID, Text: "False"}
	if answer {
		return b.newQuestion(kind, entityID, text, imageURL, []domain.AnswerOption{trueOpt}, []domain.AnswerOption{falseOpt}, true)
	}
	return b.newQuestion(kind, entityID, text, imageURL, []domain.AnswerOption{falseOpt}, []domain.AnswerOption{trueOpt}, true)
}

func (b *Builder) randomAllergy() (domain.Allergy, bool) {
	return PickOne(b.sampler, b.allergies)
}

func (b *Builder) randomIngredient() (domain.Ingredient, bool) {
	return PickOne(b.sampler, b.ingredients)
}

func (b *Builder) randomMenuItem() (domain.MenuItem, bool) {
	return PickOne(b.sampler, b.menuItems)
}

func ingredientOption(ing domain.Ingredient) domain.AnswerOption {
	return domain.AnswerOption{ID: ing.ID, Text: ing.Name}
}

func menuItemOption(item domain.MenuItem) domain.AnswerOption {
	return domain.AnswerOption{ID: item.ID, Text: item.Name}
}

func optionalURL(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func uniqueIngredients(in []domain.Ingredient) []domain.Ingredient {
	seen := NewIDSet()
	out := make([]domain.Ingredient, 0, len(in))
	for _, ing := range in {
		if seen.Has(ing.ID) {
			continue
		}
		seen.Add(ing.ID)
		out = append(out, ing)
	}
	return out
}

func uniqueMenuItems(in []domain.MenuItem) []domain.MenuItem {
	seen := NewIDSet()
	out := make([]domain.MenuItem, 0, len(in))
	for _, item := range in {
		if seen.Has(item.ID) {
			continue
		}
		seen.Add(item.ID)
		out = append(out, item)
	}
	return out
}
