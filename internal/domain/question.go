package domain

import (
	"fmt"
	"strings"
)

// QuestionType tags the builder that produced a question.
type QuestionType string

const (
	QuestionIngredientsInDish          QuestionType = "ingredients_in_dish"
	QuestionMenuItemByIngredient       QuestionType = "menu_item_by_ingredient"
	QuestionIngredientsWithAllergy     QuestionType = "ingredients_with_allergy"
	QuestionIngredientContainsAllergy  QuestionType = "ingredient_contains_allergy"
	QuestionMenuItemContainsAllergy    QuestionType = "menu_item_contains_allergy"
	QuestionMenuItemContainsIngredient QuestionType = "menu_item_contains_ingredient"
	QuestionWhichMenuItemIsThis        QuestionType = "which_menu_item_is_this"
)

const (
	TrueOptionID  = "true"
	FalseOptionID = "false"

	MinOptions = 2
	MaxOptions = 6
)

// IsAllergyCategory reports whether the type belongs to the allergy bucket.
func (t QuestionType) IsAllergyCategory() bool {
	switch t {
	case QuestionIngredientsWithAllergy, QuestionIngredientContainsAllergy, QuestionMenuItemContainsAllergy:
		return true
	default:
		return false
	}
}

type AnswerOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuizQuestion is one generated question. Options are already shuffled.
type QuizQuestion struct {
	ID               string         `json:"id"`
	Type             QuestionType   `json:"type"`
	QuestionText     string         `json:"questionText"`
	ImageURL         *string        `json:"imageUrl"`
	Options          []AnswerOption `json:"options"`
	CorrectAnswerIDs []string       `json:"correctAnswerIds"`
	IsSingleChoice   bool           `json:"isSingleChoice"`
}

// Validate checks the option invariants every question must satisfy.
func (q *QuizQuestion) Validate() error {
	if q.QuestionText == "" {
		return NewValidationError("question text is required")
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return NewValidationError(fmt.Sprintf("question must have %d-%d options, got %d", MinOptions, MaxOptions, len(q.Options)))
	}
	ids := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if _, dup := ids[o.ID]; dup {
			return NewValidationError("duplicate option id: " + o.ID)
		}
		ids[o.ID] = struct{}{}
	}
	if len(q.CorrectAnswerIDs) == 0 {
		return NewValidationError("at least one correct answer is required")
	}
	for _, id := range q.CorrectAnswerIDs {
		if _, ok := ids[id]; !ok {
			return NewValidationError("correct answer not among options: " + id)
		}
	}
	return nil
}

// IsCorrect compares the selection with the correct answers as sets.
func (q *QuizQuestion) IsCorrect(selected []string) bool {
	return SameAnswerSet(selected, q.CorrectAnswerIDs)
}

// SameAnswerSet reports exact set equality; order and repeats are ignored.
func SameAnswerSet(a, b []string) bool {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) != len(setB) {
		return false
	}
	for id := range setA {
		if _, ok := setB[id]; !ok {
			return false
		}
	}
	return true
}

func toSet(ids []string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Difficulty controls the option count of image identification questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type DifficultySetting struct {
	TotalChoices int
}

var DifficultySettings = map[Difficulty]DifficultySetting{
	DifficultyEasy:   {TotalChoices: 3},
	DifficultyMedium: {TotalChoices: 4},
	DifficultyHard:   {TotalChoices: 6},
}

// ParseDifficulty maps a config string to a Difficulty, defaulting to medium.
func ParseDifficulty(s string) Difficulty {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	default:
		return DifficultyMedium
	}
}
