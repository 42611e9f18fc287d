package quizgen

import (
	"fmt"
	"math"
	"math/rand/v2"

	"restaurant-quiz/internal/config"
	"restaurant-quiz/internal/domain"

	"go.uber.org/zap"
)

// Settings tunes the scheduler. Zero values fall back to DefaultSettings.
type Settings struct {
	// AttemptsPerQuestion bounds loop iterations to
	// AttemptsPerQuestion*questionCount.
	AttemptsPerQuestion int
	Difficulty          domain.Difficulty
	// VarietyRate is the probability of using a true/false or image
	// question for an entity instead of the default builder.
	VarietyRate               float64
	MultiIngredientPreference float64
	MinBucketShare            float64
	ResolverCacheSize         int
}

func DefaultSettings() Settings {
	return Settings{
		AttemptsPerQuestion:       10,
		Difficulty:                domain.DifficultyMedium,
		VarietyRate:               0,
		MultiIngredientPreference: 0.7,
		MinBucketShare:            0.4,
		ResolverCacheSize:         DefaultResolverCacheSize,
	}
}

// SettingsFromConfig maps the quiz section of the application config.
func SettingsFromConfig(cfg config.QuizConfig) Settings {
	return Settings{
		AttemptsPerQuestion:       cfg.AttemptsPerQuestion,
		Difficulty:                domain.ParseDifficulty(cfg.Difficulty),
		VarietyRate:               cfg.VarietyRate,
		MultiIngredientPreference: cfg.MultiIngredientPreference,
		MinBucketShare:            cfg.MinBucketShare,
		ResolverCacheSize:         cfg.ResolverCacheSize,
	}.withDefaults()
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.AttemptsPerQuestion <= 0 {
		s.AttemptsPerQuestion = d.AttemptsPerQuestion
	}
	if _, ok := domain.DifficultySettings[s.Difficulty]; !ok {
		s.Difficulty = d.Difficulty
	}
	if s.MultiIngredientPreference <= 0 {
		s.MultiIngredientPreference = d.MultiIngredientPreference
	}
	if s.MinBucketShare <= 0 || s.MinBucketShare > 0.5 {
		s.MinBucketShare = d.MinBucketShare
	}
	if s.ResolverCacheSize <= 0 {
		s.ResolverCacheSize = d.ResolverCacheSize
	}
	return s
}

// Generator assembles balanced quizzes from a restaurant catalog.
type Generator struct {
	settings Settings
	sampler  *Sampler
	log      *zap.Logger
}

type Option func(*Generator)

// WithRandSource injects the random source, e.g. a seeded rand.NewPCG.
func WithRandSource(src rand.Source) Option {
	return func(g *Generator) {
		g.sampler = NewSampler(src)
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

func NewGenerator(settings Settings, opts ...Option) *Generator {
	g := &Generator{
		settings: settings.withDefaults(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.sampler == nil {
		g.sampler = NewSampler(nil)
	}
	return g
}

// NewBuilder returns a Builder over catalog sharing the generator's
// random source.
func (g *Generator) NewBuilder(catalog *domain.RestaurantData) *Builder {
	resolver := NewResolver(catalog.Ingredients, g.settings.ResolverCacheSize)
	return NewBuilder(catalog, resolver, g.sampler, g.log, g.settings.Difficulty)
}

// GenerateQuizQuestions produces questionCount questions split between
// the allergy and menu-item buckets, each holding at least MinBucketShare
// of the total when the data allows it.
//
// When the attempt budget runs out early, the questions generated so far
// are returned together with a PARTIAL_QUIZ error. If none could be
// generated the error is INSUFFICIENT_DATA.
func (g *Generator) GenerateQuizQuestions(catalog *domain.RestaurantData, questionCount int) ([]domain.QuizQuestion, error) {
	if questionCount <= 0 {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("question count must be positive, got %d", questionCount))
	}
	if catalog == nil || len(catalog.MenuItems) == 0 || len(catalog.Ingredients) == 0 {
		return nil, domain.NewInsufficientDataError("restaurant has no menu items or ingredients to build a quiz from")
	}

	p := &pass{
		g:             g,
		builder:       g.NewBuilder(catalog),
		usedMenuItems: NewIDSet(),
		usedAllergies: NewIDSet(),
		questions:     make([]domain.QuizQuestion, 0, questionCount),
	}
	p.allergies = p.builder.allergies
	for _, item := range p.builder.menuItems {
		switch {
		case len(item.Ingredients) >= 2:
			p.multi = append(p.multi, item)
		case len(item.Ingredients) == 1:
			p.single = append(p.single, item)
		}
	}
	if len(p.multi) == 0 && len(p.single) == 0 {
		return nil, domain.NewInsufficientDataError("no menu item lists any ingredients")
	}

	p.run(questionCount)
	questions := Shuffle(g.sampler, p.questions)

	g.log.Debug("Quiz generation finished",
		zap.Int("requested", questionCount),
		zap.Int("generated", len(questions)),
		zap.Int("allergy_questions", p.allergyCount),
		zap.Int("menu_item_questions", p.menuItemCount),
		zap.Int("attempts", p.attempts))

	switch {
	case len(questions) == 0:
		g.log.Warn("No quiz questions could be generated", zap.Int("requested", questionCount))
		return nil, domain.NewInsufficientDataError("could not generate any quiz questions from the restaurant data")
	case len(questions) < questionCount:
		g.log.Warn("Quiz generation stopped early",
			zap.Int("requested", questionCount),
			zap.Int("generated", len(questions)))
		return questions, domain.NewPartialQuizError(len(questions), questionCount)
	}
	return questions, nil
}

// pass holds the scheduler state for one GenerateQuizQuestions call.
type pass struct {
	g       *Generator
	builder *Builder

	allergies     []domain.Allergy
	multi, single []domain.MenuItem

	usedMenuItems IDSet
	usedAllergies IDSet

	questions     []domain.QuizQuestion
	allergyCount  int
	menuItemCount int
	attempts      int
}

func (p *pass) run(questionCount int) {
	share := p.g.settings.MinBucketShare
	minAllergy := int(math.Floor(float64(questionCount) * share))
	minMenuItem := int(math.Floor(float64(questionCount) * share))
	budget := questionCount * p.g.settings.AttemptsPerQuestion

	for len(p.questions) < questionCount && p.attempts < budget {
		p.attempts++
		remaining := questionCount - len(p.questions)
		allergyShort := minAllergy - p.allergyCount
		menuItemShort := minMenuItem - p.menuItemCount

		tryAllergy := len(p.questions)%2 == 0
		switch {
		case allergyShort > 0 && remaining <= allergyShort:
			tryAllergy = true
		case menuItemShort > 0 && remaining <= menuItemShort:
			tryAllergy = false
		}

		if tryAllergy && p.tryAllergyQuestion() {
			continue
		}
		p.tryMenuItemQuestion()
	}
}

// tryAllergyQuestion walks the allergies, unused ones first, until one
// yields a question.
func (p *pass) tryAllergyQuestion() bool {
	if len(p.allergies) == 0 {
		return false
	}

	pool := make([]domain.Allergy, 0, len(p.allergies))
	for _, a := range p.allergies {
		if !p.usedAllergies.Has(a.ID) {
			pool = append(pool, a)
		}
	}
	if len(pool) == 0 {
		pool = p.allergies
	}

	for _, allergy := range Shuffle(p.g.sampler, pool) {
		var q *domain.QuizQuestion
		if p.g.sampler.Chance(p.g.settings.VarietyRate) {
			q = p.builder.AllergyTrueFalse(allergy)
		}
		if q == nil {
			q = p.builder.IngredientsWithAllergy(allergy)
		}
		if q == nil {
			continue
		}

		p.usedAllergies.Add(allergy.ID)
		q.ID = fmt.Sprintf("allergy_%s_%d", allergy.ID, len(p.questions))
		p.questions = append(p.questions, *q)
		p.allergyCount++
		return true
	}
	return false
}

func (p *pass) tryMenuItemQuestion() bool {
	bucket := p.pickMenuItemBucket()
	if len(bucket) == 0 {
		return false
	}

	unused := p.unusedMenuItems(bucket)
	if len(unused) == 0 {
		p.g.log.Debug("Menu item pool exhausted, resetting for more questions", zap.Int("pool_size", len(bucket)))
		for _, item := range bucket {
			p.usedMenuItems.Delete(item.ID)
		}
		unused = bucket
	}

	item, _ := PickOne(p.g.sampler, unused)
	p.usedMenuItems.Add(item.ID)

	q := p.buildMenuItemQuestion(item)
	if q == nil {
		return false
	}
	q.ID = fmt.Sprintf("%s_%d", item.ID, len(p.questions))
	p.questions = append(p.questions, *q)
	p.menuItemCount++
	return true
}

// pickMenuItemBucket prefers multi-ingredient items when both partitions
// still have unused candidates, otherwise whichever partition does.
func (p *pass) pickMenuItemBucket() []domain.MenuItem {
	preferMulti := func() []domain.MenuItem {
		if p.g.sampler.Chance(p.g.settings.MultiIngredientPreference) {
			return p.multi
		}
		return p.single
	}

	multiLeft := len(p.unusedMenuItems(p.multi)) > 0
	singleLeft := len(p.unusedMenuItems(p.single)) > 0
	switch {
	case multiLeft && singleLeft:
		return preferMulti()
	case multiLeft:
		return p.multi
	case singleLeft:
		return p.single
	case len(p.multi) > 0 && len(p.single) > 0:
		return preferMulti()
	case len(p.multi) > 0:
		return p.multi
	default:
		return p.single
	}
}

func (p *pass) unusedMenuItems(bucket []domain.MenuItem) []domain.MenuItem {
	var out []domain.MenuItem
	for _, item := range bucket {
		if !p.usedMenuItems.Has(item.ID) {
			out = append(out, item)
		}
	}
	return out
}

func (p *pass) buildMenuItemQuestion(item domain.MenuItem) *domain.QuizQuestion {
	if p.g.sampler.Chance(p.g.settings.VarietyRate) {
		var q *domain.QuizQuestion
		if item.ImageURL != "" && p.g.sampler.Chance(0.5) {
			q = p.builder.WhichMenuItemIsThisFor(item)
		} else {
			q = p.builder.MenuItemContainsIngredientFor(item)
		}
		if q != nil {
			return q
		}
	}

	if len(item.Ingredients) >= 2 {
		return p.builder.IngredientsInDish(item)
	}
	return p.builder.MenuItemByIngredient(item)
}
