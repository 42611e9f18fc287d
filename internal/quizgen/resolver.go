package quizgen

import (
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"restaurant-quiz/internal/domain"
)

const DefaultResolverCacheSize = 1024

// Resolver answers composition and allergy questions over one catalog's
// ingredient graph. Expansions are memoized; the cache is bounded and is
// dropped wholesale once it reaches maxEntries.
type Resolver struct {
	index       map[string]*domain.Ingredient
	catalogSize int
	maxEntries  int

	mu             sync.Mutex
	expansionCache map[string]IDSet
	allergyCache   map[string]IDSet
}

func NewResolver(ingredients []domain.Ingredient, maxEntries int) *Resolver {
	if maxEntries <= 0 {
		maxEntries = DefaultResolverCacheSize
	}
	index := make(map[string]*domain.Ingredient, len(ingredients))
	for i := range ingredients {
		if _, dup := index[ingredients[i].ID]; !dup {
			index[ingredients[i].ID] = &ingredients[i]
		}
	}
	return &Resolver{
		index:          index,
		catalogSize:    len(ingredients),
		maxEntries:     maxEntries,
		expansionCache: make(map[string]IDSet),
		allergyCache:   make(map[string]IDSet),
	}
}

// Ingredient looks an ingredient up by ID.
func (r *Resolver) Ingredient(id string) (*domain.Ingredient, bool) {
	ing, ok := r.index[id]
	return ing, ok
}

// CacheLen reports the number of memoized expansions.
func (r *Resolver) CacheLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.expansionCache)
}

// cacheKey length-prefixes every ID so IDs containing separators cannot
// collide with a different ID list.
func (r *Resolver) cacheKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	var b strings.Builder
	for _, id := range sorted {
		b.WriteString(strconv.Itoa(len(id)))
		b.WriteByte(':')
		b.WriteString(id)
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(r.catalogSize))
	return b.String()
}

// ExpandIngredientIDs returns ids plus every ingredient reachable through
// SubIngredients. Unknown IDs are kept as-is. The caller owns the result.
func (r *Resolver) ExpandIngredientIDs(ids []string) IDSet {
	if len(ids) == 0 {
		return NewIDSet()
	}

	key := r.cacheKey(ids)
	r.mu.Lock()
	cached, ok := r.expansionCache[key]
	r.mu.Unlock()
	if ok {
		return cached.Clone()
	}

	expanded := NewIDSet()
	stack := append([]string(nil), ids...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if expanded.Has(id) {
			continue
		}
		expanded.Add(id)
		ing, ok := r.index[id]
		if !ok {
			continue
		}
		for _, sub := range ing.SubIngredients {
			if !expanded.Has(sub) {
				stack = append(stack, sub)
			}
		}
	}

	r.mu.Lock()
	if len(r.expansionCache) >= r.maxEntries {
		r.expansionCache = make(map[string]IDSet)
	}
	r.expansionCache[key] = expanded
	r.mu.Unlock()

	return expanded.Clone()
}

// IngredientAllAllergies returns the direct and derived allergies of ing
// together with those of every sub-ingredient not already in visited.
// visited may be nil; it is shared across the whole recursion.
func (r *Resolver) IngredientAllAllergies(ing domain.Ingredient, visited IDSet) IDSet {
	if visited == nil {
		return r.ingredientClosure(ing)
	}
	return r.collectAllergies(ing, visited)
}

func (r *Resolver) ingredientClosure(ing domain.Ingredient) IDSet {
	// Only catalog members are memoized; ad-hoc ingredients may carry
	// different tags under a known ID.
	indexed, known := r.index[ing.ID]
	memoize := known && sameIngredient(indexed, &ing)

	if memoize {
		r.mu.Lock()
		cached, ok := r.allergyCache[ing.ID]
		r.mu.Unlock()
		if ok {
			return cached.Clone()
		}
	}

	closure := r.collectAllergies(ing, NewIDSet())
	if memoize {
		r.mu.Lock()
		if len(r.allergyCache) >= r.maxEntries {
			r.allergyCache = make(map[string]IDSet)
		}
		r.allergyCache[ing.ID] = closure
		r.mu.Unlock()
		return closure.Clone()
	}
	return closure
}

func (r *Resolver) collectAllergies(ing domain.Ingredient, visited IDSet) IDSet {
	visited.Add(ing.ID)
	allergies := NewIDSet(ing.Allergies...)
	allergies.Add(ing.DerivedAllergies...)

	for _, subID := range ing.SubIngredients {
		if visited.Has(subID) {
			continue
		}
		sub, ok := r.index[subID]
		if !ok {
			visited.Add(subID)
			continue
		}
		allergies.Union(r.collectAllergies(*sub, visited))
	}
	return allergies
}

// MenuItemAllIngredientIDs expands a menu item's direct ingredients.
func (r *Resolver) MenuItemAllIngredientIDs(item domain.MenuItem) IDSet {
	return r.ExpandIngredientIDs(item.Ingredients)
}

func (r *Resolver) MenuItemContainsIngredient(item domain.MenuItem, ingredientID string) bool {
	return r.MenuItemAllIngredientIDs(item).Has(ingredientID)
}

// MenuItemContainsAllergy reports whether any ingredient in the item's
// expanded set carries allergyID in its allergy closure.
func (r *Resolver) MenuItemContainsAllergy(item domain.MenuItem, allergyID string) bool {
	for id := range r.MenuItemAllIngredientIDs(item) {
		ing, ok := r.index[id]
		if !ok {
			continue
		}
		if r.IngredientAllAllergies(*ing, nil).Has(allergyID) {
			return true
		}
	}
	return false
}

func sameIngredient(a, b *domain.Ingredient) bool {
	return a.ID == b.ID &&
		slices.Equal(a.Allergies, b.Allergies) &&
		slices.Equal(a.DerivedAllergies, b.DerivedAllergies) &&
		slices.Equal(a.SubIngredients, b.SubIngredients)
}
