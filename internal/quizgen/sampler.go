package quizgen

import (
	"math/rand/v2"
	"sync"

	"restaurant-quiz/internal/domain"
)

// Sampler wraps a random source for uniform picks. It is safe for
// concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a Sampler over src. A nil src draws a random seed.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Sampler{rng: rand.New(src)}
}

// IntN returns a uniform int in [0, n). n must be positive.
func (s *Sampler) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

func (s *Sampler) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Chance returns true with probability p.
func (s *Sampler) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Float64() < p
}

// Shuffle returns a uniformly permuted copy of arr (Fisher-Yates).
func Shuffle[T any](s *Sampler, arr []T) []T {
	out := make([]T, len(arr))
	copy(out, arr)
	for i := len(out) - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// RandomSubset returns count distinct elements of arr in random order, or
// a shuffled copy of all of arr when it has no more than count elements.
func RandomSubset[T any](s *Sampler, arr []T, count int) []T {
	shuffled := Shuffle(s, arr)
	if count < 0 {
		count = 0
	}
	if len(shuffled) <= count {
		return shuffled
	}
	return shuffled[:count]
}

// PickOne returns a uniformly chosen element, or false when arr is empty.
func PickOne[T any](s *Sampler, arr []T) (T, bool) {
	var zero T
	if len(arr) == 0 {
		return zero, false
	}
	return arr[s.IntN(len(arr))], true
}

// CombineAndShuffleOptions concatenates both lists and shuffles the result.
func CombineAndShuffleOptions(s *Sampler, correct, incorrect []domain.AnswerOption) []domain.AnswerOption {
	all := make([]domain.AnswerOption, 0, len(correct)+len(incorrect))
	all = append(all, correct...)
	all = append(all, incorrect...)
	return Shuffle(s, all)
}
