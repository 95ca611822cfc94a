// Package generator provides value generators consumed by the fixture registry.
//
// A ValueGenerator produces a fresh value on every call to Generate. The
// fixture package uses a ValueGenerator[int] to size collections when the
// caller does not ask for an explicit length; builders are free to use any of
// the generators here to fill their own fields.
//
//	sizes := generator.IntRange(2, 5, generator.WithSeed(42))
//	names := generator.PrefixedString("user")
package generator

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
)

// ValueGenerator produces a value of type T on demand.
type ValueGenerator[T any] interface {
	Generate() T
}

// Func adapts a plain function into a ValueGenerator.
type Func[T any] func() T

// Generate implements ValueGenerator.
func (f Func[T]) Generate() T { return f() }

// Constant returns a generator that always yields v.
func Constant[T any](v T) ValueGenerator[T] {
	return Func[T](func() T { return v })
}

// SequenceGenerator yields start, start+step, start+2*step, ...
type SequenceGenerator struct {
	next int
	step int
}

// Sequence returns a counting generator.
func Sequence(start, step int) *SequenceGenerator {
	return &SequenceGenerator{next: start, step: step}
}

// Generate implements ValueGenerator.
func (s *SequenceGenerator) Generate() int {
	v := s.next
	s.next += s.step
	return v
}

// RangeGenerator yields uniformly distributed ints in [min, max].
type RangeGenerator struct {
	min, max int
	rnd      *rand.Rand
}

// RangeOption configures an IntRange generator.
type RangeOption func(*RangeGenerator)

// WithSeed makes the generator reproducible.
func WithSeed(seed uint64) RangeOption {
	return func(g *RangeGenerator) {
		g.rnd = rand.New(rand.NewPCG(seed, seed))
	}
}

// IntRange returns a generator of ints in the closed interval [min, max].
// Any range up to the full int width is accepted. It panics if min > max.
func IntRange(min, max int, opts ...RangeOption) *RangeGenerator {
	if min > max {
		panic(fmt.Errorf("generator: invalid range [%d, %d]", min, max))
	}
	g := &RangeGenerator{
		min: min,
		max: max,
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate implements ValueGenerator.
func (g *RangeGenerator) Generate() int {
	// The span is computed in uint64 so ranges wider than MaxInt do not overflow.
	span := uint64(g.max) - uint64(g.min)
	if span == math.MaxUint64 {
		return int(g.rnd.Uint64())
	}
	return g.min + int(g.rnd.Uint64N(span+1))
}

// DefaultSize is the size generator used by fixtures constructed without one.
func DefaultSize() ValueGenerator[int] {
	return IntRange(1, 10)
}

// UUID returns a generator of random version 4 UUID strings.
func UUID() ValueGenerator[string] {
	return Func[string](func() string { return uuid.NewString() })
}

// PrefixedString returns a generator of "<prefix>-<uuid>" strings.
func PrefixedString(prefix string) ValueGenerator[string] {
	return Func[string](func() string { return prefix + "-" + uuid.NewString() })
}
