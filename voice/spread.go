package voice

import "slices"

// Spread assigns a parameter to a voice's notes. A uniform spread gives
// every note the same value; a per-index spread gives note i the value at
// i modulo its length.
type Spread[T any] struct {
	values   []T
	perIndex bool
}

// Uniform returns a spread applying v to every note.
func Uniform[T any](v T) Spread[T] {
	return Spread[T]{values: []T{v}}
}

// PerIndex returns a spread cycling through values by note index.
func PerIndex[T any](values ...T) Spread[T] {
	return Spread[T]{values: slices.Clone(values), perIndex: true}
}

// At returns the value for note i, or the zero value for an empty spread.
func (s Spread[T]) At(i int) T {
	if len(s.values) == 0 {
		var zero T
		return zero
	}
	return s.values[i%len(s.values)]
}

// Len returns the number of distinct values.
func (s Spread[T]) Len() int { return len(s.values) }

// IsUniform reports whether every note shares one value.
func (s Spread[T]) IsUniform() bool { return !s.perIndex }

// Values returns a copy of the values.
func (s Spread[T]) Values() []T { return slices.Clone(s.values) }
