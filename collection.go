// Package persistent provides immutable collections. Every structural
// operation returns a new collection and leaves the receiver untouched;
// derived values share backing structure with their originals, so callers
// can hold onto any version without copying.
package persistent

import (
	"iter"
	"slices"
)

// Iterable is anything able to produce its elements in order. Bulk
// operations take an Iterable so they accept both persistent collections
// and plain element sequences.
type Iterable[T any] interface {
	Iter() iter.Seq[T]
}

// Collection is the contract shared by every collection kind in this
// package. C is the concrete kind itself, so structural operations keep
// their precise type.
type Collection[T comparable, C any] interface {
	Iterable[T]
	Plus(v T) C
	Minus(v T) C
	PlusAll(other Iterable[T]) C
	MinusAll(other Iterable[T]) C
	Contains(vals ...T) bool
	Size() int
	Members() []T
}

var (
	_ Collection[int, Set[int]]   = Set[int]{}
	_ Collection[int, Bag[int]]   = Bag[int]{}
	_ Collection[int, Stack[int]] = Stack[int]{}
)

type seqIterable[T any] struct {
	s iter.Seq[T]
}

func (s seqIterable[T]) Iter() iter.Seq[T] { return s.s }

// Seq adapts a plain iterator for use with bulk operations.
func Seq[T any](s iter.Seq[T]) Iterable[T] {
	return seqIterable[T]{s: s}
}

// Values adapts loose elements for use with bulk operations.
func Values[T any](vals ...T) Iterable[T] {
	return seqIterable[T]{s: slices.Values(vals)}
}
