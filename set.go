package persistent

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	zkriter "github.com/zircuit-labs/zkr-go-common/iter"

	"github.com/zircuit-labs/zkr-go-persistent/hamt"
)

// Set is an immutable mathematical set of comparable elements, backed by a
// hash array mapped trie so derived sets share structure with the sets they
// came from. The zero value is an empty set.
type Set[T comparable] struct {
	m hamt.Map[T, struct{}]
}

// NewSet creates a set containing the given values.
func NewSet[T comparable](vals ...T) Set[T] {
	var m hamt.Map[T, struct{}]
	for _, v := range vals {
		m = m.Assoc(v, struct{}{})
	}
	return Set[T]{m: m}
}

func (s Set[T]) rep() rep { return repHashSet }

// Plus returns a set that also contains v. Adding a value already present
// yields an equal set.
func (s Set[T]) Plus(v T) Set[T] {
	return Set[T]{m: s.m.Assoc(v, struct{}{})}
}

// Minus returns a set without v. Removing an absent value is a no-op.
func (s Set[T]) Minus(v T) Set[T] {
	return Set[T]{m: s.m.Without(v)}
}

// PlusAll returns a set containing the elements of both s and other.
// When other is itself a hash set the union is computed directly on the
// shared tries; any other operand is drained one element at a time.
func (s Set[T]) PlusAll(other Iterable[T]) Set[T] {
	if o, ok := narrow(s, other); ok {
		return s.Union(o)
	}
	return eachInto(s, other, Set[T].Plus)
}

// MinusAll returns a set without any element of other, using the native trie
// difference when other is also a hash set.
func (s Set[T]) MinusAll(other Iterable[T]) Set[T] {
	if o, ok := narrow(s, other); ok {
		return s.Difference(o)
	}
	return eachInto(s, other, Set[T].Minus)
}

// Union returns a new set containing all elements from both sets.
func (s Set[T]) Union(s2 Set[T]) Set[T] {
	return Set[T]{m: s.m.Union(s2.m, func(a, _ struct{}) struct{} { return a })}
}

// Intersection returns a new set containing only elements present in both sets.
func (s Set[T]) Intersection(s2 Set[T]) Set[T] {
	return s.Filter(func(v T) bool { return s2.Contains(v) })
}

// Difference returns a new set containing elements in s but not in s2.
func (s Set[T]) Difference(s2 Set[T]) Set[T] {
	return Set[T]{m: s.m.Diff(s2.m, func(struct{}, struct{}) (struct{}, bool) {
		return struct{}{}, false
	})}
}

// SymmetricDifference returns a new set containing elements that are in s or
// s2 but not both.
func (s Set[T]) SymmetricDifference(s2 Set[T]) Set[T] {
	return s.Difference(s2).Union(s2.Difference(s))
}

// Filter returns a new set containing only elements that satisfy the predicate.
func (s Set[T]) Filter(p zkriter.Predicate[T]) Set[T] {
	var m hamt.Map[T, struct{}]
	for v := range zkriter.Filter(p, s.Iter()) {
		m = m.Assoc(v, struct{}{})
	}
	return Set[T]{m: m}
}

// TransformSet applies a transformation function to each element in the set
// and returns a new set containing the transformed elements.
func TransformSet[S, T comparable](s Set[S], transform zkriter.Transformation[S, T]) Set[T] {
	var m hamt.Map[T, struct{}]
	for v := range zkriter.Transform(transform, s.Iter()) {
		m = m.Assoc(v, struct{}{})
	}
	return Set[T]{m: m}
}

// Contains returns true if the set contains all of the given values.
func (s Set[T]) Contains(vals ...T) bool {
	return zkriter.And(func(v T) bool { return s.m.Contains(v) }, slices.Values(vals))
}

// ContainsAny returns true if the set contains at least one of the given values.
func (s Set[T]) ContainsAny(vals ...T) bool {
	return zkriter.Or(func(v T) bool { return s.m.Contains(v) }, slices.Values(vals))
}

// Size returns the number of elements in the set.
func (s Set[T]) Size() int {
	return s.m.Len()
}

// Empty returns true if the set contains no elements.
func (s Set[T]) Empty() bool {
	return s.m.Len() == 0
}

// Iter returns an iterator over the elements in the set. The order is
// unspecified but stable for a given set value.
func (s Set[T]) Iter() iter.Seq[T] {
	return s.m.Keys()
}

// Members returns all elements in the set as a slice.
func (s Set[T]) Members() []T {
	return slices.Collect(s.Iter())
}

// String returns a string representation of the set.
func (s Set[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}

// Equal returns true if s and s2 contain exactly the same elements.
func (s Set[T]) Equal(s2 Set[T]) bool {
	if s.Size() != s2.Size() {
		return false
	}
	return zkriter.And(func(v T) bool { return s2.Contains(v) }, s.Iter())
}

// MarshalJSON implements the json.Marshaler interface.
// The set is marshaled as a JSON array containing all elements.
func (s Set[T]) MarshalJSON() ([]byte, error) {
	members := s.Members()
	if members == nil {
		members = []T{}
	}
	return json.Marshal(members)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The set is unmarshaled from a JSON array of elements.
func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var members []T
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	*s = NewSet(members...)
	return nil
}
