package persistent

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	zkriter "github.com/zircuit-labs/zkr-go-common/iter"

	"github.com/zircuit-labs/zkr-go-persistent/hamt"
)

// Bag is an immutable multiset: it remembers how many times each value was
// added. The trie stores one entry per distinct value with its multiplicity;
// total is the sum of all multiplicities. The zero value is an empty bag.
type Bag[T comparable] struct {
	m     hamt.Map[T, int]
	total int
}

// NewBag creates a bag containing the given values, duplicates included.
func NewBag[T comparable](vals ...T) Bag[T] {
	b := Bag[T]{}
	for _, v := range vals {
		b = b.Plus(v)
	}
	return b
}

func (b Bag[T]) rep() rep { return repHashBag }

// Plus returns a bag with one more occurrence of v.
func (b Bag[T]) Plus(v T) Bag[T] {
	m := b.m.Merge(v, 1, func(old, add int) int { return old + add })
	return Bag[T]{m: m, total: b.total + 1}
}

// Minus returns a bag with one fewer occurrence of v. Removing an absent
// value is a no-op.
func (b Bag[T]) Minus(v T) Bag[T] {
	c, ok := b.m.Get(v)
	if !ok {
		return b
	}
	if c == 1 {
		return Bag[T]{m: b.m.Without(v), total: b.total - 1}
	}
	return Bag[T]{m: b.m.Assoc(v, c-1), total: b.total - 1}
}

// PlusAll returns a bag holding every occurrence from both b and other.
// When other is also a bag the multiplicities are summed directly on the
// shared tries; any other operand is drained one element at a time.
func (b Bag[T]) PlusAll(other Iterable[T]) Bag[T] {
	if o, ok := narrow(b, other); ok {
		m := b.m.Union(o.m, func(a, c int) int { return a + c })
		return Bag[T]{m: m, total: b.total + o.total}
	}
	return eachInto(b, other, Bag[T].Plus)
}

// MinusAll returns a bag with one occurrence removed per occurrence in
// other. Multiplicities never go below zero.
func (b Bag[T]) MinusAll(other Iterable[T]) Bag[T] {
	if o, ok := narrow(b, other); ok {
		removed := 0
		m := b.m.Diff(o.m, func(have, drop int) (int, bool) {
			if drop >= have {
				removed += have
				return 0, false
			}
			removed += drop
			return have - drop, true
		})
		return Bag[T]{m: m, total: b.total - removed}
	}
	return eachInto(b, other, Bag[T].Minus)
}

// Count returns the multiplicity of v.
func (b Bag[T]) Count(v T) int {
	c, _ := b.m.Get(v)
	return c
}

// Contains returns true if the bag holds at least one occurrence of every
// given value.
func (b Bag[T]) Contains(vals ...T) bool {
	return zkriter.And(func(v T) bool { return b.m.Contains(v) }, slices.Values(vals))
}

// ContainsAny returns true if the bag holds at least one of the given values.
func (b Bag[T]) ContainsAny(vals ...T) bool {
	return zkriter.Or(func(v T) bool { return b.m.Contains(v) }, slices.Values(vals))
}

// Size returns the total number of occurrences in the bag.
func (b Bag[T]) Size() int {
	return b.total
}

// Empty returns true if the bag contains no elements.
func (b Bag[T]) Empty() bool {
	return b.total == 0
}

// Distinct returns the set of values present at least once.
func (b Bag[T]) Distinct() Set[T] {
	var m hamt.Map[T, struct{}]
	for v := range b.m.Keys() {
		m = m.Assoc(v, struct{}{})
	}
	return Set[T]{m: m}
}

// Iter returns an iterator over the elements of the bag, yielding each value
// once per occurrence. The order is unspecified but stable for a given bag
// value.
func (b Bag[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, c := range b.m.All() {
			for range c {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Members returns all occurrences as a slice.
func (b Bag[T]) Members() []T {
	return slices.Collect(b.Iter())
}

// String returns a string representation of the bag.
func (b Bag[T]) String() string {
	return fmt.Sprintf("%v", b.Members())
}

// Equal returns true if b and b2 hold the same values with the same
// multiplicities.
func (b Bag[T]) Equal(b2 Bag[T]) bool {
	if b.total != b2.total {
		return false
	}
	for v, c := range b.m.All() {
		if b2.Count(v) != c {
			return false
		}
	}
	return true
}

// Filter returns a new bag keeping only occurrences whose value satisfies
// the predicate.
func (b Bag[T]) Filter(p zkriter.Predicate[T]) Bag[T] {
	out := Bag[T]{}
	for v := range zkriter.Filter(p, b.Iter()) {
		out = out.Plus(v)
	}
	return out
}

// TransformBag applies a transformation function to each occurrence and
// returns a new bag of the transformed values.
func TransformBag[S, T comparable](b Bag[S], transform zkriter.Transformation[S, T]) Bag[T] {
	out := Bag[T]{}
	for v := range zkriter.Transform(transform, b.Iter()) {
		out = out.Plus(v)
	}
	return out
}

// MarshalJSON implements the json.Marshaler interface.
// The bag is marshaled as a JSON array with one entry per occurrence.
func (b Bag[T]) MarshalJSON() ([]byte, error) {
	members := b.Members()
	if members == nil {
		members = []T{}
	}
	return json.Marshal(members)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *Bag[T]) UnmarshalJSON(data []byte) error {
	var members []T
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	*b = NewBag(members...)
	return nil
}
