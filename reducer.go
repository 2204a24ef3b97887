package persistent

import "iter"

// Reducer describes how to fold a sequence of elements into a collection:
// an identity value, an associative combine, and a lift that wraps a single
// element as a singleton collection. It is the contract lazy construction
// builds on.
type Reducer[T, C any] struct {
	empty   C
	combine func(C, C) C
	lift    func(T) C
}

// NewReducer builds a Reducer from its three parts. combine must be
// associative with empty as its identity on both sides. For order-sensitive
// kinds combine must also place its right operand after its left, so that
// folding preserves encounter order.
func NewReducer[T, C any](empty C, combine func(C, C) C, lift func(T) C) Reducer[T, C] {
	return Reducer[T, C]{empty: empty, combine: combine, lift: lift}
}

// Empty returns the identity value.
func (r Reducer[T, C]) Empty() C {
	return r.empty
}

// Combine merges two partial results.
func (r Reducer[T, C]) Combine(a, b C) C {
	return r.combine(a, b)
}

// Lift wraps one element as a singleton collection.
func (r Reducer[T, C]) Lift(v T) C {
	return r.lift(v)
}

// Reduce folds seq into a collection, combining singletons onto the
// accumulator in encounter order.
func (r Reducer[T, C]) Reduce(seq iter.Seq[T]) C {
	acc := r.empty
	for v := range seq {
		acc = r.combine(acc, r.lift(v))
	}
	return acc
}

// SetReducer folds elements into a hash set.
func SetReducer[T comparable]() Reducer[T, Set[T]] {
	return NewReducer(NewSet[T](), Set[T].Union, func(v T) Set[T] { return NewSet(v) })
}

// StackReducer folds elements into a stack, preserving encounter order.
func StackReducer[T comparable]() Reducer[T, Stack[T]] {
	return NewReducer(NewStack[T](), Stack[T].Concat, func(v T) Stack[T] { return NewStack(v) })
}

// BagReducer folds elements into a bag, keeping duplicates.
func BagReducer[T comparable]() Reducer[T, Bag[T]] {
	combine := func(a, b Bag[T]) Bag[T] { return a.PlusAll(b) }
	return NewReducer(NewBag[T](), combine, func(v T) Bag[T] { return NewBag(v) })
}
