package persistent

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// FromSeq defers folding seq through reducer until the collection is first
// used.
func FromSeq[T comparable, C Collection[T, C]](seq iter.Seq[T], reducer Reducer[T, C]) *Lazy[T, C] {
	return FromSeq2(noFail(seq), reducer)
}

// FromSeq2 is FromSeq for producers that can fail mid-stream. The first
// yielded error aborts realization and surfaces from the triggering call.
func FromSeq2[T comparable, C Collection[T, C]](seq iter.Seq2[T, error], reducer Reducer[T, C]) *Lazy[T, C] {
	return &Lazy[T, C]{producer: seq, reducer: reducer}
}

func noFail[T any](seq iter.Seq[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for v := range seq {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// SetFromSeq lazily collects seq into a set.
func SetFromSeq[T comparable](seq iter.Seq[T]) *Lazy[T, Set[T]] {
	return FromSeq(seq, SetReducer[T]())
}

// StackFromSeq lazily collects seq into a stack, preserving order.
func StackFromSeq[T comparable](seq iter.Seq[T]) *Lazy[T, Stack[T]] {
	return FromSeq(seq, StackReducer[T]())
}

// BagFromSeq lazily collects seq into a bag, keeping duplicates.
func BagFromSeq[T comparable](seq iter.Seq[T]) *Lazy[T, Bag[T]] {
	return FromSeq(seq, BagReducer[T]())
}

// Range yields the integers in [start, end). An inverted interval yields
// nothing.
func Range[I constraints.Integer](start, end I) iter.Seq[I] {
	return func(yield func(I) bool) {
		for i := start; i < end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Iterate yields seed, f(seed), f(f(seed)), and so on, up to limit
// elements. The limit keeps realization of the otherwise infinite sequence
// bounded.
func Iterate[T any](limit int, seed T, f func(T) T) iter.Seq[T] {
	return func(yield func(T) bool) {
		v := seed
		for range limit {
			if !yield(v) {
				return
			}
			v = f(v)
		}
	}
}

// Generate yields limit values drawn from supply.
func Generate[T any](limit int, supply func() T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for range limit {
			if !yield(supply()) {
				return
			}
		}
	}
}

// Unfold grows a sequence from seed: step returns the next element, the
// next seed, and whether the sequence continues. The first false stops the
// sequence without emitting.
func Unfold[S, T any](seed S, step func(S) (T, S, bool)) iter.Seq[T] {
	return func(yield func(T) bool) {
		s := seed
		for {
			v, next, ok := step(s)
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
			s = next
		}
	}
}
