package persistent

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	zkriter "github.com/zircuit-labs/zkr-go-common/iter"
)

// Stack is an immutable list with cheap insertion at the front, backed by a
// counted cons list. Plus prepends; PlusAt inserts at any index. Stacks
// derived from one another share their unmodified tails. The zero value is
// an empty stack.
type Stack[T comparable] struct {
	head *cell[T]
}

type cell[T comparable] struct {
	val  T
	next *cell[T]
	n    int // length of the list headed by this cell
}

func push[T comparable](v T, next *cell[T]) *cell[T] {
	n := 1
	if next != nil {
		n += next.n
	}
	return &cell[T]{val: v, next: next, n: n}
}

// NewStack creates a stack holding the given values in order.
func NewStack[T comparable](vals ...T) Stack[T] {
	var head *cell[T]
	for i := len(vals) - 1; i >= 0; i-- {
		head = push(vals[i], head)
	}
	return Stack[T]{head: head}
}

func (s Stack[T]) rep() rep { return repConsStack }

// Plus returns a stack with v prepended.
func (s Stack[T]) Plus(v T) Stack[T] {
	return Stack[T]{head: push(v, s.head)}
}

// PlusAt returns a stack with v inserted before index i, so PlusAt(0, v)
// prepends and PlusAt(s.Size(), v) appends. Indexes outside [0, Size()] are
// clamped.
func (s Stack[T]) PlusAt(i int, v T) Stack[T] {
	if i < 0 {
		i = 0
	}
	if n := s.Size(); i > n {
		i = n
	}
	return Stack[T]{head: insertAt(s.head, i, v)}
}

func insertAt[T comparable](c *cell[T], i int, v T) *cell[T] {
	if i <= 0 || c == nil {
		return push(v, c)
	}
	return push(c.val, insertAt(c.next, i-1, v))
}

// Minus returns a stack without the first occurrence of v. Removing an
// absent value is a no-op.
func (s Stack[T]) Minus(v T) Stack[T] {
	head, ok := removeFirst(s.head, v)
	if !ok {
		return s
	}
	return Stack[T]{head: head}
}

func removeFirst[T comparable](c *cell[T], v T) (*cell[T], bool) {
	if c == nil {
		return nil, false
	}
	if c.val == v {
		return c.next, true
	}
	next, ok := removeFirst(c.next, v)
	if !ok {
		return c, false
	}
	return push(c.val, next), true
}

// MinusAt returns a stack without the element at index i. An index outside
// [0, Size()) is a no-op.
func (s Stack[T]) MinusAt(i int) Stack[T] {
	if i < 0 || i >= s.Size() {
		return s
	}
	return Stack[T]{head: removeAt(s.head, i)}
}

func removeAt[T comparable](c *cell[T], i int) *cell[T] {
	if i == 0 {
		return c.next
	}
	return push(c.val, removeAt(c.next, i-1))
}

// At returns the element at index i.
func (s Stack[T]) At(i int) (T, bool) {
	if i < 0 {
		var zero T
		return zero, false
	}
	c := s.head
	for ; c != nil && i > 0; i-- {
		c = c.next
	}
	if c == nil {
		var zero T
		return zero, false
	}
	return c.val, true
}

// Concat returns a stack holding s's elements followed by s2's. Only s's
// spine is rebuilt; the result shares s2's cells outright.
func (s Stack[T]) Concat(s2 Stack[T]) Stack[T] {
	return Stack[T]{head: concat(s.head, s2.head)}
}

func concat[T comparable](a, b *cell[T]) *cell[T] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return push(a.val, concat(a.next, b))
}

// PlusAll prepends every element of other in encounter order, exactly as
// repeated Plus calls would. A cons list has no batch insert cheaper than
// that: the whole receiver spine is shared unmodified either way.
func (s Stack[T]) PlusAll(other Iterable[T]) Stack[T] {
	return eachInto(s, other, Stack[T].Plus)
}

// MinusAll removes the first occurrence of each element of other in turn.
func (s Stack[T]) MinusAll(other Iterable[T]) Stack[T] {
	return eachInto(s, other, Stack[T].Minus)
}

// Contains returns true if the stack contains all of the given values.
func (s Stack[T]) Contains(vals ...T) bool {
	return zkriter.And(s.has, slices.Values(vals))
}

// ContainsAny returns true if the stack contains at least one of the given values.
func (s Stack[T]) ContainsAny(vals ...T) bool {
	return zkriter.Or(s.has, slices.Values(vals))
}

func (s Stack[T]) has(v T) bool {
	for c := s.head; c != nil; c = c.next {
		if c.val == v {
			return true
		}
	}
	return false
}

// Size returns the number of elements in the stack.
func (s Stack[T]) Size() int {
	if s.head == nil {
		return 0
	}
	return s.head.n
}

// Empty returns true if the stack contains no elements.
func (s Stack[T]) Empty() bool {
	return s.head == nil
}

// Iter returns an iterator over the elements from front to back.
func (s Stack[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := s.head; c != nil; c = c.next {
			if !yield(c.val) {
				return
			}
		}
	}
}

// Members returns all elements in order as a slice.
func (s Stack[T]) Members() []T {
	return slices.Collect(s.Iter())
}

// String returns a string representation of the stack.
func (s Stack[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}

// Equal returns true if s2 holds the same elements in the same order.
// Stacks sharing a tail compare the shared part in constant time.
func (s Stack[T]) Equal(s2 Stack[T]) bool {
	a, b := s.head, s2.head
	for a != nil && b != nil {
		if a == b {
			return true
		}
		if a.val != b.val {
			return false
		}
		a, b = a.next, b.next
	}
	return a == nil && b == nil
}

// Filter returns a new stack keeping, in order, the elements that satisfy
// the predicate.
func (s Stack[T]) Filter(p zkriter.Predicate[T]) Stack[T] {
	return NewStack(slices.Collect(zkriter.Filter(p, s.Iter()))...)
}

// TransformStack applies a transformation function to each element and
// returns a new stack of the transformed elements, preserving order.
func TransformStack[S, T comparable](s Stack[S], transform zkriter.Transformation[S, T]) Stack[T] {
	return NewStack(slices.Collect(zkriter.Transform(transform, s.Iter()))...)
}

// MarshalJSON implements the json.Marshaler interface.
// The stack is marshaled as a JSON array in front-to-back order.
func (s Stack[T]) MarshalJSON() ([]byte, error) {
	members := s.Members()
	if members == nil {
		members = []T{}
	}
	return json.Marshal(members)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Stack[T]) UnmarshalJSON(data []byte) error {
	var members []T
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	*s = NewStack(members...)
	return nil
}
