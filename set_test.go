package persistent_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	persistent "github.com/zircuit-labs/zkr-go-persistent"
)

func TestNewSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []int
		expected []int
	}{
		{
			name:     "empty set",
			input:    []int{},
			expected: nil,
		},
		{
			name:     "single element",
			input:    []int{1},
			expected: []int{1},
		},
		{
			name:     "multiple elements",
			input:    []int{1, 2, 3},
			expected: []int{1, 2, 3},
		},
		{
			name:     "duplicate elements",
			input:    []int{1, 1, 2},
			expected: []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			set := persistent.NewSet(tt.input...)
			assert.ElementsMatch(t, tt.expected, set.Members())
			assert.Equal(t, len(tt.expected), set.Size())
		})
	}
}

func TestSetPlusIsImmutable(t *testing.T) {
	t.Parallel()

	s1 := persistent.NewSet(1, 2, 3)
	s2 := s1.Plus(4)

	assert.Equal(t, 3, s1.Size())
	assert.Equal(t, 4, s2.Size())
	assert.False(t, s1.Contains(4))
	assert.True(t, s2.Contains(4))
}

func TestSetPlusExistingElement(t *testing.T) {
	t.Parallel()

	s1 := persistent.NewSet(1, 2, 3)
	s2 := s1.Plus(2)

	assert.True(t, s1.Equal(s2))
}

func TestSetMinus(t *testing.T) {
	t.Parallel()

	s1 := persistent.NewSet(1, 2, 3)
	s2 := s1.Minus(2)

	assert.ElementsMatch(t, []int{1, 3}, s2.Members())
	assert.Equal(t, 3, s1.Size(), "receiver must be untouched")

	// removing an absent element is a no-op
	s3 := s2.Minus(42)
	assert.True(t, s2.Equal(s3))
}

func TestSetPlusAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		other    persistent.Iterable[int]
		expected []int
	}{
		{
			name:     "same representation",
			other:    persistent.NewSet(2, 3, 4),
			expected: []int{1, 2, 3, 4},
		},
		{
			name:     "plain elements",
			other:    persistent.Values(2, 3, 4),
			expected: []int{1, 2, 3, 4},
		},
		{
			name:     "different representation",
			other:    persistent.NewBag(2, 3, 4, 4),
			expected: []int{1, 2, 3, 4},
		},
		{
			name:     "stack operand",
			other:    persistent.NewStack(4, 5),
			expected: []int{1, 2, 3, 4, 5},
		},
		{
			name:     "empty operand",
			other:    persistent.Values[int](),
			expected: []int{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			receiver := persistent.NewSet(1, 2, 3)
			result := receiver.PlusAll(tt.other)

			assert.ElementsMatch(t, tt.expected, result.Members())
			assert.Equal(t, 3, receiver.Size(), "receiver must be untouched")
		})
	}
}

// Both dispatch paths must produce the same value for the same elements.
func TestSetPlusAllPathEquivalence(t *testing.T) {
	t.Parallel()

	receiver := persistent.NewSet(1, 2, 3)
	native := receiver.PlusAll(persistent.NewSet(2, 3, 4))
	fallback := receiver.PlusAll(persistent.Values(2, 3, 4))

	assert.True(t, native.Equal(fallback))

	incremental := receiver
	for _, v := range []int{2, 3, 4} {
		incremental = incremental.Plus(v)
	}
	assert.True(t, native.Equal(incremental))
}

func TestSetMinusAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		other    persistent.Iterable[int]
		expected []int
	}{
		{
			name:     "same representation",
			other:    persistent.NewSet(2, 3),
			expected: []int{1},
		},
		{
			name:     "plain elements",
			other:    persistent.Values(2, 3),
			expected: []int{1},
		},
		{
			name:     "bag operand",
			other:    persistent.NewBag(2, 3),
			expected: []int{1},
		},
		{
			name:     "absent elements",
			other:    persistent.Values(7, 8),
			expected: []int{1, 2, 3},
		},
		{
			name:     "empty operand",
			other:    persistent.NewSet[int](),
			expected: []int{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			receiver := persistent.NewSet(1, 2, 3)
			result := receiver.MinusAll(tt.other)

			assert.ElementsMatch(t, tt.expected, result.Members())
			assert.Equal(t, 3, receiver.Size(), "receiver must be untouched")
		})
	}
}

func TestSetContains(t *testing.T) {
	t.Parallel()

	set := persistent.NewSet(1, 2, 3)

	assert.True(t, set.Contains(1))
	assert.True(t, set.Contains(1, 2, 3))
	assert.False(t, set.Contains(1, 4))
	assert.True(t, set.Contains())

	assert.True(t, set.ContainsAny(3, 9))
	assert.False(t, set.ContainsAny(8, 9))
	assert.False(t, set.ContainsAny())
}

func TestSetAlgebra(t *testing.T) {
	t.Parallel()

	a := persistent.NewSet(1, 2, 3)
	b := persistent.NewSet(2, 3, 4)

	assert.ElementsMatch(t, []int{1, 2, 3, 4}, a.Union(b).Members())
	assert.ElementsMatch(t, []int{2, 3}, a.Intersection(b).Members())
	assert.ElementsMatch(t, []int{1}, a.Difference(b).Members())
	assert.ElementsMatch(t, []int{1, 4}, a.SymmetricDifference(b).Members())

	assert.ElementsMatch(t, []int{1, 2, 3}, a.Members(), "operands must be untouched")
	assert.ElementsMatch(t, []int{2, 3, 4}, b.Members(), "operands must be untouched")
}

func TestSetEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, persistent.NewSet(1, 2, 3).Equal(persistent.NewSet(3, 2, 1)))
	assert.False(t, persistent.NewSet(1, 2).Equal(persistent.NewSet(1, 2, 3)))
	assert.False(t, persistent.NewSet(1, 2).Equal(persistent.NewSet(1, 4)))
	assert.True(t, persistent.NewSet[int]().Equal(persistent.NewSet[int]()))
}

func TestSetFilter(t *testing.T) {
	t.Parallel()

	set := persistent.NewSet(1, 2, 3, 4, 5, 6)
	even := set.Filter(func(v int) bool { return v%2 == 0 })

	assert.ElementsMatch(t, []int{2, 4, 6}, even.Members())
	assert.Equal(t, 6, set.Size())
}

func TestTransformSet(t *testing.T) {
	t.Parallel()

	set := persistent.NewSet(1, 2, 3)
	doubled := persistent.TransformSet(set, func(v int) int { return v * 2 })

	assert.ElementsMatch(t, []int{2, 4, 6}, doubled.Members())
}

func TestSetEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, persistent.NewSet[string]().Empty())
	assert.False(t, persistent.NewSet("a").Empty())
}

func TestSetLarge(t *testing.T) {
	t.Parallel()

	set := persistent.NewSet[int]()
	for i := range 1000 {
		set = set.Plus(i % 500)
	}

	assert.Equal(t, 500, set.Size())
	assert.ElementsMatch(t, slices.Collect(persistent.Range(0, 500)), set.Members())
}
