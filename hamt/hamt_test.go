package hamt_test

import (
	"fmt"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zircuit-labs/zkr-go-persistent/hamt"
)

func TestZeroValueIsEmpty(t *testing.T) {
	t.Parallel()

	var m hamt.Map[string, int]
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Contains("a"))

	_, ok := m.Get("a")
	assert.False(t, ok)
}

func TestAssocGet(t *testing.T) {
	t.Parallel()

	var m hamt.Map[string, int]
	m = m.Assoc("a", 1)
	m = m.Assoc("b", 2)
	m = m.Assoc("c", 3)

	assert.Equal(t, 3, m.Len())
	for k, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := m.Get(k)
		require.True(t, ok, k)
		assert.Equal(t, want, got)
	}
}

func TestAssocReplacesExisting(t *testing.T) {
	t.Parallel()

	var m hamt.Map[string, int]
	m = m.Assoc("a", 1)
	m = m.Assoc("a", 2)

	assert.Equal(t, 1, m.Len())
	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestMergeResolves(t *testing.T) {
	t.Parallel()

	sum := func(old, add int) int { return old + add }

	var m hamt.Map[string, int]
	m = m.Merge("a", 1, sum)
	m = m.Merge("a", 2, sum)
	m = m.Merge("b", 5, sum)

	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, got)

	got, ok = m.Get("b")
	require.True(t, ok)
	assert.Equal(t, 5, got)
}

func TestWithout(t *testing.T) {
	t.Parallel()

	var m hamt.Map[int, string]
	for i := range 10 {
		m = m.Assoc(i, fmt.Sprint(i))
	}

	m2 := m.Without(3)
	assert.Equal(t, 10, m.Len(), "original must be untouched")
	assert.Equal(t, 9, m2.Len())
	assert.True(t, m.Contains(3))
	assert.False(t, m2.Contains(3))

	// removing an absent key is a no-op
	m3 := m2.Without(3)
	assert.Equal(t, 9, m3.Len())
}

func TestImmutability(t *testing.T) {
	t.Parallel()

	var m hamt.Map[int, int]
	for i := range 100 {
		m = m.Assoc(i, i)
	}

	_ = m.Assoc(200, 200)
	_ = m.Without(50)

	assert.Equal(t, 100, m.Len())
	assert.False(t, m.Contains(200))
	assert.True(t, m.Contains(50))
}

func TestAllAndKeys(t *testing.T) {
	t.Parallel()

	want := map[string]int{"x": 1, "y": 2, "z": 3}
	var m hamt.Map[string, int]
	for k, v := range want {
		m = m.Assoc(k, v)
	}

	assert.Equal(t, want, maps.Collect(m.All()))
	assert.ElementsMatch(t, slices.Collect(maps.Keys(want)), slices.Collect(m.Keys()))
}

func TestIterationOrderStable(t *testing.T) {
	t.Parallel()

	var m hamt.Map[int, int]
	for i := range 500 {
		m = m.Assoc(i, i)
	}

	first := slices.Collect(m.Keys())
	second := slices.Collect(m.Keys())
	assert.Equal(t, first, second)
}

func TestUnion(t *testing.T) {
	t.Parallel()

	var a, b hamt.Map[int, int]
	for i := range 100 {
		a = a.Assoc(i, 1)
	}
	for i := 50; i < 150; i++ {
		b = b.Assoc(i, 10)
	}

	u := a.Union(b, func(av, bv int) int { return av + bv })
	assert.Equal(t, 150, u.Len())

	for i := range 150 {
		got, ok := u.Get(i)
		require.True(t, ok, i)
		switch {
		case i < 50:
			assert.Equal(t, 1, got)
		case i < 100:
			assert.Equal(t, 11, got, "overlap must be resolved with a's value first")
		default:
			assert.Equal(t, 10, got)
		}
	}

	// operands are untouched
	assert.Equal(t, 100, a.Len())
	assert.Equal(t, 100, b.Len())
}

func TestUnionWithEmpty(t *testing.T) {
	t.Parallel()

	var a, empty hamt.Map[int, int]
	for i := range 20 {
		a = a.Assoc(i, i)
	}
	keep := func(av, _ int) int { return av }

	assert.Equal(t, 20, a.Union(empty, keep).Len())
	assert.Equal(t, 20, empty.Union(a, keep).Len())
}

func TestDiff(t *testing.T) {
	t.Parallel()

	var a, b hamt.Map[int, int]
	for i := range 100 {
		a = a.Assoc(i, i)
	}
	for i := 60; i < 120; i++ {
		b = b.Assoc(i, i)
	}

	drop := func(_, _ int) (int, bool) { return 0, false }
	d := a.Diff(b, drop)

	assert.Equal(t, 60, d.Len())
	for i := range 60 {
		assert.True(t, d.Contains(i), i)
	}
	for i := 60; i < 100; i++ {
		assert.False(t, d.Contains(i), i)
	}
	assert.Equal(t, 100, a.Len(), "original must be untouched")
}

func TestDiffKeepsResolvedValues(t *testing.T) {
	t.Parallel()

	var a, b hamt.Map[string, int]
	a = a.Assoc("x", 5).Assoc("y", 2).Assoc("z", 9)
	b = b.Assoc("x", 3).Assoc("y", 2)

	subtract := func(have, drop int) (int, bool) {
		if drop >= have {
			return 0, false
		}
		return have - drop, true
	}

	d := a.Diff(b, subtract)
	assert.Equal(t, 2, d.Len())

	got, ok := d.Get("x")
	require.True(t, ok)
	assert.Equal(t, 2, got)

	assert.False(t, d.Contains("y"))
	assert.True(t, d.Contains("z"))
}

func TestDiffDisjointReturnsReceiver(t *testing.T) {
	t.Parallel()

	var a, b hamt.Map[int, int]
	for i := range 10 {
		a = a.Assoc(i, i)
		b = b.Assoc(i+100, i)
	}

	d := a.Diff(b, func(_, _ int) (int, bool) { return 0, false })
	assert.Equal(t, 10, d.Len())
	assert.Equal(t, maps.Collect(a.All()), maps.Collect(d.All()))
}

func TestLargeChurn(t *testing.T) {
	t.Parallel()

	const n = 2000
	var m hamt.Map[int, int]
	for i := range n {
		m = m.Assoc(i, i*i)
	}
	require.Equal(t, n, m.Len())

	for i := 0; i < n; i += 2 {
		m = m.Without(i)
	}
	assert.Equal(t, n/2, m.Len())

	for i := range n {
		got, ok := m.Get(i)
		if i%2 == 0 {
			assert.False(t, ok, i)
		} else {
			require.True(t, ok, i)
			assert.Equal(t, i*i, got)
		}
	}
}
