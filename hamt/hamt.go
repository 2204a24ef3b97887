// Package hamt implements an immutable hash array mapped trie.
//
// A Map is a value type: methods that change content return a new Map and
// leave the receiver untouched. Derived maps share unmodified subtrees with
// their originals, so a trie of n entries costs O(log n) new nodes per
// update rather than a full copy.
package hamt

import (
	"hash/maphash"
	"iter"
)

const (
	bitsPerLevel = 5
	branchWidth  = 1 << bitsPerLevel
	levelMask    = branchWidth - 1
)

// All maps share one seed so that tries built independently hash keys to the
// same paths and can be merged node by node.
var seed = maphash.MakeSeed()

func hashOf[K comparable](k K) uint64 {
	return maphash.Comparable(seed, k)
}

func index(h uint64, shift uint) uint {
	return uint(h>>shift) & levelMask
}

// Map is an immutable hash map from K to V. The zero value is an empty map.
type Map[K comparable, V any] struct {
	root node[K, V]
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	if m.root == nil {
		return 0
	}
	return m.root.count()
}

// Get returns the value stored under k.
func (m Map[K, V]) Get(k K) (V, bool) {
	if m.root == nil {
		var zero V
		return zero, false
	}
	return m.root.get(hashOf(k), 0, k)
}

// Contains reports whether k is present.
func (m Map[K, V]) Contains(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// Assoc returns a map with k set to v, replacing any existing value.
func (m Map[K, V]) Assoc(k K, v V) Map[K, V] {
	return m.Merge(k, v, func(_, v V) V { return v })
}

// Merge returns a map with k set to v, or to resolve(existing, v) when k is
// already present.
func (m Map[K, V]) Merge(k K, v V, resolve func(old, val V) V) Map[K, V] {
	h := hashOf(k)
	if m.root == nil {
		return Map[K, V]{root: &leaf[K, V]{hash: h, key: k, val: v}}
	}
	return Map[K, V]{root: m.root.assoc(h, 0, k, v, resolve)}
}

// Without returns a map with k removed. Removing an absent key returns the
// receiver unchanged.
func (m Map[K, V]) Without(k K) Map[K, V] {
	if m.root == nil {
		return m
	}
	root := m.root.without(hashOf(k), 0, k)
	if root == m.root {
		return m
	}
	return Map[K, V]{root: root}
}

// All returns an iterator over all entries. The order is unspecified but
// stable for a given map value.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m.root != nil {
			m.root.all(yield)
		}
	}
}

// Keys returns an iterator over all keys in the same order as All.
func (m Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		if m.root != nil {
			m.root.all(func(k K, _ V) bool { return yield(k) })
		}
	}
}

// Union returns a map holding the entries of both m and o. For keys present
// in both, resolve picks the surviving value and receives m's value first.
// Subtrees present on only one side are shared with the result as-is.
func (m Map[K, V]) Union(o Map[K, V], resolve func(a, b V) V) Map[K, V] {
	return Map[K, V]{root: union(m.root, o.root, 0, resolve)}
}

// Diff returns a map with o's keys removed from m. For keys present in both,
// resolve receives m's value then o's and reports a replacement value and
// whether the key survives at all.
func (m Map[K, V]) Diff(o Map[K, V], resolve func(a, b V) (V, bool)) Map[K, V] {
	if m.root == nil || o.root == nil {
		return m
	}
	return Map[K, V]{root: diff(m.root, o.root, 0, resolve)}
}
