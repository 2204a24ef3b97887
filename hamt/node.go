package hamt

import "slices"

// node is one trie node. Implementations are *leaf (single entry, stored as
// high up as the trie allows), *bitmap (up to 32 children indexed by five
// hash bits), and *collision (entries whose full hashes are identical).
type node[K comparable, V any] interface {
	count() int
	get(h uint64, shift uint, k K) (V, bool)
	assoc(h uint64, shift uint, k K, v V, resolve func(old, val V) V) node[K, V]
	// without returns the receiver itself when k is absent and nil when the
	// subtree becomes empty.
	without(h uint64, shift uint, k K) node[K, V]
	all(yield func(K, V) bool) bool
}

type leaf[K comparable, V any] struct {
	hash uint64
	key  K
	val  V
}

func (l *leaf[K, V]) count() int { return 1 }

func (l *leaf[K, V]) get(h uint64, _ uint, k K) (V, bool) {
	if h == l.hash && k == l.key {
		return l.val, true
	}
	var zero V
	return zero, false
}

func (l *leaf[K, V]) assoc(h uint64, shift uint, k K, v V, resolve func(V, V) V) node[K, V] {
	if h == l.hash {
		if k == l.key {
			return &leaf[K, V]{hash: h, key: k, val: resolve(l.val, v)}
		}
		return &collision[K, V]{hash: h, entries: []entry[K, V]{{l.key, l.val}, {k, v}}}
	}
	return splitTwo(shift, l.hash, node[K, V](l), h, &leaf[K, V]{hash: h, key: k, val: v})
}

func (l *leaf[K, V]) without(h uint64, _ uint, k K) node[K, V] {
	if h == l.hash && k == l.key {
		return nil
	}
	return l
}

func (l *leaf[K, V]) all(yield func(K, V) bool) bool {
	return yield(l.key, l.val)
}

type entry[K comparable, V any] struct {
	key K
	val V
}

type collision[K comparable, V any] struct {
	hash    uint64
	entries []entry[K, V]
}

func (c *collision[K, V]) count() int { return len(c.entries) }

func (c *collision[K, V]) get(h uint64, _ uint, k K) (V, bool) {
	if h == c.hash {
		for _, e := range c.entries {
			if e.key == k {
				return e.val, true
			}
		}
	}
	var zero V
	return zero, false
}

func (c *collision[K, V]) assoc(h uint64, shift uint, k K, v V, resolve func(V, V) V) node[K, V] {
	if h != c.hash {
		return splitTwo(shift, c.hash, node[K, V](c), h, &leaf[K, V]{hash: h, key: k, val: v})
	}
	for i, e := range c.entries {
		if e.key == k {
			entries := slices.Clone(c.entries)
			entries[i] = entry[K, V]{key: k, val: resolve(e.val, v)}
			return &collision[K, V]{hash: h, entries: entries}
		}
	}
	entries := append(slices.Clone(c.entries), entry[K, V]{key: k, val: v})
	return &collision[K, V]{hash: h, entries: entries}
}

func (c *collision[K, V]) without(h uint64, _ uint, k K) node[K, V] {
	if h != c.hash {
		return c
	}
	for i, e := range c.entries {
		if e.key != k {
			continue
		}
		if len(c.entries) == 2 {
			rest := c.entries[1-i]
			return &leaf[K, V]{hash: h, key: rest.key, val: rest.val}
		}
		entries := make([]entry[K, V], 0, len(c.entries)-1)
		entries = append(entries, c.entries[:i]...)
		entries = append(entries, c.entries[i+1:]...)
		return &collision[K, V]{hash: h, entries: entries}
	}
	return c
}

func (c *collision[K, V]) all(yield func(K, V) bool) bool {
	for _, e := range c.entries {
		if !yield(e.key, e.val) {
			return false
		}
	}
	return true
}

type bitmap[K comparable, V any] struct {
	bm   uint32
	kids []node[K, V]
	n    int
}

func (b *bitmap[K, V]) count() int { return b.n }

// slot maps a child index (0..31) to its position in the packed kids slice.
func (b *bitmap[K, V]) slot(i uint) int {
	return popcount(b.bm & (1<<i - 1))
}

func (b *bitmap[K, V]) get(h uint64, shift uint, k K) (V, bool) {
	i := index(h, shift)
	if b.bm&(1<<i) == 0 {
		var zero V
		return zero, false
	}
	return b.kids[b.slot(i)].get(h, shift+bitsPerLevel, k)
}

func (b *bitmap[K, V]) assoc(h uint64, shift uint, k K, v V, resolve func(V, V) V) node[K, V] {
	i := index(h, shift)
	bit := uint32(1) << i
	s := b.slot(i)
	if b.bm&bit == 0 {
		kids := make([]node[K, V], len(b.kids)+1)
		copy(kids, b.kids[:s])
		kids[s] = &leaf[K, V]{hash: h, key: k, val: v}
		copy(kids[s+1:], b.kids[s:])
		return &bitmap[K, V]{bm: b.bm | bit, kids: kids, n: b.n + 1}
	}
	old := b.kids[s]
	child := old.assoc(h, shift+bitsPerLevel, k, v, resolve)
	kids := slices.Clone(b.kids)
	kids[s] = child
	return &bitmap[K, V]{bm: b.bm, kids: kids, n: b.n - old.count() + child.count()}
}

func (b *bitmap[K, V]) without(h uint64, shift uint, k K) node[K, V] {
	i := index(h, shift)
	bit := uint32(1) << i
	if b.bm&bit == 0 {
		return b
	}
	s := b.slot(i)
	old := b.kids[s]
	child := old.without(h, shift+bitsPerLevel, k)
	if child == old {
		return b
	}
	if child == nil {
		bm := b.bm &^ bit
		if bm == 0 {
			return nil
		}
		kids := make([]node[K, V], 0, len(b.kids)-1)
		kids = append(kids, b.kids[:s]...)
		kids = append(kids, b.kids[s+1:]...)
		return collapse(&bitmap[K, V]{bm: bm, kids: kids, n: b.n - 1})
	}
	kids := slices.Clone(b.kids)
	kids[s] = child
	return collapse(&bitmap[K, V]{bm: b.bm, kids: kids, n: b.n - 1})
}

func (b *bitmap[K, V]) all(yield func(K, V) bool) bool {
	for _, kid := range b.kids {
		if !kid.all(yield) {
			return false
		}
	}
	return true
}

// collapse compresses a single-child spine so removals keep the trie in the
// same canonical shape insertion builds.
func collapse[K comparable, V any](b *bitmap[K, V]) node[K, V] {
	if len(b.kids) == 1 {
		if _, ok := b.kids[0].(*bitmap[K, V]); !ok {
			return b.kids[0]
		}
	}
	return b
}

// splitTwo branches two nodes whose hashes differ somewhere at or below the
// given shift. Hashes are 64 bits and shift grows by five per level, so the
// recursion always terminates before the hash is exhausted.
func splitTwo[K comparable, V any](shift uint, ha uint64, a node[K, V], hb uint64, b node[K, V]) node[K, V] {
	ia, ib := index(ha, shift), index(hb, shift)
	if ia == ib {
		child := splitTwo(shift+bitsPerLevel, ha, a, hb, b)
		return &bitmap[K, V]{bm: 1 << ia, kids: []node[K, V]{child}, n: child.count()}
	}
	n := a.count() + b.count()
	if ia < ib {
		return &bitmap[K, V]{bm: 1<<ia | 1<<ib, kids: []node[K, V]{a, b}, n: n}
	}
	return &bitmap[K, V]{bm: 1<<ia | 1<<ib, kids: []node[K, V]{b, a}, n: n}
}
