package hamt

import "math/bits"

func popcount(v uint32) int {
	return bits.OnesCount32(v)
}

// union merges two subtrees rooted at the same depth. Leaves and collision
// chains are point-inserted into the other side; two bitmap nodes merge
// structurally, handing one-sided children to the result without copying.
// resolve always receives a's value on the left.
func union[K comparable, V any](a, b node[K, V], shift uint, resolve func(V, V) V) node[K, V] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	switch bn := b.(type) {
	case *leaf[K, V]:
		return a.assoc(bn.hash, shift, bn.key, bn.val, resolve)
	case *collision[K, V]:
		out := a
		for _, e := range bn.entries {
			out = out.assoc(bn.hash, shift, e.key, e.val, resolve)
		}
		return out
	}
	flipped := func(old, val V) V { return resolve(val, old) }
	switch an := a.(type) {
	case *leaf[K, V]:
		return b.assoc(an.hash, shift, an.key, an.val, flipped)
	case *collision[K, V]:
		out := b
		for _, e := range an.entries {
			out = out.assoc(an.hash, shift, e.key, e.val, flipped)
		}
		return out
	}
	ab, bb := a.(*bitmap[K, V]), b.(*bitmap[K, V])
	bm := ab.bm | bb.bm
	kids := make([]node[K, V], 0, popcount(bm))
	n := 0
	for rest := bm; rest != 0; rest &= rest - 1 {
		i := uint(bits.TrailingZeros32(rest))
		bit := uint32(1) << i
		var child node[K, V]
		switch {
		case ab.bm&bit != 0 && bb.bm&bit != 0:
			child = union(ab.kids[ab.slot(i)], bb.kids[bb.slot(i)], shift+bitsPerLevel, resolve)
		case ab.bm&bit != 0:
			child = ab.kids[ab.slot(i)]
		default:
			child = bb.kids[bb.slot(i)]
		}
		kids = append(kids, child)
		n += child.count()
	}
	return &bitmap[K, V]{bm: bm, kids: kids, n: n}
}

// diff removes b's keys from the subtree a. resolve receives a's value then
// b's for each common key and reports whether (and with what value) the key
// survives. Returns a itself when nothing changed and nil when a empties.
func diff[K comparable, V any](a, b node[K, V], shift uint, resolve func(V, V) (V, bool)) node[K, V] {
	if a == nil || b == nil {
		return a
	}
	switch bn := b.(type) {
	case *leaf[K, V]:
		return diffOne(a, shift, bn.hash, bn.key, bn.val, resolve)
	case *collision[K, V]:
		out := a
		for _, e := range bn.entries {
			out = diffOne(out, shift, bn.hash, e.key, e.val, resolve)
			if out == nil {
				return nil
			}
		}
		return out
	}
	switch an := a.(type) {
	case *leaf[K, V]:
		bv, ok := b.get(an.hash, shift, an.key)
		if !ok {
			return a
		}
		v, keep := resolve(an.val, bv)
		if !keep {
			return nil
		}
		return &leaf[K, V]{hash: an.hash, key: an.key, val: v}
	case *collision[K, V]:
		kept := make([]entry[K, V], 0, len(an.entries))
		touched := false
		for _, e := range an.entries {
			bv, ok := b.get(an.hash, shift, e.key)
			if !ok {
				kept = append(kept, e)
				continue
			}
			touched = true
			if v, keep := resolve(e.val, bv); keep {
				kept = append(kept, entry[K, V]{key: e.key, val: v})
			}
		}
		switch {
		case !touched:
			return a
		case len(kept) == 0:
			return nil
		case len(kept) == 1:
			return &leaf[K, V]{hash: an.hash, key: kept[0].key, val: kept[0].val}
		default:
			return &collision[K, V]{hash: an.hash, entries: kept}
		}
	}
	ab, bb := a.(*bitmap[K, V]), b.(*bitmap[K, V])
	kids := make([]node[K, V], 0, len(ab.kids))
	var bm uint32
	n := 0
	changed := false
	for rest := ab.bm; rest != 0; rest &= rest - 1 {
		i := uint(bits.TrailingZeros32(rest))
		bit := uint32(1) << i
		child := ab.kids[ab.slot(i)]
		if bb.bm&bit != 0 {
			next := diff(child, bb.kids[bb.slot(i)], shift+bitsPerLevel, resolve)
			if next != child {
				changed = true
			}
			child = next
		}
		if child == nil {
			continue
		}
		bm |= bit
		kids = append(kids, child)
		n += child.count()
	}
	if !changed {
		return a
	}
	if bm == 0 {
		return nil
	}
	return collapse(&bitmap[K, V]{bm: bm, kids: kids, n: n})
}

// diffOne applies the diff policy for a single key against the subtree a.
func diffOne[K comparable, V any](a node[K, V], shift uint, h uint64, k K, bv V, resolve func(V, V) (V, bool)) node[K, V] {
	av, ok := a.get(h, shift, k)
	if !ok {
		return a
	}
	if v, keep := resolve(av, bv); keep {
		return a.assoc(h, shift, k, v, func(_, val V) V { return val })
	}
	return a.without(h, shift, k)
}
