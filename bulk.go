package persistent

// rep identifies the backing structure of a collection. It exists solely so
// bulk operations can choose between a native batch primitive and the
// element-wise fallback; it never affects observable behaviour.
type rep uint8

const (
	repNone rep = iota
	repHashSet
	repHashBag
	repConsStack
)

type tagged interface {
	rep() rep
}

// narrow views other as the receiver's own representation. A false result is
// not an error: mismatched operands simply take the element-wise path.
func narrow[T comparable, C tagged](recv C, other Iterable[T]) (C, bool) {
	o, ok := any(other).(C)
	if !ok || o.rep() != recv.rep() {
		var zero C
		return zero, false
	}
	return o, true
}

// eachInto applies op for every element of other in encounter order. This is
// the fallback for bulk operations whose operands share no representation;
// an empty other hands the receiver back as-is.
func eachInto[T comparable, C any](recv C, other Iterable[T], op func(C, T) C) C {
	out := recv
	for v := range other.Iter() {
		out = op(out, v)
	}
	return out
}
