package persistent

import (
	"errors"
	"iter"
	"sync"

	"github.com/zircuit-labs/zkr-go-common/calm"
	"github.com/zircuit-labs/zkr-go-common/xerrors/stacktrace"
)

// ErrProducerFault indicates that the element producer behind a lazy
// collection failed while being consumed.
var ErrProducerFault = errors.New("producer fault")

// Lazy defers building a collection from an element producer until the
// value is first needed. Realization happens at most once: the first
// successful Get caches the collection and releases the producer. If the
// producer faults, the fault is returned and the Lazy stays unrealized, so
// a later Get drives the producer again.
type Lazy[T comparable, C Collection[T, C]] struct {
	mu       sync.Mutex
	producer iter.Seq2[T, error]
	reducer  Reducer[T, C]
	value    C
	realized bool
}

// Get realizes the collection, returning the cached value on later calls.
// A panic inside the producer is captured and returned as an error; an
// error yielded by the producer aborts realization and is wrapped with
// ErrProducerFault.
func (l *Lazy[T, C]) Get() (C, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.realized {
		return l.value, nil
	}

	var out C
	err := calm.Unpanic(func() error {
		acc := l.reducer.Empty()
		for v, err := range l.producer {
			if err != nil {
				return stacktrace.Wrap(errors.Join(ErrProducerFault, err))
			}
			acc = l.reducer.Combine(acc, l.reducer.Lift(v))
		}
		out = acc
		return nil
	})
	if err != nil {
		var zero C
		return zero, err
	}

	l.value = out
	l.realized = true
	l.producer = nil
	return out, nil
}

// MustGet is Get for producers known not to fault. It panics on error.
func (l *Lazy[T, C]) MustGet() C {
	c, err := l.Get()
	if err != nil {
		panic(err)
	}
	return c
}

// Size realizes the collection and reports its element count.
func (l *Lazy[T, C]) Size() (int, error) {
	c, err := l.Get()
	if err != nil {
		return 0, err
	}
	return c.Size(), nil
}

// Members realizes the collection and returns its elements as a slice.
func (l *Lazy[T, C]) Members() ([]T, error) {
	c, err := l.Get()
	if err != nil {
		return nil, err
	}
	return c.Members(), nil
}

// Realized reports whether the collection has been built, without
// triggering realization.
func (l *Lazy[T, C]) Realized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.realized
}
