package queue

import "math/rand/v2"

// Allocator accounts for the memory a queue takes. Alloc reports whether an
// allocation of size bytes may proceed; Free returns it.
type Allocator interface {
	Alloc(size int) bool
	Free(size int)
}

// Source supplies uniform integers in [0, n) for Shuffle.
type Source interface {
	IntN(n int) int
}

type heapAllocator struct{}

func (heapAllocator) Alloc(int) bool { return true }
func (heapAllocator) Free(int)       {}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

type options struct {
	alloc Allocator
	rand  Source
}

func defaultOptions() options {
	return options{
		alloc: heapAllocator{},
		rand:  globalSource{},
	}
}

// Option configures a Queue.
type Option func(*options)

// WithAllocator routes the queue's allocations through a.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithRand sets the random source used by Shuffle. *rand.Rand from
// math/rand/v2 satisfies Source.
func WithRand(r Source) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}
