// Package combined provides benchmarks that put the ring queue next to other
// queue implementations.
//
// The ring queue is single-threaded, so the multi-goroutine benchmarks guard
// it with a mutex, which is what a caller sharing a queue has to do. The
// comparison points are a buffered channel and the sharded lock-free ring
// from github.com/randomizedcoder/go-lock-free-ring.
package combined
