// Package harness accounts for the allocations made by a queue and can
// inject allocation failures.
//
// Tracker implements queue.Allocator. It counts live blocks and bytes so a
// test or the interactive tester can prove that every removed element was
// released and that a failed insertion left nothing behind.
package harness

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrLeak is returned by Check when blocks are still allocated.
var ErrLeak = errors.New("harness: allocated blocks remain")

// ErrDoubleFree is recorded when Free is called with nothing allocated.
var ErrDoubleFree = errors.New("harness: free without matching alloc")

// Source supplies uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// Tracker counts allocations and optionally refuses some of them.
//
// Not safe for concurrent use.
type Tracker struct {
	rand        Source
	failPercent int
	armed       bool

	blocks   int
	bytes    int
	failures int
	err      error
}

// New creates a Tracker that fails failPercent percent of allocations once
// armed. A nil source uses the math/rand/v2 global source.
func New(failPercent int, src Source) *Tracker {
	if src == nil {
		src = globalSource{}
	}
	t := &Tracker{rand: src}
	t.SetFailPercent(failPercent)
	return t
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// SetFailPercent sets the failure rate, clamped to [0, 100].
func (t *Tracker) SetFailPercent(p int) {
	t.failPercent = min(max(p, 0), 100)
}

// FailPercent returns the current failure rate.
func (t *Tracker) FailPercent() int {
	return t.failPercent
}

// Arm enables fault injection.
func (t *Tracker) Arm() {
	t.armed = true
}

// Disarm disables fault injection; every allocation succeeds.
func (t *Tracker) Disarm() {
	t.armed = false
}

// Alloc records an allocation of size bytes unless a fault is injected.
func (t *Tracker) Alloc(size int) bool {
	if t.armed && t.failPercent > 0 && t.rand.IntN(100) < t.failPercent {
		t.failures++
		return false
	}
	t.blocks++
	t.bytes += size
	return true
}

// Free records the release of size bytes.
func (t *Tracker) Free(size int) {
	if t.blocks == 0 {
		t.err = ErrDoubleFree
		return
	}
	t.blocks--
	t.bytes -= size
}

// Allocated returns the number of live blocks.
func (t *Tracker) Allocated() int {
	return t.blocks
}

// Bytes returns the number of live bytes.
func (t *Tracker) Bytes() int {
	return t.bytes
}

// Failures returns how many allocations were refused.
func (t *Tracker) Failures() int {
	return t.failures
}

// Err returns the first accounting error seen, if any.
func (t *Tracker) Err() error {
	return t.err
}

// Check returns an error if any block is still allocated or an accounting
// error was recorded.
func (t *Tracker) Check() error {
	if t.err != nil {
		return t.err
	}
	if t.blocks != 0 {
		return fmt.Errorf("%w: %d blocks, %d bytes", ErrLeak, t.blocks, t.bytes)
	}
	return nil
}
