package combined_test

import (
	"math/rand/v2"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/randomizedcoder/ringqueue/internal/queue"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkAny any
var sinkBool bool
var sinkInt int

// ============================================================================
// Single goroutine: push then pop
// ============================================================================

// BenchmarkPushPop_Channel - baseline buffered channel
func BenchmarkPushPop_Channel(b *testing.B) {
	ch := make(chan string, 1024)
	b.ReportAllocs()
	b.ResetTimer()

	var v string
	for i := 0; i < b.N; i++ {
		ch <- "v"
		v = <-ch
	}
	sinkAny = v
}

// BenchmarkPushPop_RingQueue - insert at tail, remove from head, release
func BenchmarkPushPop_RingQueue(b *testing.B) {
	q := queue.New()
	defer q.Free()
	b.ReportAllocs()
	b.ResetTimer()

	var e *queue.Element
	for i := 0; i < b.N; i++ {
		q.InsertTail("v")
		e = q.RemoveHead(nil)
		e.Release()
	}
	sinkAny = e
}

// BenchmarkPushPop_ShardedRing1 - go-lock-free-ring with 1 shard
func BenchmarkPushPop_ShardedRing1(b *testing.B) {
	r, err := ring.NewShardedRing(1024, 1)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	var ok bool
	for i := 0; i < b.N; i++ {
		ok = r.Write(0, "v")
		r.TryRead()
	}
	sinkBool = ok
}

// ============================================================================
// Whole-queue algorithms
// ============================================================================

func randomQueue(b *testing.B, n int) *queue.Queue {
	b.Helper()
	r := rand.New(rand.NewPCG(1, 2))
	q := queue.New(queue.WithRand(r))
	for i := 0; i < n; i++ {
		if !q.InsertTail(strconv.Itoa(r.IntN(n * 10))) {
			b.Fatal("insert failed")
		}
	}
	return q
}

func BenchmarkSort(b *testing.B) {
	for _, n := range []int{64, 1024, 16384} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			q := randomQueue(b, n)
			defer q.Free()
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				b.StopTimer()
				q.Shuffle()
				b.StartTimer()
				q.Sort()
			}
			sinkBool = q.Sorted()
		})
	}
}

func BenchmarkShuffle(b *testing.B) {
	for _, n := range []int{64, 1024} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			q := randomQueue(b, n)
			defer q.Free()
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				q.Shuffle()
			}
			sinkInt = q.Size()
		})
	}
}

func BenchmarkReverse(b *testing.B) {
	q := randomQueue(b, 1024)
	defer q.Free()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		q.Reverse()
	}
	sinkInt = q.Size()
}

func BenchmarkSwap(b *testing.B) {
	q := randomQueue(b, 1024)
	defer q.Free()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		q.Swap()
	}
	sinkInt = q.Size()
}

func BenchmarkSize(b *testing.B) {
	q := randomQueue(b, 1024)
	defer q.Free()
	b.ReportAllocs()
	b.ResetTimer()

	var n int
	for i := 0; i < b.N; i++ {
		n = q.Size()
	}
	sinkInt = n
}

// ============================================================================
// MPSC: 4 Producers → 1 Consumer
// ============================================================================

// lockedQueue serialises access to a ring queue.
type lockedQueue struct {
	mu sync.Mutex
	q  *queue.Queue
}

func (l *lockedQueue) push(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.InsertTail(s)
}

func (l *lockedQueue) pop() bool {
	l.mu.Lock()
	e := l.q.RemoveHead(nil)
	l.mu.Unlock()
	if e == nil {
		return false
	}
	e.Release()
	return true
}

// BenchmarkMPSC_LockedRingQueue_4P - 4 producers sharing a mutex-guarded queue
func BenchmarkMPSC_LockedRingQueue_4P(b *testing.B) {
	lq := &lockedQueue{q: queue.New()}
	defer lq.q.Free()
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				lq.pop()
			}
		}
	}()

	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			lq.push("v")
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

// BenchmarkMPSC_ShardedRing_4P_4S - 4 producers, 4 shards
func BenchmarkMPSC_ShardedRing_4P_4S(b *testing.B) {
	r, err := ring.NewShardedRing(1024, 4)
	if err != nil {
		b.Fatal(err)
	}
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				r.TryRead()
			}
		}
	}()

	var producerID atomic.Uint64
	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		pid := producerID.Add(1) - 1
		for pb.Next() {
			for !r.Write(pid, "v") {
			}
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}
