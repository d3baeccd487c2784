// Command bench measures ring queue operations against a buffered channel.
//
// Usage:
//
//	go run ./cmd/bench -n 10000000 -size 1024
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/randomizedcoder/ringqueue/internal/logger"
	"github.com/randomizedcoder/ringqueue/internal/queue"
)

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	size := flag.Int("size", 1024, "queue length for sort/shuffle")
	verbose := flag.Bool("v", false, "log progress to stderr")
	flag.Parse()
	if *iterations < 1 {
		*iterations = 1
	}
	if *size < 1 {
		*size = 1
	}

	lg := logger.New(logger.Config{Level: "debug", Stdout: *verbose})
	defer lg.Sync()

	fmt.Printf("Benchmarking ring queue (%d iterations, size=%d)\n", *iterations, *size)
	fmt.Println("─────────────────────────────────────────────────")

	// Channel baseline
	ch := make(chan string, 1)
	start := time.Now()
	for i := 0; i < *iterations; i++ {
		ch <- "v"
		<-ch
	}
	chDur := time.Since(start)
	lg.Debug("channel done", zap.Duration("elapsed", chDur))

	// Ring queue: insert at tail, remove from head
	q := queue.New()
	start = time.Now()
	for i := 0; i < *iterations; i++ {
		q.InsertTail("v")
		q.RemoveHead(nil).Release()
	}
	ringDur := time.Since(start)
	lg.Debug("ring done", zap.Duration("elapsed", ringDur))

	// Sort and shuffle over size random strings
	r := rand.New(rand.NewPCG(1, 2))
	sq := queue.New(queue.WithRand(r))
	for i := 0; i < *size; i++ {
		sq.InsertTail(strconv.Itoa(r.IntN(*size * 10)))
	}
	rounds := max(*iterations / *size / 10, 1)

	start = time.Now()
	for i := 0; i < rounds; i++ {
		sq.Shuffle()
	}
	shuffleDur := time.Since(start)

	var sortDur time.Duration
	for i := 0; i < rounds; i++ {
		sq.Shuffle()
		start = time.Now()
		sq.Sort()
		sortDur += time.Since(start)
	}
	lg.Debug("sort/shuffle done", zap.Int("rounds", rounds))
	sq.Free()
	q.Free()

	// Results
	chPerOp := float64(chDur.Nanoseconds()) / float64(*iterations)
	ringPerOp := float64(ringDur.Nanoseconds()) / float64(*iterations)

	fmt.Printf("\nResults (insert + remove per iteration):\n")
	fmt.Printf("  Channel:     %v (%.2f ns/op)\n", chDur, chPerOp)
	fmt.Printf("  RingQueue:   %v (%.2f ns/op)\n", ringDur, ringPerOp)

	if ringPerOp < chPerOp {
		fmt.Printf("\n  Speedup:  %.2fx (RingQueue faster)\n", chPerOp/ringPerOp)
	} else {
		fmt.Printf("\n  Speedup:  %.2fx (Channel faster)\n", ringPerOp/chPerOp)
	}

	fmt.Printf("\nWhole-queue operations (%d elements, %d rounds):\n", *size, rounds)
	fmt.Printf("  Shuffle:     %v per round\n", shuffleDur/time.Duration(rounds))
	fmt.Printf("  Sort:        %v per round\n", sortDur/time.Duration(rounds))

	fmt.Printf("\nThroughput (theoretical max):\n")
	fmt.Printf("  Channel:     %.2f M ops/sec\n", 1000/chPerOp)
	fmt.Printf("  RingQueue:   %.2f M ops/sec\n", 1000/ringPerOp)
}
