// Package console implements the line-oriented queue tester used by
// cmd/qtest.
//
// Each input line is a command followed by space-separated arguments, for
// example:
//
//	new
//	it bob
//	it alice
//	sort
//	rh alice
//	free
//
// Commands that change the queue re-verify the ring and print it. Failures
// are printed as "ERROR: ..." lines, logged, and counted; Run reports an
// error when any command failed so scripted traces can gate CI.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/randomizedcoder/ringqueue/internal/config"
	"github.com/randomizedcoder/ringqueue/internal/harness"
	"github.com/randomizedcoder/ringqueue/internal/queue"
)

var (
	// ErrFailed is returned by Run when at least one command failed.
	ErrFailed = errors.New("console: commands failed")
	// ErrUnknownCommand is reported for a name with no handler.
	ErrUnknownCommand = errors.New("console: unknown command")
	// ErrUsage is reported for malformed arguments.
	ErrUsage = errors.New("console: bad arguments")
	// ErrNoQueue is reported when a command needs a queue and there is none.
	ErrNoQueue = errors.New("console: no queue, run new first")
	// ErrMismatch is reported when a removed value differs from the expected one.
	ErrMismatch = errors.New("console: unexpected value")
	// ErrInvariant is reported when a post-condition does not hold.
	ErrInvariant = errors.New("console: invariant violated")
)

const (
	maxShow        = 50
	maxSourceDepth = 8
)

// Console holds one queue and the allocation tracker behind it.
//
// Not safe for concurrent use.
type Console struct {
	out     io.Writer
	log     *zap.Logger
	cfg     config.Config
	rand    *rand.Rand
	tracker *harness.Tracker
	q       *queue.Queue
	cmds    map[string]command

	errors int
	quit   bool
	depth  int
}

// New creates a Console writing results to out. cfg is copied; a nil cfg
// uses config.Default. A nil logger disables logging.
func New(cfg *config.Config, out io.Writer, lg *zap.Logger) *Console {
	if cfg == nil {
		cfg = config.Default()
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	c := &Console{
		out:     out,
		log:     lg,
		cfg:     *cfg,
		rand:    r,
		tracker: harness.New(cfg.FailPercent, r),
	}
	c.cmds = commands()
	lg.Info("console ready",
		zap.Uint64("seed", seed),
		zap.Int("failPercent", cfg.FailPercent),
		zap.Int("stringLength", cfg.StringLength))
	return c
}

// Errors returns the number of failed commands so far.
func (c *Console) Errors() int {
	return c.errors
}

// Queue returns the current queue, nil before new or after free.
func (c *Console) Queue() *queue.Queue {
	return c.q
}

// Run executes every line from r until EOF or quit.
func (c *Console) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for !c.quit && sc.Scan() {
		c.Exec(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("console: read: %w", err)
	}
	if c.depth == 0 && c.errors > 0 {
		return fmt.Errorf("%w: %d errors", ErrFailed, c.errors)
	}
	return nil
}

// Exec runs one command line. Blank lines and lines starting with # are
// ignored. The returned error is also printed and counted.
func (c *Console) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	if c.cfg.Echo {
		c.printf("cmd> %s\n", line)
	}

	args := strings.Fields(line)
	cmd, ok := c.cmds[args[0]]
	if !ok {
		return c.fail(args[0], fmt.Errorf("%w: %s", ErrUnknownCommand, args[0]))
	}

	c.log.Debug("exec", zap.String("cmd", args[0]), zap.Strings("args", args[1:]))
	start := time.Now()
	err := cmd.run(c, args[1:])
	c.log.Debug("done", zap.String("cmd", args[0]), zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		return c.fail(args[0], err)
	}
	return nil
}

// Close frees the queue, if any, and reports leaked allocations.
func (c *Console) Close() error {
	if c.q == nil {
		return nil
	}
	c.q.Free()
	c.q = nil
	if err := c.tracker.Check(); err != nil {
		c.log.Error("leak on close", zap.Error(err))
		return err
	}
	return nil
}

func (c *Console) fail(name string, err error) error {
	c.errors++
	c.log.Warn("command failed", zap.String("cmd", name), zap.Error(err))
	c.printf("ERROR: %v\n", err)
	return err
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// show prints the queue as "l = [a b c]".
func (c *Console) show() {
	if c.q == nil {
		c.printf("l = NULL\n")
		return
	}

	var b strings.Builder
	b.WriteString("l = [")
	i := 0
	for e := c.q.Front(); e != nil; e = e.Next() {
		if i == maxShow {
			b.WriteString(" ...")
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.Value)
		i++
	}
	b.WriteString("]\n")
	c.printf("%s", b.String())
}

// verify checks the ring and the allocation accounting after a mutation.
func (c *Console) verify() error {
	n, err := c.q.Verify()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariant, err)
	}
	if size := c.q.Size(); size != n {
		return fmt.Errorf("%w: size %d, ring holds %d", ErrInvariant, size, n)
	}
	// Queue block plus an element and a string per entry.
	if want := 1 + 2*n; c.tracker.Allocated() != want {
		return fmt.Errorf("%w: %d blocks allocated, want %d", ErrInvariant, c.tracker.Allocated(), want)
	}
	return c.tracker.Err()
}

func (c *Console) randomString() string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	n := 5 + c.rand.IntN(6)
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[c.rand.IntN(len(letters))]
	}
	return string(b)
}
