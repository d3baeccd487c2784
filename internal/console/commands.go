package console

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/randomizedcoder/ringqueue/internal/queue"
)

type command struct {
	run   func(c *Console, args []string) error
	usage string
	help  string
}

func commands() map[string]command {
	return map[string]command{
		"new":     {run: (*Console).doNew, usage: "new", help: "Create a new queue"},
		"free":    {run: (*Console).doFree, usage: "free", help: "Delete the queue"},
		"ih":      {run: insertCmd(true), usage: "ih str [n]", help: "Insert str at head n times (RAND for a random string)"},
		"it":      {run: insertCmd(false), usage: "it str [n]", help: "Insert str at tail n times (RAND for a random string)"},
		"rh":      {run: removeCmd(true), usage: "rh [str]", help: "Remove from head, optionally comparing with str"},
		"rt":      {run: removeCmd(false), usage: "rt [str]", help: "Remove from tail, optionally comparing with str"},
		"size":    {run: (*Console).doSize, usage: "size [n]", help: "Count elements, n times"},
		"dm":      {run: (*Console).doDeleteMid, usage: "dm", help: "Delete the middle element"},
		"dedup":   {run: (*Console).doDedup, usage: "dedup", help: "Delete every duplicated value (queue must be sorted)"},
		"swap":    {run: mutateCmd((*queue.Queue).Swap), usage: "swap", help: "Swap every two adjacent elements"},
		"reverse": {run: mutateCmd((*queue.Queue).Reverse), usage: "reverse", help: "Reverse the queue"},
		"sort":    {run: (*Console).doSort, usage: "sort", help: "Sort the queue ascending"},
		"shuffle": {run: mutateCmd((*queue.Queue).Shuffle), usage: "shuffle", help: "Shuffle the queue"},
		"show":    {run: (*Console).doShow, usage: "show", help: "Print the queue"},
		"option":  {run: (*Console).doOption, usage: "option [name value]", help: "Show or set fail, echo, length"},
		"source":  {run: (*Console).doSource, usage: "source file", help: "Run commands from file"},
		"help":    {run: (*Console).doHelp, usage: "help", help: "Show this text"},
		"quit":    {run: (*Console).doQuit, usage: "quit", help: "Exit"},
	}
}

func (c *Console) needQueue() error {
	if c.q == nil {
		return ErrNoQueue
	}
	return nil
}

func (c *Console) doNew(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: new takes no arguments", ErrUsage)
	}
	if c.q != nil {
		if err := c.doFree(nil); err != nil {
			return err
		}
	}

	c.tracker.Arm()
	q := queue.New(queue.WithAllocator(c.tracker), queue.WithRand(c.rand))
	c.tracker.Disarm()
	if q == nil {
		c.show()
		return queue.ErrAllocation
	}
	c.q = q
	c.show()
	return nil
}

func (c *Console) doFree(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: free takes no arguments", ErrUsage)
	}
	if c.q != nil {
		c.q.Free()
		c.q = nil
	}
	c.show()
	if err := c.tracker.Check(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariant, err)
	}
	return nil
}

// count parses the optional repeat argument at args[i].
func count(args []string, i int) (int, error) {
	if len(args) <= i {
		return 1, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: invalid count %q", ErrUsage, args[i])
	}
	return n, nil
}

func insertCmd(head bool) func(c *Console, args []string) error {
	return func(c *Console, args []string) error {
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("%w: need a string and an optional count", ErrUsage)
		}
		n, err := count(args, 1)
		if err != nil {
			return err
		}
		if err := c.needQueue(); err != nil {
			return err
		}

		insert := c.q.InsertTail
		if head {
			insert = c.q.InsertHead
		}
		for i := 0; i < n; i++ {
			s := args[0]
			if s == "RAND" {
				s = c.randomString()
			}
			c.tracker.Arm()
			ok := insert(s)
			c.tracker.Disarm()
			if !ok {
				if c.tracker.FailPercent() == 0 {
					return fmt.Errorf("insert %q: %w", s, queue.ErrAllocation)
				}
				c.log.Info("injected allocation failure", zap.String("value", s))
				c.printf("WARNING: allocation failed inserting %s\n", s)
			}
		}
		if err := c.verify(); err != nil {
			return err
		}
		c.show()
		return nil
	}
}

func removeCmd(head bool) func(c *Console, args []string) error {
	return func(c *Console, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("%w: at most one expected string", ErrUsage)
		}
		if err := c.needQueue(); err != nil {
			return err
		}

		buf := make([]byte, c.cfg.StringLength)
		var e *queue.Element
		if head {
			e = c.q.RemoveHead(buf)
		} else {
			e = c.q.RemoveTail(buf)
		}
		if e == nil {
			return queue.ErrEmpty
		}

		got := string(buf[:bytes.IndexByte(buf, 0)])
		e.Release()
		c.printf("Removed %s from queue\n", got)

		if len(args) == 1 && got != args[0] {
			return fmt.Errorf("%w: removed %q, expected %q", ErrMismatch, got, args[0])
		}
		if err := c.verify(); err != nil {
			return err
		}
		c.show()
		return nil
	}
}

func (c *Console) doSize(args []string) error {
	n, err := count(args, 0)
	if err != nil {
		return err
	}
	if err := c.needQueue(); err != nil {
		return err
	}

	size := 0
	for i := 0; i < n; i++ {
		size = c.q.Size()
	}
	c.printf("Queue size = %d\n", size)
	return c.verify()
}

func (c *Console) doDeleteMid(args []string) error {
	if err := c.needQueue(); err != nil {
		return err
	}
	if !c.q.DeleteMid() {
		return queue.ErrEmpty
	}
	if err := c.verify(); err != nil {
		return err
	}
	c.show()
	return nil
}

func (c *Console) doDedup(args []string) error {
	if err := c.needQueue(); err != nil {
		return err
	}
	if !c.q.Sorted() {
		c.printf("WARNING: queue is not sorted, only adjacent duplicates are removed\n")
	}

	before := c.q.Values()
	c.q.DeleteDup()
	if err := c.verify(); err != nil {
		return err
	}
	if !c.q.Distinct() {
		return fmt.Errorf("%w: duplicates remain after dedup", ErrInvariant)
	}
	if !isSubsequence(c.q.Values(), before) {
		return fmt.Errorf("%w: dedup reordered the queue", ErrInvariant)
	}
	c.show()
	return nil
}

func isSubsequence(sub, full []string) bool {
	i := 0
	for _, v := range full {
		if i < len(sub) && sub[i] == v {
			i++
		}
	}
	return i == len(sub)
}

func (c *Console) doSort(args []string) error {
	if err := c.needQueue(); err != nil {
		return err
	}
	before := c.q.Values()
	c.q.Sort()
	if err := c.verify(); err != nil {
		return err
	}
	if !c.q.Sorted() {
		return fmt.Errorf("%w: queue not sorted", ErrInvariant)
	}
	slices.Sort(before)
	if !slices.Equal(before, c.q.Values()) {
		return fmt.Errorf("%w: sort changed the values", ErrInvariant)
	}
	c.show()
	return nil
}

func mutateCmd(op func(*queue.Queue)) func(c *Console, args []string) error {
	return func(c *Console, args []string) error {
		if err := c.needQueue(); err != nil {
			return err
		}
		op(c.q)
		if err := c.verify(); err != nil {
			return err
		}
		c.show()
		return nil
	}
}

func (c *Console) doShow(args []string) error {
	c.show()
	if c.q == nil {
		return nil
	}
	return c.verify()
}

func (c *Console) doOption(args []string) error {
	switch len(args) {
	case 0:
		c.printf("echo\t%t\n", c.cfg.Echo)
		c.printf("fail\t%d\n", c.tracker.FailPercent())
		c.printf("length\t%d\n", c.cfg.StringLength)
		return nil
	case 2:
	default:
		return fmt.Errorf("%w: option name value", ErrUsage)
	}

	v, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: option %s: %q is not a number", ErrUsage, args[0], args[1])
	}
	switch args[0] {
	case "echo":
		c.cfg.Echo = v != 0
	case "fail":
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: fail must be in [0,100]", ErrUsage)
		}
		c.tracker.SetFailPercent(v)
	case "length":
		if v < 1 {
			return fmt.Errorf("%w: length must be positive", ErrUsage)
		}
		c.cfg.StringLength = v
	default:
		return fmt.Errorf("%w: unknown option %s", ErrUsage, args[0])
	}
	c.log.Info("option set", zap.String("name", args[0]), zap.Int("value", v))
	return nil
}

func (c *Console) doSource(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: source file", ErrUsage)
	}
	if c.depth >= maxSourceDepth {
		return fmt.Errorf("%w: source nested deeper than %d", ErrUsage, maxSourceDepth)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	defer f.Close()

	c.depth++
	defer func() { c.depth-- }()
	return c.Run(f)
}

func (c *Console) doHelp(args []string) error {
	names := make([]string, 0, len(c.cmds))
	for name := range c.cmds {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		cmd := c.cmds[name]
		c.printf("  %-20s | %s\n", cmd.usage, cmd.help)
	}
	return nil
}

func (c *Console) doQuit(args []string) error {
	c.quit = true
	return nil
}
