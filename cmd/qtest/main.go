// Command qtest drives a ring queue from a command script or stdin.
//
// Usage:
//
//	go run ./cmd/qtest -f traces/sort.cmd
//	go run ./cmd/qtest -config qtest.toml -fail 5 -seed 42
//
// Type help at the prompt for the command list.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/randomizedcoder/ringqueue/internal/config"
	"github.com/randomizedcoder/ringqueue/internal/console"
	"github.com/randomizedcoder/ringqueue/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "TOML config file")
	file := flag.String("f", "", "command file (default stdin)")
	echo := flag.Bool("v", false, "echo commands")
	fail := flag.Int("fail", -1, "allocation failure percent (overrides config)")
	seed := flag.Uint64("seed", 0, "random seed (overrides config)")
	logDir := flag.String("logdir", "", "log directory (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}
	if *echo {
		cfg.Echo = true
	}
	if *fail >= 0 {
		cfg.FailPercent = *fail
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *logDir != "" {
		cfg.Log.Dir = *logDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger.InitLogger(logger.New(cfg.Log))
	lg := logger.GetLogger()
	defer lg.Sync()

	var in io.Reader = os.Stdin
	source := "stdin"
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		defer f.Close()
		in = f
		source = *file
	}
	logger.GetSugar().Infof("qtest reading commands from %s", source)

	c := console.New(cfg, os.Stdout, lg)
	err := c.Run(in)
	if cerr := c.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		lg.Error("qtest finished with errors", zap.Int("errors", c.Errors()), zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
