package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/lifecore/model"
)

func main() {
	flags := parseFlags()
	logger := newLogger(flags.verbose)

	config, err := loadConfig(flags)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	engine, err := buildEngine(config)
	if err != nil {
		logger.Error("failed to build engine", "error", err)
		os.Exit(1)
	}
	displayGameInfo(os.Stdout, config, engine)

	sim, err := buildRunner(config, engine, os.Stdout, logger)
	if err != nil {
		logger.Error("failed to build runner", "error", err)
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer stop()
		res, err := sim.Run(ctx)
		if err != nil {
			return err
		}
		displaySummary(os.Stdout, res)
		return nil
	})
	eg.Go(func() error {
		// SIGUSR1 pauses and resumes, SIGUSR2 restarts with a fresh random grid
		controls := make(chan os.Signal, 1)
		signal.Notify(controls, syscall.SIGUSR1, syscall.SIGUSR2)
		defer signal.Stop(controls)
		for {
			select {
			case <-ctx.Done():
				return nil
			case sig := <-controls:
				logger.Info("control signal", "signal", sig.String())
				if sig == syscall.SIGUSR1 {
					sim.Toggle()
				} else {
					sim.Restart()
				}
			}
		}
	})

	if err := eg.Wait(); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	configPath      string
	rows            int
	columns         int
	seed            int64
	interval        time.Duration
	liveProbability float64
	maxGenerations  int
	workers         int
	rule            string
	pattern         string
	neighbours      bool
	stopOnStagnant  bool
	noColor         bool
	verbose         bool
}

func parseFlags() cliFlags {
	var f cliFlags
	flaggy.SetName("lifecore")
	flaggy.SetDescription("Conway's Game of Life on a bounded grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true

	flaggy.String(&f.configPath, "c", "config", "JSON configuration file")
	flaggy.Int(&f.rows, "y", "rows", "Number of grid rows")
	flaggy.Int(&f.columns, "x", "columns", "Number of grid columns")
	flaggy.Int64(&f.seed, "s", "seed", "Seed of the random fill")
	flaggy.Duration(&f.interval, "i", "interval", "Interval between generations, for example 150ms")
	flaggy.Float64(&f.liveProbability, "p", "probability", "Chance of a cell starting live, 0 to 1")
	flaggy.Int(&f.maxGenerations, "m", "max", "Stop after this many generations")
	flaggy.Int(&f.workers, "w", "workers", "Goroutines computing each generation")
	flaggy.String(&f.rule, "r", "rule", "Rule in B/S notation, for example B3/S23")
	flaggy.String(&f.pattern, "t", "pattern", fmt.Sprintf("Start from a centred pattern instead of a random fill %v", model.PatternNames()))
	flaggy.Bool(&f.neighbours, "n", "neighbours", "Show neighbour counts")
	flaggy.Bool(&f.stopOnStagnant, "", "stop-on-stagnation", "Stop once the grid dies out or repeats")
	flaggy.Bool(&f.noColor, "", "no-color", "Disable coloured output")
	flaggy.Bool(&f.verbose, "v", "verbose", "Log debug messages")

	flaggy.Parse()
	return f
}
