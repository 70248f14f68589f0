package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifecore/model"
	"github.com/sheikhrachel/lifecore/rules"
	"github.com/sheikhrachel/lifecore/runner"
	"github.com/sheikhrachel/lifecore/utils"
)

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the optional config file and applies command line overrides
func loadConfig(f cliFlags) (utils.Config, error) {
	config := utils.DefaultConfig()
	if f.configPath != "" {
		var err error
		if config, err = utils.LoadConfig(f.configPath); err != nil {
			return config, err
		}
	}
	applyOverrides(&config, f)
	return config, config.Validate()
}

// applyOverrides copies every flag that was given a non-zero value onto config
func applyOverrides(config *utils.Config, f cliFlags) {
	if f.rows != 0 {
		config.Rows = f.rows
	}
	if f.columns != 0 {
		config.Columns = f.columns
	}
	if f.seed != 0 {
		config.Seed = f.seed
	}
	if f.interval != 0 {
		config.Interval = utils.Duration(f.interval)
	}
	if f.liveProbability != 0 {
		config.LiveProbability = f.liveProbability
	}
	if f.maxGenerations != 0 {
		config.MaxGenerations = f.maxGenerations
	}
	if f.workers != 0 {
		config.Workers = f.workers
	}
	if f.rule != "" {
		config.Rule = f.rule
	}
	if f.pattern != "" {
		config.Pattern = f.pattern
	}
	config.ShowNeighbours = config.ShowNeighbours || f.neighbours
	config.StopOnStagnation = config.StopOnStagnation || f.stopOnStagnant
	config.Color = config.Color && !f.noColor
}

// buildEngine creates the engine and seeds it with either a pattern or a random fill
func buildEngine(config utils.Config) (*model.Engine, error) {
	rule, err := rules.ParseRule(config.Rule)
	if err != nil {
		return nil, err
	}

	opts := []model.Option{model.WithRule(rule), model.WithParallelism(config.Workers)}
	if config.UseMemoryPool {
		opts = append(opts, model.WithPool(model.NewGridPool()))
	}

	engine, err := model.NewEngine(config.Rows, config.Columns, config.Seed, opts...)
	if err != nil {
		return nil, err
	}

	if config.Pattern == "" {
		if err := engine.Randomize(config.LiveProbability); err != nil {
			return nil, err
		}
		return engine, nil
	}

	pattern, err := model.LookupPattern(config.Pattern)
	if err != nil {
		return nil, err
	}
	height, width := patternSize(pattern)
	if err := engine.Place(pattern, (config.Rows-height)/2, (config.Columns-width)/2); err != nil {
		return nil, errors.Wrap(err, "[buildEngine] pattern does not fit the grid")
	}
	return engine, nil
}

func buildRunner(config utils.Config, engine *model.Engine, out io.Writer, logger *slog.Logger) (*runner.Runner, error) {
	renderer := model.NewTerminalRenderer(out, config.Color, config.ShowNeighbours, true)
	return runner.New(engine, renderer, runner.Options{
		Interval:         time.Duration(config.Interval),
		LiveProbability:  config.LiveProbability,
		MaxGenerations:   config.MaxGenerations,
		StopOnStagnation: config.StopOnStagnation,
		HistoryDepth:     config.HistoryDepth,
		Logger:           logger,
	})
}

func patternSize(p model.Pattern) (height, width int) {
	for _, c := range p.Cells {
		height = max(height, c[0]+1)
		width = max(width, c[1]+1)
	}
	return
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, engine *model.Engine) {
	fmt.Fprintf(out, "Rule: %s | Workers: %d | Memory Pool: %v\n",
		engine.Rule(), config.Workers, config.UseMemoryPool)
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d\n",
		engine.Rows(), engine.Columns(), engine.Population())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// displaySummary prints the final statistics of a run
func displaySummary(out io.Writer, res runner.Result) {
	fmt.Fprintf(out, "\nStopped: %s after %d generations\n", res.Reason, res.Generations)
	if res.Stats == nil {
		return
	}
	fmt.Fprintf(out, "Runtime: %.1fs | Restarts: %d\n", res.Stats.Elapsed().Seconds(), res.Stats.Restarts)
	fmt.Fprintf(out, "Average: %.1f gen/sec, %.1f avg population, %d peak population\n",
		res.Stats.GenerationsPerSecond, res.Stats.AveragePopulation, res.Stats.PeakPopulation)
}
