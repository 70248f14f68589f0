package runner

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifecore/model"
	"github.com/sheikhrachel/lifecore/utils"
)

// ErrInvalidOptions is returned by New for unusable runner options
var ErrInvalidOptions = errors.New("invalid runner options")

// Engine is the part of model.Engine the runner drives
type Engine interface {
	Step() (model.Generation, model.NeighbourCounts)
	Randomize(liveProbability float64) error
	Generation() model.Generation
}

// Reason says why Run returned
type Reason string

const (
	ReasonCancelled      Reason = "cancelled"
	ReasonMaxGenerations Reason = "max generations reached"
	ReasonExtinct        Reason = "extinction"
	ReasonStagnant       Reason = "stagnation detected"
)

// Options control the cadence and stop conditions of a Runner
type Options struct {
	Interval         time.Duration
	LiveProbability  float64
	MaxGenerations   int // 0 means unlimited
	StopOnStagnation bool
	HistoryDepth     int
	Logger           *slog.Logger
}

// Result summarises a finished run
type Result struct {
	Generations int
	Reason      Reason
	Stats       *utils.Stats
}

type command int

const (
	cmdPause command = iota
	cmdResume
	cmdToggle
	cmdRestart
)

// Runner steps an engine at a fixed interval and pushes every generation to a renderer.
// Step is only ever called from the goroutine executing Run.
type Runner struct {
	engine   Engine
	renderer model.Renderer
	opts     Options
	history  *model.History
	stats    *utils.Stats
	logger   *slog.Logger

	commands chan command
	paused   atomic.Bool
}

// New creates a Runner; call Run to start it
func New(engine Engine, renderer model.Renderer, opts Options) (*Runner, error) {
	if opts.Interval <= 0 {
		return nil, errors.Wrapf(ErrInvalidOptions, "[runner.New] interval must be positive, got %v", opts.Interval)
	}
	if opts.MaxGenerations < 0 {
		return nil, errors.Wrapf(ErrInvalidOptions, "[runner.New] max generations must not be negative, got %d", opts.MaxGenerations)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		engine:   engine,
		renderer: renderer,
		opts:     opts,
		history:  model.NewHistory(opts.HistoryDepth),
		stats:    utils.NewStats(),
		logger:   logger,
		commands: make(chan command, 16),
	}, nil
}

// Pause stops stepping until Resume, Toggle or Restart
func (r *Runner) Pause() { r.commands <- cmdPause }

// Resume continues stepping after Pause
func (r *Runner) Resume() { r.commands <- cmdResume }

// Toggle flips between paused and running
func (r *Runner) Toggle() { r.commands <- cmdToggle }

// Restart reseeds the grid at random and resumes stepping
func (r *Runner) Restart() { r.commands <- cmdRestart }

// Paused reports whether the runner is currently paused
func (r *Runner) Paused() bool {
	return r.paused.Load()
}

// Stats returns the run statistics; only read them after Run returns
func (r *Runner) Stats() *utils.Stats {
	return r.stats
}

// Run renders the current generation, then steps once per interval until ctx is
// cancelled or a stop condition is met. A renderer error ends the run.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	steps := 0
	gen := r.engine.Generation()
	r.history.Observe(gen)
	if err := r.renderer.Render(gen, model.NeighbourCounts{}); err != nil {
		return r.result(steps, ReasonCancelled), errors.Wrap(err, "[Run] initial render")
	}

	lastFrame := time.Now()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("run cancelled", "generations", steps)
			return r.result(steps, ReasonCancelled), nil

		case cmd := <-r.commands:
			if err := r.handle(cmd); err != nil {
				return r.result(steps, ReasonCancelled), err
			}
			if cmd == cmdRestart {
				steps = 0
			}

		case now := <-ticker.C:
			if r.paused.Load() {
				continue
			}

			gen, counts := r.engine.Step()
			steps++
			r.stats.Update(steps, gen.Population(), now.Sub(lastFrame))
			lastFrame = now

			if err := r.renderer.Render(gen, counts); err != nil {
				return r.result(steps, ReasonCancelled), errors.Wrapf(err, "[Run] render generation %d", steps)
			}

			if reason, done := r.checkStop(gen, steps); done {
				r.logger.Info("run finished", "reason", string(reason), "generations", steps)
				return r.result(steps, reason), nil
			}
		}
	}
}

func (r *Runner) handle(cmd command) error {
	switch cmd {
	case cmdPause:
		r.paused.Store(true)
	case cmdResume:
		r.paused.Store(false)
	case cmdToggle:
		r.paused.Store(!r.paused.Load())
	case cmdRestart:
		if err := r.engine.Randomize(r.opts.LiveProbability); err != nil {
			return errors.Wrap(err, "[Run] restart")
		}
		r.history.Reset()
		r.stats.Restarts++
		r.paused.Store(false)

		gen := r.engine.Generation()
		r.history.Observe(gen)
		if err := r.renderer.Render(gen, model.NeighbourCounts{}); err != nil {
			return errors.Wrap(err, "[Run] render after restart")
		}
	}
	r.logger.Debug("command handled", "command", int(cmd), "paused", r.paused.Load())
	return nil
}

// checkStop determines if the run should end after this generation
func (r *Runner) checkStop(gen model.Generation, steps int) (Reason, bool) {
	period := r.history.Observe(gen)
	if period > 0 {
		r.logger.Debug("cycle detected", "period", period, "generation", steps)
	}

	if r.opts.StopOnStagnation {
		if gen.Population() == 0 {
			return ReasonExtinct, true
		}
		if period > 0 {
			return ReasonStagnant, true
		}
	}
	if r.opts.MaxGenerations > 0 && steps >= r.opts.MaxGenerations {
		return ReasonMaxGenerations, true
	}
	return "", false
}

func (r *Runner) result(steps int, reason Reason) Result {
	return Result{Generations: steps, Reason: reason, Stats: r.stats}
}
