package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/gopherforge/primish/internal/geom"
	"github.com/gopherforge/primish/internal/pixel"
	"github.com/gopherforge/primish/internal/search"
)

// Config holds the tunables a Runner needs to drive the search: which
// shape family to draw from, how many workers to fan the search across,
// and the hill-climb's own n/m/age knobs.
type Config struct {
	Kind        geom.Kind
	WorkerCount int
	N, M, Age   int
	Alpha       uint8
}

// Runner is the coordinator half of the worker/coordinator model: it owns
// a pool of workers that each race to find the best next shape, commits
// the winner onto the shared canvas, and rebroadcasts the updated score so
// every worker's next step scores against up-to-date state.
type Runner struct {
	canvas  *Canvas
	cfg     Config
	workers []*worker
	history []search.State

	onStep func(index int, state search.State)
}

// NewRunner constructs a Runner bound to canvas. Call Init before Step.
func NewRunner(canvas *Canvas, cfg Config) *Runner {
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	return &Runner{canvas: canvas, cfg: cfg}
}

// OnStep registers a callback invoked after every committed step, mirroring
// the progress-reporting hook the coordinator's caller uses to stream
// iteration counts and scores.
func (r *Runner) OnStep(fn func(index int, state search.State)) {
	r.onStep = fn
}

// Init (re-)spawns the worker pool. It is safe to call again after Stop to
// resume searching with a fresh set of worker goroutines and RNGs.
func (r *Runner) Init() {
	r.workers = make([]*worker, r.cfg.WorkerCount)
	// Partition the configured restart budget across the worker pool:
	// m' = ceil(m / workerCount) restarts per worker, so the coordinator's
	// reduction still races roughly m total restarts per step regardless
	// of how many workers run them.
	perWorkerM := (r.cfg.M + r.cfg.WorkerCount - 1) / r.cfg.WorkerCount
	if perWorkerM < 1 {
		perWorkerM = 1
	}
	for i := range r.workers {
		base := &search.Context{
			W:      r.canvas.W,
			H:      r.canvas.H,
			Origin: r.canvas.Origin,
			Canvas: r.canvas.Current,
			Mu:     &r.canvas.Mu,
			RNG:    rand.New(rand.NewSource(rand.Int63())),
			Alpha:  r.cfg.Alpha,
			Kind:   r.cfg.Kind,
			Score:  r.canvas.Score,
		}
		w := newWorker(base, r.cfg.N, perWorkerM, r.cfg.Age)
		r.workers[i] = w
		go w.run()
	}
}

// Step fans a BestHillClimb request out to every worker, keeps the
// lowest-scoring result (results are read in pool order, not arrival order,
// so a tie goes to the worker earlier in the pool), draws
// it onto the shared canvas, and rebroadcasts the new score to every
// worker for the next round.
func (r *Runner) Step() (search.State, error) {
	if len(r.workers) == 0 {
		return search.State{}, fmt.Errorf("engine: Step called before Init")
	}
	for _, w := range r.workers {
		w.cmdCh <- cmdStart
	}

	best := search.State{}
	haveBest := false
	for _, w := range r.workers {
		result := <-w.resultCh
		if !haveBest || result.Score < best.Score {
			best = result
			haveBest = true
		}
	}

	r.canvas.Mu.Lock()
	lines := best.Shape.Rasterize(r.canvas.W, r.canvas.H)
	pixel.Draw(r.canvas.Current, lines, best.Color)
	r.canvas.Score = best.Score
	r.canvas.Mu.Unlock()

	for _, w := range r.workers {
		w.ctx.Score = r.canvas.Score
	}

	r.history = append(r.history, best)
	if r.onStep != nil {
		r.onStep(len(r.history), best)
	}
	return best, nil
}

// Stop tells every worker goroutine to exit and drops the worker pool. It
// is always safe to call Init again afterward.
func (r *Runner) Stop() {
	for _, w := range r.workers {
		w.cmdCh <- cmdEnd
	}
	r.workers = nil
}

// Run drives Step either a fixed shapeCount times, or until the canvas
// score falls to or below scoreThreshold (whichever mode is selected by the
// caller), stopping early if ctx is cancelled. It always calls Init first
// and Stop on the way out.
func (r *Runner) Run(ctx context.Context, shapeCount int, scoreThreshold float64) error {
	r.Init()
	defer r.Stop()

	useThreshold := scoreThreshold > 0 && scoreThreshold < 1
	for i := 0; useThreshold || i < shapeCount; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := r.Step(); err != nil {
			return err
		}
		if useThreshold && r.canvas.Score <= scoreThreshold {
			return nil
		}
	}
	return nil
}

// History returns every committed state so far, in commit order.
func (r *Runner) History() []search.State {
	return r.history
}
