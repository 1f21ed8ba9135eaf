package search

import (
	"math"

	"github.com/gopherforge/primish/internal/geom"
	"github.com/gopherforge/primish/internal/pixel"
)

// improvementEpsilon is the minimum score improvement that counts as
// progress; smaller deltas are treated as noise and rejected.
const improvementEpsilon = 1e-6

// RandomStep draws one valid, non-empty shape at the context's configured
// alpha bias and scores it against the shared canvas.
func RandomStep(ctx *Context) State {
	for {
		shape := geom.Random(ctx.Kind, ctx.W, ctx.H, ctx.RNG)
		lines := shape.Rasterize(ctx.W, ctx.H)
		if len(lines) == 0 {
			continue
		}
		return ctx.evaluate(shape, lines, ctx.Alpha)
	}
}

// BestRandomStep draws n independent RandomStep candidates and returns the
// lowest-scoring one.
func BestRandomStep(ctx *Context, n int) State {
	best := State{Score: math.Inf(1)}
	for i := 0; i < n; i++ {
		s := RandomStep(ctx)
		if s.Score < best.Score {
			best = s
		}
	}
	return best
}

// HillClimb performs a bounded-age local search starting from state: every
// iteration mutates a copy of the current best shape, jitters the alpha
// bias by up to ±10, and accepts the mutation only if it improves the
// score by more than improvementEpsilon. A mutation that rasterizes to no
// pixels, or that fails to improve, reverts to the best state found so far
// rather than the iteration's starting point. The search stops once more
// than age consecutive iterations fail to improve on the best.
func HillClimb(ctx *Context, state State, age int) State {
	best := state
	stale := 0
	for stale <= age {
		candidateShape := best.Shape.Copy()
		candidateShape.Mutate(ctx.W, ctx.H, ctx.RNG)
		lines := candidateShape.Rasterize(ctx.W, ctx.H)
		if len(lines) == 0 {
			stale++
			continue
		}
		alpha := jitterAlpha(ctx.Alpha, ctx.RNG.Intn(21))
		candidate := ctx.evaluate(candidateShape, lines, alpha)
		if best.Score-candidate.Score > improvementEpsilon {
			best = candidate
			stale = 0
		} else {
			stale++
		}
	}
	return best
}

// BestHillClimb runs m independent restarts of BestRandomStep followed by
// HillClimb, keeping the best result across all restarts. This is the
// single call the search package exposes to the coordinator: one shape,
// fully optimized, per call.
func BestHillClimb(ctx *Context, n, m, age int) State {
	best := State{Score: math.Inf(1)}
	for i := 0; i < m; i++ {
		seed := BestRandomStep(ctx, n)
		climbed := HillClimb(ctx, seed, age)
		if best.Score-climbed.Score > improvementEpsilon {
			best = climbed
		}
	}
	return best
}

func jitterAlpha(bias uint8, roll int) uint8 {
	v := int(bias) + roll - 10
	if v < 1 {
		v = 1
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// evaluate computes the optimal color for shape restricted to lines and
// the resulting incremental image distance, reading the shared canvas
// under a read lock.
func (ctx *Context) evaluate(shape geom.Shape, lines []geom.Scanline, alpha uint8) State {
	ctx.Mu.RLock()
	color := pixel.OptimalColor(ctx.Origin, ctx.Canvas, lines, alpha)
	score := pixel.DiffPartial(ctx.Origin, ctx.Canvas, lines, ctx.Score, color)
	ctx.Mu.RUnlock()
	return State{Shape: shape, Color: color, Score: score}
}
