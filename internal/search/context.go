// Package search implements the randomized hill-climb that finds, for a
// fixed shape family, the next primitive to add to the canvas.
package search

import (
	"image"
	"image/color"
	"math/rand"
	"sync"

	"github.com/gopherforge/primish/internal/geom"
)

// Context bundles everything a single hill-climb step needs to evaluate a
// candidate shape: the reference image, a read-locked view of the shared
// canvas being built, and this worker's own RNG. Origin, Canvas and Mu are
// shared across every worker's Context; RNG is exclusive to one.
type Context struct {
	W, H   int
	Origin *image.NRGBA
	Canvas *image.NRGBA
	Mu     *sync.RWMutex
	RNG    *rand.Rand
	Alpha  uint8
	Kind   geom.Kind
	// Score is this worker's most recently broadcast view of the overall
	// image distance, used as the incremental-diff starting point.
	Score float64
}

// Clone returns a Context that shares Origin/Canvas/Mu with ctx but owns an
// independent RNG, seeded from entropy, for one worker's exclusive use.
func (ctx *Context) Clone() *Context {
	c := *ctx
	c.RNG = rand.New(rand.NewSource(rand.Int63()))
	return &c
}

// State is a single candidate: a shape, the color it should be painted
// with, and the resulting image score if it were committed.
type State struct {
	Shape geom.Shape
	Color color.NRGBA
	Score float64
}
