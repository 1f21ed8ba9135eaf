// Package engine owns the shared canvas and the worker/coordinator
// concurrency model that drives repeated hill-climb steps into a growing
// approximation of a reference image.
package engine

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gopherforge/primish/internal/pixel"
)

// Canvas holds the reference image, the image being built up one shape at
// a time, and the lock that guards concurrent reads (by workers scoring
// candidates) against the single writer (the coordinator committing a step).
type Canvas struct {
	W, H  int
	Scale float64
	Bg    color.NRGBA

	Origin  *image.NRGBA
	Current *image.NRGBA
	Mu      sync.RWMutex

	Score float64
}

// NewCanvas builds a Canvas from a decoded source image. If the image's
// longest edge exceeds inputSize, it is downscaled proportionally first
// (matching the "resize before fitting" rule); outputSize then sets the
// rendered canvas's longest edge, with Scale recording the ratio between
// the two so exported vector documents can be emitted at a different size
// than the canvas primitives were fit against.
func NewCanvas(src image.Image, inputSize, outputSize uint, alpha uint8, bg *color.NRGBA) (*Canvas, error) {
	origin := fitToNRGBA(src, int(inputSize))
	b := origin.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("engine: source image has zero dimension")
	}

	scale := 1.0
	if outputSize > 0 {
		longest := w
		if h > longest {
			longest = h
		}
		scale = float64(outputSize) / float64(longest)
	}

	background := color.NRGBA{A: 255}
	if bg != nil {
		background = *bg
	} else {
		background = pixel.AverageColor(origin)
	}

	current := image.NewNRGBA(b)
	draw.Draw(current, b, &image.Uniform{C: background}, image.Point{}, draw.Src)

	c := &Canvas{
		W: w, H: h,
		Scale:   scale,
		Bg:      background,
		Origin:  origin,
		Current: current,
	}
	c.Score = pixel.DiffFull(origin, current)
	_ = alpha // alpha is a per-shape search parameter, not a canvas property
	return c, nil
}

// fitToNRGBA converts src to NRGBA, downscaling proportionally (longest
// edge clamped to maxEdge) if maxEdge is positive and smaller than src's
// longest edge.
func fitToNRGBA(src image.Image, maxEdge int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if maxEdge > 0 {
		longest := w
		if h > longest {
			longest = h
		}
		if longest > maxEdge {
			ratio := float64(maxEdge) / float64(longest)
			nw := int(float64(w)*ratio + 0.5)
			nh := int(float64(h)*ratio + 0.5)
			if nw < 1 {
				nw = 1
			}
			if nh < 1 {
				nh = 1
			}
			dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
			draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
			return dst
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
