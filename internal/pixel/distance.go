package pixel

import (
	"image"
	"image/color"
	"math"

	"github.com/gopherforge/primish/internal/geom"
)

// DiffFull computes the normalized RMS distance between two equally-sized
// images across all four channels (including alpha), in [0, 1].
func DiffFull(origin, current *image.NRGBA) float64 {
	b := origin.Bounds()
	w, h := b.Dx(), b.Dy()
	var total int64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o := origin.NRGBAAt(x, y)
			c := current.NRGBAAt(x, y)
			total += sqDiff(o.R, c.R) + sqDiff(o.G, c.G) + sqDiff(o.B, c.B) + sqDiff(o.A, c.A)
		}
	}
	return normalize(total, w, h)
}

func sqDiff(a, b uint8) int64 {
	d := int64(a) - int64(b)
	return d * d
}

func normalize(total int64, w, h int) float64 {
	if w == 0 || h == 0 {
		return 0
	}
	if total < 0 {
		total = 0
	}
	return math.Sqrt(float64(total)/float64(w*h*4)) / 255
}

// DiffPartial recomputes the image distance after replacing `before` with
// `color` composited in, restricted to the rows touched by lines, using the
// previous full-image score as a starting point. This turns an O(w*h)
// full-image comparison into an O(len(lines)) incremental update, which is
// what lets the search evaluate thousands of candidate shapes per second.
//
// The running total is carried in a signed 64-bit accumulator and clamped
// to zero before the final sqrt: floating-point score round-tripping
// through `priorScore` can occasionally make the subtract-then-add walk
// dip a hair below zero even though the true sum of squares cannot.
func DiffPartial(origin, before *image.NRGBA, lines []geom.Scanline, priorScore float64, fill color.NRGBA) float64 {
	b := origin.Bounds()
	w, h := b.Dx(), b.Dy()

	total := int64(math.Round(priorScore * 255 * priorScore * 255 * float64(w*h*4)))

	for _, line := range lines {
		if line.Y < b.Min.Y || line.Y >= b.Max.Y {
			continue
		}
		x1 := maxInt(line.X1, b.Min.X)
		x2 := minInt(line.X2, b.Max.X-1)
		for x := x1; x <= x2; x++ {
			o := origin.NRGBAAt(x, line.Y)
			bef := before.NRGBAAt(x, line.Y)
			total -= sqDiff(o.R, bef.R) + sqDiff(o.G, bef.G) + sqDiff(o.B, bef.B) + sqDiff(o.A, bef.A)

			after := blendOver(bef, fill)
			total += sqDiff(o.R, after.R) + sqDiff(o.G, after.G) + sqDiff(o.B, after.B) + sqDiff(o.A, after.A)
		}
	}
	return normalize(total, w, h)
}

// blendOver composites fill over bg without mutating either, mirroring
// CompositeOver's math for use in pure score evaluation.
func blendOver(bg, fill color.NRGBA) color.NRGBA {
	if fill.A == 255 {
		return fill
	}
	a := float64(fill.A) / 255
	inv := 1 - a
	return color.NRGBA{
		R: uint8(float64(fill.R)*a + float64(bg.R)*inv),
		G: uint8(float64(fill.G)*a + float64(bg.G)*inv),
		B: uint8(float64(fill.B)*a + float64(bg.B)*inv),
		A: 255,
	}
}
