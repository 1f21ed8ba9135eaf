// Package pixel implements the optimal-color and image-distance kernels the
// search package calls on every hill-climb step.
package pixel

import (
	"image"
	"image/color"

	"github.com/gopherforge/primish/internal/geom"
)

// AverageColor returns the mean RGB color of img, with alpha fixed at 255.
// Used to pick a default canvas background when none is configured.
func AverageColor(img *image.NRGBA) color.NRGBA {
	bounds := img.Bounds()
	var rs, gs, bs, count int64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.NRGBAAt(x, y).R, img.NRGBAAt(x, y).G, img.NRGBAAt(x, y).B, img.NRGBAAt(x, y).A
			rs += int64(r)
			gs += int64(g)
			bs += int64(b)
			count++
		}
	}
	if count == 0 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{
		R: uint8(rs / count),
		G: uint8(gs / count),
		B: uint8(bs / count),
		A: 255,
	}
}

// OptimalColor computes the closed-form least-squares RGB that best moves
// `before` toward `origin` across the given scanlines, given that the
// shape will be composited at the fixed alpha bias. This is the same
// formula as compositing a uniform-alpha layer backwards: for each touched
// pixel, solve for the color that, after Porter-Duff "over" blending at
// alpha, reproduces origin exactly, then average those per-pixel solutions.
func OptimalColor(origin, before *image.NRGBA, lines []geom.Scanline, alpha uint8) color.NRGBA {
	if alpha == 0 {
		return color.NRGBA{A: 0}
	}
	// a = 0x101 * 255 / alpha, matching the fixed-point blend-inversion
	// factor used by the reference implementation this kernel is ported
	// from: it rescales an 8-bit channel into the same 16-bit space the
	// Porter-Duff "over" blend operates in before inverting it.
	a := int64(0x101) * 255 / int64(alpha)

	var rsum, gsum, bsum, count int64
	ob := origin.Bounds()
	for _, line := range lines {
		if line.Y < ob.Min.Y || line.Y >= ob.Max.Y {
			continue
		}
		x1 := maxInt(line.X1, ob.Min.X)
		x2 := minInt(line.X2, ob.Max.X-1)
		for x := x1; x <= x2; x++ {
			or := origin.NRGBAAt(x, line.Y)
			cr := before.NRGBAAt(x, line.Y)
			rsum += (int64(or.R)-int64(cr.R))*a + int64(cr.R)*0x101
			gsum += (int64(or.G)-int64(cr.G))*a + int64(cr.G)*0x101
			bsum += (int64(or.B)-int64(cr.B))*a + int64(cr.B)*0x101
			count++
		}
	}
	if count == 0 {
		return color.NRGBA{A: alpha}
	}
	return color.NRGBA{
		R: clampChannel((rsum / count) >> 8),
		G: clampChannel((gsum / count) >> 8),
		B: clampChannel((bsum / count) >> 8),
		A: alpha,
	}
}

func clampChannel(v int64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// CompositeOver blends c onto the pixel at (x, y) in dst using standard
// non-premultiplied Porter-Duff "over", writing the result back into dst.
func CompositeOver(dst *image.NRGBA, x, y int, c color.NRGBA) {
	if c.A == 255 {
		dst.SetNRGBA(x, y, c)
		return
	}
	bg := dst.NRGBAAt(x, y)
	a := float64(c.A) / 255
	inv := 1 - a
	dst.SetNRGBA(x, y, color.NRGBA{
		R: uint8(float64(c.R)*a + float64(bg.R)*inv),
		G: uint8(float64(c.G)*a + float64(bg.G)*inv),
		B: uint8(float64(c.B)*a + float64(bg.B)*inv),
		A: 255,
	})
}

// Draw composites c over every pixel covered by lines.
func Draw(dst *image.NRGBA, lines []geom.Scanline, c color.NRGBA) {
	bounds := dst.Bounds()
	for _, line := range lines {
		if line.Y < bounds.Min.Y || line.Y >= bounds.Max.Y {
			continue
		}
		x1 := maxInt(line.X1, bounds.Min.X)
		x2 := minInt(line.X2, bounds.Max.X-1)
		for x := x1; x <= x2; x++ {
			CompositeOver(dst, x, line.Y, c)
		}
	}
}
