package geom

import (
	"fmt"
	"math/rand"
)

// Rectangle is an axis-aligned filled box, anchored at its top-left corner.
type Rectangle struct {
	P             Point
	Width, Height int
}

func randomRectangle(w, h int, rng *rand.Rand) *Rectangle {
	return &Rectangle{
		P:      Point{X: rng.Intn(w), Y: rng.Intn(h)},
		Width:  rng.Intn(32) + 1,
		Height: rng.Intn(32) + 1,
	}
}

func (r *Rectangle) Kind() Kind { return KindRectangle }

func (r *Rectangle) Copy() Shape {
	c := *r
	return &c
}

func (r *Rectangle) corners() []Point {
	x0, y0 := r.P.X, r.P.Y
	x1, y1 := r.P.X+r.Width, r.P.Y+r.Height
	return []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func (r *Rectangle) Rasterize(w, h int) []Scanline {
	return RasterizePolygon(r.corners(), w, h)
}

func (r *Rectangle) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// reposition moves the rectangle's anchor by a Gaussian offset, clamped
// to a margin beyond the canvas edge so the rectangle can straddle it.
func (r *Rectangle) reposition(w, h int, rng *rand.Rand) {
	const margin = 16
	r.P.X = clampInt(r.P.X+int(16*rng.NormFloat64()), -margin, w-1+margin)
	r.P.Y = clampInt(r.P.Y+int(16*rng.NormFloat64()), -margin, h-1+margin)
}

// resize perturbs width/height by a Gaussian offset.
func (r *Rectangle) resize(w, h int, rng *rand.Rand) {
	r.Width = clampInt(r.Width+int(16*rng.NormFloat64()), 1, w-1)
	r.Height = clampInt(r.Height+int(16*rng.NormFloat64()), 1, h-1)
}

func (r *Rectangle) Mutate(w, h int, rng *rand.Rand) {
	if rng.Intn(2) == 0 {
		r.reposition(w, h, rng)
	} else {
		r.resize(w, h, rng)
	}
}

func (r *Rectangle) SVG(attrs string) string {
	return fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" %s/>`,
		r.P.X, r.P.Y, r.Width, r.Height, attrs)
}
