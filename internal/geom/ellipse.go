package geom

import (
	"fmt"
	"math/rand"
)

// Ellipse is an axis-aligned filled ellipse with independent radii.
type Ellipse struct {
	O      Point
	RX, RY int
}

func randomEllipse(w, h int, rng *rand.Rand) *Ellipse {
	return &Ellipse{
		O:  Point{X: rng.Intn(w), Y: rng.Intn(h)},
		RX: rng.Intn(32) + 1,
		RY: rng.Intn(32) + 1,
	}
}

func (e *Ellipse) Kind() Kind { return KindEllipse }

func (e *Ellipse) Copy() Shape {
	c := *e
	return &c
}

func (e *Ellipse) Rasterize(w, h int) []Scanline {
	return RasterizeEllipse(e.O, e.RX, e.RY, w, h)
}

func (e *Ellipse) Valid() bool {
	return e.RX > 0 && e.RY > 0
}

// translate moves the ellipse's center by a Gaussian offset, clamped to a
// margin beyond the canvas edge so the ellipse can straddle it.
func (e *Ellipse) translate(w, h int, rng *rand.Rand) {
	const margin = 16
	e.O.X = clampInt(e.O.X+int(16*rng.NormFloat64()), -margin, w-1+margin)
	e.O.Y = clampInt(e.O.Y+int(16*rng.NormFloat64()), -margin, h-1+margin)
}

func (e *Ellipse) resizeRX(w int, rng *rand.Rand) {
	e.RX = clampInt(e.RX+int(16*rng.NormFloat64()), 1, w-1)
}

func (e *Ellipse) resizeRY(h int, rng *rand.Rand) {
	e.RY = clampInt(e.RY+int(16*rng.NormFloat64()), 1, h-1)
}

func (e *Ellipse) Mutate(w, h int, rng *rand.Rand) {
	switch rng.Intn(3) {
	case 0:
		e.translate(w, h, rng)
	case 1:
		e.resizeRX(w, rng)
	default:
		e.resizeRY(h, rng)
	}
}

func (e *Ellipse) SVG(attrs string) string {
	return fmt.Sprintf(`<ellipse cx="%d" cy="%d" rx="%d" ry="%d" %s/>`,
		e.O.X, e.O.Y, e.RX, e.RY, attrs)
}
