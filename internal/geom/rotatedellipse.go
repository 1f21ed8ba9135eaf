package geom

import (
	"fmt"
	"math"
	"math/rand"
)

// RotatedEllipse is an ellipse with independent radii rotated by Degree
// degrees about its own center.
type RotatedEllipse struct {
	O      Point
	RX, RY int
	Degree float64
}

func randomRotatedEllipse(w, h int, rng *rand.Rand) *RotatedEllipse {
	return &RotatedEllipse{
		O:      Point{X: rng.Intn(w), Y: rng.Intn(h)},
		RX:     rng.Intn(32) + 1,
		RY:     rng.Intn(32) + 1,
		Degree: rng.Float64() * 360,
	}
}

func (e *RotatedEllipse) Kind() Kind { return KindRotatedEllipse }

func (e *RotatedEllipse) Copy() Shape {
	c := *e
	return &c
}

// Rasterize follows Zingl's rotated-ellipse construction: derive the
// rotated bounding box and a skew term zd from (rx, ry, angle), then fill
// it as a rational-Bezier four-arc ellipse.
func (e *RotatedEllipse) Rasterize(w, h int) []Scanline {
	angle := e.Degree * math.Pi / 180
	xd := float64(e.RX) * float64(e.RX)
	yd := float64(e.RY) * float64(e.RY)
	s := math.Sin(angle)
	zd := (xd - yd) * s

	xdp := math.Sqrt(xd - zd*s)
	ydp := math.Sqrt(yd + zd*s)
	a := xdp + 0.5
	b := ydp + 0.5
	if xdp*ydp == 0 {
		return nil
	}
	zd = zd * a * b / (xdp * ydp)

	x0 := e.O.X - int(a)
	y0 := e.O.Y - int(b)
	x1 := e.O.X + int(a)
	y1 := e.O.Y + int(b)
	return RasterizeRotatedEllipseRect(x0, y0, x1, y1, zd, w, h)
}

func (e *RotatedEllipse) Valid() bool {
	return e.RX > 0 && e.RY > 0
}

func (e *RotatedEllipse) Mutate(w, h int, rng *rand.Rand) {
	const margin = 16
	switch rng.Intn(4) {
	case 0:
		e.O.X = clampInt(e.O.X+int(16*rng.NormFloat64()), -margin, w-1+margin)
		e.O.Y = clampInt(e.O.Y+int(16*rng.NormFloat64()), -margin, h-1+margin)
	case 1:
		e.RX = clampInt(e.RX+int(16*rng.NormFloat64()), 1, w-1)
	case 2:
		e.RY = clampInt(e.RY+int(16*rng.NormFloat64()), 1, h-1)
	default:
		e.Degree += 32 * rng.NormFloat64()
	}
}

func (e *RotatedEllipse) SVG(attrs string) string {
	return fmt.Sprintf(
		`<g transform="translate(%d %d) rotate(%g)"><ellipse cx="0" cy="0" rx="%d" ry="%d" %s/></g>`,
		e.O.X, e.O.Y, e.Degree, e.RX, e.RY, attrs)
}
