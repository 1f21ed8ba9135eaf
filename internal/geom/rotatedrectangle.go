package geom

import (
	"fmt"
	"math"
	"math/rand"
)

// RotatedRectangle is a Rectangle rotated about its own center by Degree
// degrees, clockwise, in SVG's coordinate convention.
type RotatedRectangle struct {
	Rect   Rectangle
	Degree float64
}

func randomRotatedRectangle(w, h int, rng *rand.Rand) *RotatedRectangle {
	return &RotatedRectangle{
		Rect:   *randomRectangle(w, h, rng),
		Degree: rng.Float64() * 360,
	}
}

func (r *RotatedRectangle) Kind() Kind { return KindRotatedRectangle }

func (r *RotatedRectangle) Copy() Shape {
	c := *r
	return &c
}

func rotatePoint(center, p Point, degree float64) Point {
	rad := degree * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	dx := float64(p.X - center.X)
	dy := float64(p.Y - center.Y)
	return Point{
		X: center.X + int(math.Round(dx*cos-dy*sin)),
		Y: center.Y + int(math.Round(dx*sin+dy*cos)),
	}
}

func (r *RotatedRectangle) Rasterize(w, h int) []Scanline {
	center := Point{
		X: r.Rect.P.X + r.Rect.Width/2,
		Y: r.Rect.P.Y + r.Rect.Height/2,
	}
	corners := r.Rect.corners()
	rotated := make([]Point, len(corners))
	for i, c := range corners {
		rotated[i] = rotatePoint(center, c, r.Degree)
	}
	return RasterizePolygon(rotated, w, h)
}

func (r *RotatedRectangle) Valid() bool {
	return r.Rect.Valid()
}

// Mutate perturbs exactly one of position, size or rotation angle per call.
func (r *RotatedRectangle) Mutate(w, h int, rng *rand.Rand) {
	switch rng.Intn(3) {
	case 0:
		r.Rect.reposition(w, h, rng)
	case 1:
		r.Rect.resize(w, h, rng)
	default:
		r.Degree += 32 * rng.NormFloat64()
	}
}

func (r *RotatedRectangle) SVG(attrs string) string {
	return fmt.Sprintf(
		`<g transform="translate(%d %d) rotate(%g %d %d)"><rect x="0" y="0" width="%d" height="%d" %s/></g>`,
		r.Rect.P.X, r.Rect.P.Y, r.Degree, r.Rect.Width/2, r.Rect.Height/2,
		r.Rect.Width, r.Rect.Height, attrs)
}
