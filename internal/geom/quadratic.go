package geom

import (
	"fmt"
	"math/rand"
)

// Quadratic is a quadratic Bezier curve drawn as a one-pixel stroke rather
// than a fill. P0 and P2 are the endpoints, P1 the control point.
type Quadratic struct {
	P0, P1, P2 Point
}

func randomQuadratic(w, h int, rng *rand.Rand) *Quadratic {
	p0 := Point{X: rng.Intn(w), Y: rng.Intn(h)}
	q := &Quadratic{
		P0: p0,
		P1: jitterPoint(p0, 20, rng),
		P2: jitterPoint(p0, 20, rng),
	}
	for !q.Valid() {
		q.Mutate(w, h, rng)
	}
	return q
}

func jitterPoint(p Point, box int, rng *rand.Rand) Point {
	return Point{
		X: p.X + rng.Intn(2*box+1) - box,
		Y: p.Y + rng.Intn(2*box+1) - box,
	}
}

func (q *Quadratic) Kind() Kind { return KindQuadratic }

func (q *Quadratic) Copy() Shape {
	c := *q
	return &c
}

func (q *Quadratic) Rasterize(w, h int) []Scanline {
	return RasterizeQuadBezierStroke(q.P0, q.P1, q.P2, w, h)
}

func sqDist(a, b Point) int64 {
	dx := int64(a.X - b.X)
	dy := int64(a.Y - b.Y)
	return dx*dx + dy*dy
}

// Valid requires the chord P0-P2 to be the curve's longest side, which
// keeps the control point from folding the curve back on itself.
func (q *Quadratic) Valid() bool {
	d01 := sqDist(q.P0, q.P1)
	d12 := sqDist(q.P1, q.P2)
	d02 := sqDist(q.P0, q.P2)
	return d02 > d01 && d02 > d12
}

// Mutate perturbs one of the three control points, clamped to a margin
// beyond the canvas edge so the curve can straddle it, and retries until
// the result is valid again.
func (q *Quadratic) Mutate(w, h int, rng *rand.Rand) {
	const margin = 16
	for {
		before := *q
		pts := [3]*Point{&q.P0, &q.P1, &q.P2}
		p := pts[rng.Intn(3)]
		p.X = clampInt(p.X+int(16*rng.NormFloat64()), -margin, w-1+margin)
		p.Y = clampInt(p.Y+int(16*rng.NormFloat64()), -margin, h-1+margin)
		if q.Valid() {
			return
		}
		*q = before
	}
}

func (q *Quadratic) SVG(attrs string) string {
	strokeAttrs := replaceFillWithStroke(attrs)
	return fmt.Sprintf(`<path fill="none" d="M%d %d Q%d %d, %d %d" stroke-width="1.0" %s/>`,
		q.P0.X, q.P0.Y, q.P1.X, q.P1.Y, q.P2.X, q.P2.Y, strokeAttrs)
}
