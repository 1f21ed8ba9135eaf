package geom

import (
	"math"
	"math/rand"
)

// Triangle is a filled three-vertex polygon. Degenerate, needle-thin
// triangles are rejected by Valid so the search never wastes iterations on
// a shape that barely covers any pixels.
type Triangle struct {
	P0, P1, P2 Point
}

func randomTriangle(w, h int, rng *rand.Rand) *Triangle {
	p0 := Point{X: rng.Intn(w), Y: rng.Intn(h)}
	t := &Triangle{
		P0: p0,
		P1: jitterPoint(p0, 15, rng),
		P2: jitterPoint(p0, 15, rng),
	}
	for !t.Valid() {
		t.Mutate(w, h, rng)
	}
	return t
}

func (t *Triangle) Kind() Kind { return KindTriangle }

func (t *Triangle) Copy() Shape {
	c := *t
	return &c
}

func (t *Triangle) Rasterize(w, h int) []Scanline {
	return RasterizePolygon([]Point{t.P0, t.P1, t.P2}, w, h)
}

// Valid rejects triangles with an interior angle below 15 degrees, which
// in practice means "not a sliver".
func (t *Triangle) Valid() bool {
	const minAngle = 15 * math.Pi / 180
	a0 := angleAt(t.P0, t.P1, t.P2)
	a1 := angleAt(t.P1, t.P0, t.P2)
	a2 := math.Pi - a0 - a1
	return a0 > minAngle && a1 > minAngle && a2 > minAngle
}

func angleAt(vertex, a, b Point) float64 {
	ax, ay := float64(a.X-vertex.X), float64(a.Y-vertex.Y)
	bx, by := float64(b.X-vertex.X), float64(b.Y-vertex.Y)
	dot := ax*bx + ay*by
	na := math.Hypot(ax, ay)
	nb := math.Hypot(bx, by)
	if na == 0 || nb == 0 {
		return 0
	}
	cos := dot / (na * nb)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}

// Mutate perturbs one vertex by a Gaussian offset, clamped to a margin
// beyond the canvas edge so the triangle can straddle it, and retries
// until the result is valid again.
func (t *Triangle) Mutate(w, h int, rng *rand.Rand) {
	const margin = 16
	for {
		before := *t
		pts := [3]*Point{&t.P0, &t.P1, &t.P2}
		p := pts[rng.Intn(3)]
		p.X = clampInt(p.X+int(16*rng.NormFloat64()), -margin, w-1+margin)
		p.Y = clampInt(p.Y+int(16*rng.NormFloat64()), -margin, h-1+margin)
		if t.Valid() {
			return
		}
		*t = before
	}
}

func (t *Triangle) SVG(attrs string) string {
	return svgPolygonLike("polygon", []Point{t.P0, t.P1, t.P2}, attrs)
}
