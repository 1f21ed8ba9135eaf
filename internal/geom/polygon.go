package geom

import (
	"math"
	"math/rand"
)

// Polygon is a four-vertex filled shape. Vertices are kept in clockwise
// order so Rasterize never has to special-case self-intersecting edges.
type Polygon struct {
	Points [4]Point
}

func randomPolygon(w, h int, rng *rand.Rand) *Polygon {
	p0 := Point{X: rng.Intn(w), Y: rng.Intn(h)}
	p := &Polygon{Points: [4]Point{
		p0,
		jitterPoint(p0, 20, rng),
		jitterPoint(p0, 20, rng),
		jitterPoint(p0, 20, rng),
	}}
	p.clockwise()
	return p
}

func (p *Polygon) Kind() Kind { return KindPolygon }

func (p *Polygon) Copy() Shape {
	c := *p
	return &c
}

func (p *Polygon) Rasterize(w, h int) []Scanline {
	return RasterizePolygon(p.Points[:], w, h)
}

func (p *Polygon) Valid() bool {
	return true
}

// clockwise reorders the four vertices around their centroid so the
// polygon scan sees a simple, non-self-intersecting path.
func (p *Polygon) clockwise() {
	var cx, cy float64
	for _, v := range p.Points {
		cx += float64(v.X)
		cy += float64(v.Y)
	}
	cx /= 4
	cy /= 4

	angle := func(v Point) float64 {
		return math.Atan2(float64(v.Y)-cy, float64(v.X)-cx)
	}
	pts := p.Points
	for i := 1; i < len(pts); i++ {
		j := i
		for j > 0 && angle(pts[j-1]) > angle(pts[j]) {
			pts[j-1], pts[j] = pts[j], pts[j-1]
			j--
		}
	}
	p.Points = pts
}

// Mutate either swaps two distinct vertices or nudges one vertex within a
// 16px margin beyond the canvas edge, then re-sorts to stay clockwise.
func (p *Polygon) Mutate(w, h int, rng *rand.Rand) {
	const margin = 16
	switch rng.Intn(4) {
	case 0:
		i := rng.Intn(4)
		j := rng.Intn(4)
		for j == i {
			j = rng.Intn(4)
		}
		p.Points[i], p.Points[j] = p.Points[j], p.Points[i]
	default:
		i := rng.Intn(4)
		p.Points[i].X = clampInt(p.Points[i].X+int(16*rng.NormFloat64()), -margin, w-1+margin)
		p.Points[i].Y = clampInt(p.Points[i].Y+int(16*rng.NormFloat64()), -margin, h-1+margin)
	}
	p.clockwise()
}

func (p *Polygon) SVG(attrs string) string {
	return svgPolygonLike("polygon", p.Points[:], attrs)
}
