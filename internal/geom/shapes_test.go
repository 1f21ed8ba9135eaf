package geom

import (
	"math/rand"
	"strings"
	"testing"
)

func TestRandomShapesRasterizeWithinCanvas(t *testing.T) {
	const w, h = 64, 48
	rng := rand.New(rand.NewSource(1))

	kinds := []Kind{
		KindTriangle, KindRectangle, KindRotatedRectangle,
		KindEllipse, KindCircle, KindRotatedEllipse,
		KindQuadratic, KindPolygon, KindCombo,
	}
	for _, kind := range kinds {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			for i := 0; i < 20; i++ {
				shape := Random(kind, w, h, rng)
				if !shape.Valid() {
					t.Fatalf("Random(%s) produced an invalid shape", kind)
				}
				for _, line := range shape.Rasterize(w, h) {
					if line.Y < 0 || line.Y >= h || line.X1 < 0 || line.X2 >= w || line.X1 > line.X2 {
						t.Fatalf("Rasterize(%s) produced out-of-bounds scanline %+v", kind, line)
					}
				}
			}
		})
	}
}

func TestMutateStaysValid(t *testing.T) {
	const w, h = 64, 48
	rng := rand.New(rand.NewSource(2))

	kinds := []Kind{
		KindTriangle, KindRectangle, KindRotatedRectangle,
		KindEllipse, KindCircle, KindRotatedEllipse,
		KindQuadratic, KindPolygon, KindCombo,
	}
	for _, kind := range kinds {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			shape := Random(kind, w, h, rng)
			for i := 0; i < 50; i++ {
				shape.Mutate(w, h, rng)
				if !shape.Valid() {
					t.Fatalf("Mutate(%s) left an invalid shape after %d steps", kind, i)
				}
			}
		})
	}
}

func TestTriangleValidRejectsSlivers(t *testing.T) {
	sliver := &Triangle{P0: Point{0, 0}, P1: Point{100, 1}, P2: Point{200, 0}}
	if sliver.Valid() {
		t.Fatal("expected a near-collinear triangle to be invalid")
	}
	equilateral := &Triangle{P0: Point{0, 0}, P1: Point{50, 0}, P2: Point{25, 43}}
	if !equilateral.Valid() {
		t.Fatal("expected an equilateral-ish triangle to be valid")
	}
}

func TestQuadraticValidRequiresLongestChord(t *testing.T) {
	q := &Quadratic{P0: Point{0, 0}, P1: Point{5, 5}, P2: Point{10, 0}}
	if !q.Valid() {
		t.Fatal("expected chord P0-P2 to be the longest side")
	}
	bad := &Quadratic{P0: Point{0, 0}, P1: Point{100, 100}, P2: Point{1, 1}}
	if bad.Valid() {
		t.Fatal("expected a curve whose control point dominates to be invalid")
	}
}

func TestCircleKeepsEqualRadii(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := randomCircle(40, 40, rng)
	for i := 0; i < 30; i++ {
		c.Mutate(40, 40, rng)
		if c.RX != c.RY {
			t.Fatalf("circle radii diverged: rx=%d ry=%d", c.RX, c.RY)
		}
	}
}

func TestPolygonSVGUsesPointsAttribute(t *testing.T) {
	p := &Polygon{Points: [4]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	svg := p.SVG(`fill="#ff0000" fill-opacity="1"`)
	if !strings.Contains(svg, "<polygon") || !strings.Contains(svg, "points=") {
		t.Fatalf("unexpected polygon SVG: %s", svg)
	}
}

func TestQuadraticSVGUsesStroke(t *testing.T) {
	q := &Quadratic{P0: Point{0, 0}, P1: Point{5, 5}, P2: Point{10, 0}}
	svg := q.SVG(`fill="#ff0000" fill-opacity="1"`)
	if !strings.Contains(svg, "stroke=") || strings.Contains(svg, `fill="#ff0000"`) {
		t.Fatalf("expected fill attribute to become stroke, got: %s", svg)
	}
}

func TestRasterizeRotatedEllipseRectRejectsOutOfRangeWeight(t *testing.T) {
	lines := RasterizeRotatedEllipseRect(0, 0, 0, 0, 0, 10, 10)
	if lines != nil {
		t.Fatalf("expected a degenerate rect to rasterize to nothing, got %v", lines)
	}
	// xd = yd = 10 and zd = -200 give a weight of (100+200)/200 = 1.5.
	if lines := RasterizeRotatedEllipseRect(0, 0, 10, 10, -200, 10, 10); lines != nil {
		t.Fatalf("expected an out-of-range weight to rasterize to nothing, got %v", lines)
	}
}
