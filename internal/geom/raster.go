package geom

import "math"

// scanBuffer accumulates, per output row, the leftmost (lhs) and rightmost
// (rhs) x touched by any edge walked into that row. It backs both the
// generic polygon scan and the Bezier segment walkers below, all of which
// share the same "walk edges into row buffers, then collect" shape.
type scanBuffer struct {
	ymin, ymax int
	lhs, rhs   []int
	set        []bool
}

func newScanBuffer(ymin, ymax int) *scanBuffer {
	n := ymax - ymin + 1
	if n < 1 {
		n = 1
	}
	return &scanBuffer{
		ymin: ymin,
		ymax: ymax,
		lhs:  make([]int, n),
		rhs:  make([]int, n),
		set:  make([]bool, n),
	}
}

func (b *scanBuffer) touch(x, y int) {
	if y < b.ymin || y > b.ymax {
		return
	}
	i := y - b.ymin
	if !b.set[i] {
		b.lhs[i] = x
		b.rhs[i] = x
		b.set[i] = true
		return
	}
	if x < b.lhs[i] {
		b.lhs[i] = x
	}
	if x > b.rhs[i] {
		b.rhs[i] = x
	}
}

// collect clamps every touched row to the canvas and emits a Scanline per
// row that still has a non-empty span after clamping.
func (b *scanBuffer) collect(w, h int) []Scanline {
	lines := make([]Scanline, 0, len(b.lhs))
	for i, isSet := range b.set {
		if !isSet {
			continue
		}
		y := b.ymin + i
		if y < 0 || y >= h {
			continue
		}
		x1 := clampInt(b.lhs[i], 0, w-1)
		x2 := clampInt(b.rhs[i], 0, w-1)
		if x1 > x2 {
			continue
		}
		lines = append(lines, Scanline{Y: y, X1: x1, X2: x2})
	}
	return lines
}

// rasterizeLine walks a Bresenham line from p0 to p1, touching every pixel
// it passes through into buf. Horizontal-ish edges touch both directions so
// that the polygon fill below always sees a closed span per row.
func rasterizeLine(p0, p1 Point, buf *scanBuffer) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		buf.touch(x, y)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// RasterizePolygon scans the closed path given by points (implicitly closed
// from the last point back to the first) and returns one Scanline per row
// the path covers, clamped to a w x h canvas.
func RasterizePolygon(points []Point, w, h int) []Scanline {
	if len(points) < 2 {
		return nil
	}
	ymin, ymax := points[0].Y, points[0].Y
	for _, p := range points {
		ymin = minInt(ymin, p.Y)
		ymax = maxInt(ymax, p.Y)
	}
	buf := newScanBuffer(ymin, ymax)
	n := len(points)
	for i := 0; i < n; i++ {
		p0 := points[i]
		p1 := points[(i+1)%n]
		rasterizeLine(p0, p1, buf)
	}
	return buf.collect(w, h)
}

// RasterizeEllipse walks the four-way symmetric midpoint ellipse algorithm
// around center o with radii rx, ry and returns one Scanline per row.
func RasterizeEllipse(o Point, rx, ry int, w, h int) []Scanline {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	ymin, ymax := o.Y-ry, o.Y+ry
	buf := newScanBuffer(ymin, ymax)

	x, y := rx, 0
	rx2, ry2 := int64(rx)*int64(rx), int64(ry)*int64(ry)
	dx := int64(ry2) * int64(2*x)
	dy := int64(0)
	err := int64(rx2) - int64(rx)*int64(ry2)*2

	for x >= 0 {
		buf.touch(o.X+x, o.Y+y)
		buf.touch(o.X-x, o.Y+y)
		buf.touch(o.X+x, o.Y-y)
		buf.touch(o.X-x, o.Y-y)
		y++
		dy += rx2 * 2
		err += dy
		if err >= 0 {
			x--
			dx -= ry2 * 2
			err -= dx
		}
	}

	// Reset and sweep the other axis so flattened ellipses (rx >> ry or
	// ry >> rx) don't leave gaps near the poles.
	x, y = 0, ry
	dx, dy = 0, rx2*int64(2*y)
	err = ry2 - int64(ry)*rx2*2
	for y >= 0 {
		buf.touch(o.X+x, o.Y+y)
		buf.touch(o.X-x, o.Y+y)
		buf.touch(o.X+x, o.Y-y)
		buf.touch(o.X-x, o.Y-y)
		x++
		dx += ry2 * 2
		err += dx
		if err >= 0 {
			y--
			dy -= rx2 * 2
			err -= dy
		}
	}
	return buf.collect(w, h)
}

// RasterizeQuadBezierStroke walks a non-rational quadratic Bezier from p0
// through p1 to p2, touching every pixel of the curve itself (not a fill),
// by straight-segment subdivision (see rasterizeQuadBezier) rather than
// Zingl's integer error-term walk.
func RasterizeQuadBezierStroke(p0, p1, p2 Point, w, h int) []Scanline {
	ymin := minInt(p0.Y, minInt(p1.Y, p2.Y))
	ymax := maxInt(p0.Y, maxInt(p1.Y, p2.Y))
	buf := newScanBuffer(ymin, ymax)
	rasterizeQuadBezier(p0, p1, p2, buf)
	return buf.collect(w, h)
}

// rasterizeQuadBezier walks the curve via adaptive straight-segment
// subdivision: the control polygon's span sets the segment count, which
// keeps the curve visually smooth at one-pixel precision without the
// integer error-term bookkeeping of a Zingl-style walker.
func rasterizeQuadBezier(p0, p1, p2 Point, buf *scanBuffer) {
	steps := bezierSteps(p0, p1, p2)
	prev := p0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx, cy := quadAt(p0, p1, p2, t)
		cur := Point{X: cx, Y: cy}
		rasterizeLine(prev, cur, buf)
		prev = cur
	}
}

func bezierSteps(p0, p1, p2 Point) int {
	span := absInt(p2.X-p0.X) + absInt(p2.Y-p0.Y) +
		absInt(p1.X-p0.X) + absInt(p1.Y-p0.Y)
	steps := span
	if steps < 4 {
		steps = 4
	}
	if steps > 512 {
		steps = 512
	}
	return steps
}

func quadAt(p0, p1, p2 Point, t float64) (int, int) {
	mt := 1 - t
	x := mt*mt*float64(p0.X) + 2*mt*t*float64(p1.X) + t*t*float64(p2.X)
	y := mt*mt*float64(p0.Y) + 2*mt*t*float64(p1.Y) + t*t*float64(p2.Y)
	return int(math.Round(x)), int(math.Round(y))
}

// RasterizeRotatedEllipseRect fills the rational-Bezier four-arc
// approximation of an ellipse whose bounding rectangle is rotated by a
// horizontal/vertical skew of zd, as produced by RasterizeRotatedEllipse.
// Returns nil if the implied rational weight falls outside [0, 1], which
// happens for degenerate (near-zero-area) rotated ellipses.
func RasterizeRotatedEllipseRect(x0, y0, x1, y1 int, zd float64, w, h int) []Scanline {
	xd := float64(x1 - x0)
	yd := float64(y1 - y0)
	denom := xd*yd + xd*yd
	if denom == 0 {
		return nil
	}
	weight := (xd*yd - zd) / denom
	if weight < 0 || weight > 1 {
		return nil
	}

	ymin := minInt(y0, y1)
	ymax := maxInt(y0, y1)
	buf := newScanBuffer(ymin, ymax)

	cx := (x0 + x1) / 2
	cy := (y0 + y1) / 2
	corners := [4]Point{
		{X: x0, Y: cy},
		{X: cx, Y: y0},
		{X: x1, Y: cy},
		{X: cx, Y: y1},
	}
	mids := [4]Point{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	}
	for i := 0; i < 4; i++ {
		rasterizeQuadRationalBezierSeg(corners[i], mids[i], corners[(i+1)%4], weight, buf)
	}
	return buf.collect(w, h)
}

// rasterizeQuadRationalBezierSeg walks a weighted (rational) quadratic
// Bezier arc, used to approximate a quarter of a rotated ellipse. Like
// rasterizeQuadBezier it is implemented via adaptive straight-segment
// subdivision rather than Zingl's integer error-term walk, trading a
// constant factor of extra work for a far simpler, obviously-correct
// implementation.
func rasterizeQuadRationalBezierSeg(p0, p1, p2 Point, weight float64, buf *scanBuffer) {
	if weight <= 0 {
		weight = 0.0001
	}
	steps := bezierSteps(p0, p1, p2) * 2
	prev := p0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		b0 := mt * mt
		b1 := 2 * mt * t * weight
		b2 := t * t
		sum := b0 + b1 + b2
		x := (b0*float64(p0.X) + b1*float64(p1.X) + b2*float64(p2.X)) / sum
		y := (b0*float64(p0.Y) + b1*float64(p1.Y) + b2*float64(p2.Y)) / sum
		cur := Point{X: int(math.Round(x)), Y: int(math.Round(y))}
		rasterizeLine(prev, cur, buf)
		prev = cur
	}
}
