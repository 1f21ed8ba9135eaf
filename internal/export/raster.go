package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/math/f32"
	xvector "golang.org/x/image/vector"

	"github.com/gopherforge/primish/internal/geom"
	"github.com/gopherforge/primish/internal/search"
)

// Rasterize flattens history[:upTo] onto a (w*scale) x (h*scale) canvas
// filled with bg, anti-aliasing each shape's edges with
// golang.org/x/image/vector instead of the engine's own scanline fill,
// which is deliberately aliased so the search scores a consistent,
// cheap-to-diff pixel grid. scale is the output size divided by the size
// shapes were fit against (Canvas.Scale); this is the path used for the
// final PNG/GIF-frame export, where visual quality and output resolution
// matter more than evaluation speed.
func Rasterize(history []search.State, upTo, w, h int, scale float64, bg color.NRGBA) *image.NRGBA {
	if upTo > len(history) {
		upTo = len(history)
	}
	if scale <= 0 {
		scale = 1
	}
	outW := int(math.Round(float64(w) * scale))
	outH := int(math.Round(float64(h) * scale))
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	out := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	z := xvector.NewRasterizer(outW, outH)
	for i := 0; i < upTo; i++ {
		s := history[i]
		z.Reset(outW, outH)
		if !buildPath(z, s.Shape, scale) {
			continue
		}
		z.Draw(out, out.Bounds(), &image.Uniform{C: s.Color}, image.Point{})
	}
	return out
}

// buildPath traces shape's outline into z, scaling every coordinate by
// scale. It returns false for shapes that carry no fillable area (the
// Quadratic stroke), which are skipped in the anti-aliased raster path
// since x/image/vector only fills closed paths; the stroke still appears
// in the SVG document and in the engine's own scanline-based evaluation.
func buildPath(z *xvector.Rasterizer, shape geom.Shape, scale float64) bool {
	switch s := shape.(type) {
	case *geom.Triangle:
		polyPath(z, []geom.Point{s.P0, s.P1, s.P2}, scale)
	case *geom.Rectangle:
		rectPath(z, s.P, s.Width, s.Height, 0, geom.Point{}, scale)
	case *geom.RotatedRectangle:
		center := geom.Point{X: s.Rect.P.X + s.Rect.Width/2, Y: s.Rect.P.Y + s.Rect.Height/2}
		rectPath(z, s.Rect.P, s.Rect.Width, s.Rect.Height, s.Degree, center, scale)
	case *geom.Ellipse:
		ellipsePath(z, s.O, float64(s.RX), float64(s.RY), 0, scale)
	case *geom.Circle:
		ellipsePath(z, s.O, float64(s.RX), float64(s.RY), 0, scale)
	case *geom.RotatedEllipse:
		ellipsePath(z, s.O, float64(s.RX), float64(s.RY), s.Degree, scale)
	case *geom.Polygon:
		polyPath(z, s.Points[:], scale)
	case *geom.Combo:
		return buildPath(z, s.Inner(), scale)
	case *geom.Quadratic:
		return false
	default:
		return false
	}
	return true
}

func vec(p geom.Point, scale float64) f32.Vec2 {
	return f32.Vec2{float32(float64(p.X) * scale), float32(float64(p.Y) * scale)}
}

func polyPath(z *xvector.Rasterizer, pts []geom.Point, scale float64) {
	if len(pts) == 0 {
		return
	}
	z.MoveTo(vec(pts[0], scale))
	for _, p := range pts[1:] {
		z.LineTo(vec(p, scale))
	}
	z.ClosePath()
}

func rectPath(z *xvector.Rasterizer, p geom.Point, w, h int, degree float64, center geom.Point, scale float64) {
	corners := []geom.Point{
		{X: p.X, Y: p.Y},
		{X: p.X + w, Y: p.Y},
		{X: p.X + w, Y: p.Y + h},
		{X: p.X, Y: p.Y + h},
	}
	if degree != 0 {
		for i, c := range corners {
			corners[i] = rotateAround(center, c, degree)
		}
	}
	polyPath(z, corners, scale)
}

func rotateAround(center, p geom.Point, degree float64) geom.Point {
	rad := degree * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	dx := float64(p.X - center.X)
	dy := float64(p.Y - center.Y)
	return geom.Point{
		X: center.X + int(math.Round(dx*cos-dy*sin)),
		Y: center.Y + int(math.Round(dx*sin+dy*cos)),
	}
}

// kappa is the standard Bezier approximation constant for a quarter circle.
const kappa = 0.5522847498

func ellipsePath(z *xvector.Rasterizer, o geom.Point, rx, ry float64, degree float64, scale float64) {
	rad := degree * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	at := func(x, y float64) f32.Vec2 {
		rx2 := x*cos - y*sin
		ry2 := x*sin + y*cos
		return f32.Vec2{
			float32((float64(o.X) + rx2) * scale),
			float32((float64(o.Y) + ry2) * scale),
		}
	}

	ox, oy := rx*kappa, ry*kappa
	z.MoveTo(at(rx, 0))
	z.CubeTo(at(rx, oy), at(ox, ry), at(0, ry))
	z.CubeTo(at(-ox, ry), at(-rx, oy), at(-rx, 0))
	z.CubeTo(at(-rx, -oy), at(-ox, -ry), at(0, -ry))
	z.CubeTo(at(ox, -ry), at(rx, -oy), at(rx, 0))
	z.ClosePath()
}

// placeholderToken is the substring export paths may contain to request
// one numbered file per committed shape instead of a single output file.
const placeholderToken = "{}"

// FormatFramePath substitutes index into path's placeholder token, or
// returns path unchanged if it has none.
func FormatFramePath(path string, index int) string {
	out := ""
	for {
		i := indexOf(path, placeholderToken)
		if i < 0 {
			return out + path
		}
		out += path[:i] + fmt.Sprintf("%d", index)
		path = path[i+len(placeholderToken):]
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
