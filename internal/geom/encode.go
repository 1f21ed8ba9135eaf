package geom

// Encoded is a flat, JSON-friendly serialization of a Shape, used to
// persist checkpoints. Params holds each shape family's own fields in a
// fixed order (see Encode); Inner is only populated for KindCombo, which
// wraps another encoded shape rather than carrying its own params.
type Encoded struct {
	Kind   Kind     `json:"kind"`
	Params []float64 `json:"params,omitempty"`
	Inner  *Encoded  `json:"inner,omitempty"`
}

// Encode flattens shape into its Encoded form.
func Encode(shape Shape) Encoded {
	switch s := shape.(type) {
	case *Triangle:
		return Encoded{Kind: KindTriangle, Params: []float64{
			float64(s.P0.X), float64(s.P0.Y),
			float64(s.P1.X), float64(s.P1.Y),
			float64(s.P2.X), float64(s.P2.Y),
		}}
	case *Rectangle:
		return Encoded{Kind: KindRectangle, Params: []float64{
			float64(s.P.X), float64(s.P.Y), float64(s.Width), float64(s.Height),
		}}
	case *RotatedRectangle:
		return Encoded{Kind: KindRotatedRectangle, Params: []float64{
			float64(s.Rect.P.X), float64(s.Rect.P.Y),
			float64(s.Rect.Width), float64(s.Rect.Height), s.Degree,
		}}
	case *Ellipse:
		return Encoded{Kind: KindEllipse, Params: []float64{
			float64(s.O.X), float64(s.O.Y), float64(s.RX), float64(s.RY),
		}}
	case *Circle:
		return Encoded{Kind: KindCircle, Params: []float64{
			float64(s.O.X), float64(s.O.Y), float64(s.RX),
		}}
	case *RotatedEllipse:
		return Encoded{Kind: KindRotatedEllipse, Params: []float64{
			float64(s.O.X), float64(s.O.Y), float64(s.RX), float64(s.RY), s.Degree,
		}}
	case *Quadratic:
		return Encoded{Kind: KindQuadratic, Params: []float64{
			float64(s.P0.X), float64(s.P0.Y),
			float64(s.P1.X), float64(s.P1.Y),
			float64(s.P2.X), float64(s.P2.Y),
		}}
	case *Polygon:
		params := make([]float64, 0, 8)
		for _, p := range s.Points {
			params = append(params, float64(p.X), float64(p.Y))
		}
		return Encoded{Kind: KindPolygon, Params: params}
	case *Combo:
		inner := Encode(s.inner)
		return Encoded{Kind: KindCombo, Inner: &inner}
	default:
		return Encoded{}
	}
}

// Decode reconstructs a Shape from its Encoded form.
func Decode(e Encoded) Shape {
	p := e.Params
	switch e.Kind {
	case KindTriangle:
		return &Triangle{
			P0: Point{int(p[0]), int(p[1])},
			P1: Point{int(p[2]), int(p[3])},
			P2: Point{int(p[4]), int(p[5])},
		}
	case KindRectangle:
		return &Rectangle{P: Point{int(p[0]), int(p[1])}, Width: int(p[2]), Height: int(p[3])}
	case KindRotatedRectangle:
		return &RotatedRectangle{
			Rect:   Rectangle{P: Point{int(p[0]), int(p[1])}, Width: int(p[2]), Height: int(p[3])},
			Degree: p[4],
		}
	case KindEllipse:
		return &Ellipse{O: Point{int(p[0]), int(p[1])}, RX: int(p[2]), RY: int(p[3])}
	case KindCircle:
		return &Circle{Ellipse{O: Point{int(p[0]), int(p[1])}, RX: int(p[2]), RY: int(p[2])}}
	case KindRotatedEllipse:
		return &RotatedEllipse{O: Point{int(p[0]), int(p[1])}, RX: int(p[2]), RY: int(p[3]), Degree: p[4]}
	case KindQuadratic:
		return &Quadratic{
			P0: Point{int(p[0]), int(p[1])},
			P1: Point{int(p[2]), int(p[3])},
			P2: Point{int(p[4]), int(p[5])},
		}
	case KindPolygon:
		var poly Polygon
		for i := 0; i < 4 && 2*i+1 < len(p); i++ {
			poly.Points[i] = Point{int(p[2*i]), int(p[2*i+1])}
		}
		return &poly
	case KindCombo:
		if e.Inner == nil {
			return nil
		}
		return &Combo{inner: Decode(*e.Inner)}
	default:
		return nil
	}
}
