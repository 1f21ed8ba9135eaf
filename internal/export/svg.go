// Package export turns a committed shape history into the three output
// forms the engine promises: an SVG document, a flattened raster image,
// and an animated GIF with one frame per committed shape.
package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gopherforge/primish/internal/search"
)

// attrString builds the fill/fill-opacity attribute pair shared by every
// shape's SVG element.
func attrString(c color.NRGBA) string {
	return fmt.Sprintf(`fill="#%02x%02x%02x" fill-opacity="%s"`,
		c.R, c.G, c.B, trimTrailingZeros(float64(c.A)/255))
}

func trimTrailingZeros(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" {
		return "0"
	}
	return s
}

// SVGDocument renders history[:upTo] as a standalone SVG document with bg
// as the background rect, sized w x h and scaled by scale.
func SVGDocument(history []search.State, upTo int, w, h int, scale float64, bg color.NRGBA) string {
	if upTo > len(history) {
		upTo = len(history)
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d">`,
		int(float64(w)*scale), int(float64(h)*scale))
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="#%02x%02x%02x"/>`,
		int(float64(w)*scale), int(float64(h)*scale), bg.R, bg.G, bg.B)
	fmt.Fprintf(&b, `<g transform="scale(%g) translate(0.5 0.5)">`, scale)
	for i := 0; i < upTo; i++ {
		s := history[i]
		b.WriteString(s.Shape.SVG(attrString(s.Color)))
	}
	b.WriteString(`</g></svg>`)
	return b.String()
}

// LastShapeSVG returns the SVG fragment for the most recently committed
// shape, or "" if history is empty, for callers that render incrementally
// themselves instead of re-fetching the whole document every step.
func LastShapeSVG(history []search.State) string {
	if len(history) == 0 {
		return ""
	}
	last := history[len(history)-1]
	return last.Shape.SVG(attrString(last.Color))
}
