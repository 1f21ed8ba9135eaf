package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// replaceFillWithStroke turns a "fill=... fill-opacity=..." attribute
// string into its "stroke=... stroke-opacity=..." equivalent, for the one
// shape family (Quadratic) that is drawn as a stroke instead of a fill.
func replaceFillWithStroke(attrs string) string {
	return strings.ReplaceAll(attrs, "fill", "stroke")
}

// svgPolygonLike renders a <polygon .../> (or any tag taking a points
// attribute) from a closed vertex list.
func svgPolygonLike(tag string, pts []Point, attrs string) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
	}
	return fmt.Sprintf(`<%s points="%s" %s/>`, tag, strings.Join(parts, " "), attrs)
}
