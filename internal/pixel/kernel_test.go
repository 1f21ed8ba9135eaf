package pixel

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gopherforge/primish/internal/geom"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDiffFullZeroForIdenticalImages(t *testing.T) {
	img := solidImage(10, 10, color.NRGBA{R: 200, G: 50, B: 10, A: 255})
	if got := DiffFull(img, img); got != 0 {
		t.Fatalf("expected 0 distance for identical images, got %v", got)
	}
}

func TestDiffFullMaximalForOppositeColors(t *testing.T) {
	a := solidImage(4, 4, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	b := solidImage(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	got := DiffFull(a, b)
	if got < 0.85 || got > 1.0001 {
		t.Fatalf("expected near-maximal distance, got %v", got)
	}
}

func TestDiffPartialMatchesDiffFullAfterDraw(t *testing.T) {
	origin := solidImage(20, 20, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	before := solidImage(20, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	priorScore := DiffFull(origin, before)

	lines := []geom.Scanline{
		{Y: 5, X1: 2, X2: 15},
		{Y: 6, X1: 2, X2: 15},
	}
	fill := color.NRGBA{R: 10, G: 200, B: 30, A: 255}

	got := DiffPartial(origin, before, lines, priorScore, fill)

	after := cloneImage(before)
	Draw(after, lines, fill)
	want := DiffFull(origin, after)

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("DiffPartial diverged from DiffFull: got %v want %v", got, want)
	}
}

func cloneImage(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

func TestOptimalColorRecoversOriginAtFullAlpha(t *testing.T) {
	origin := solidImage(8, 8, color.NRGBA{R: 120, G: 64, B: 200, A: 255})
	before := solidImage(8, 8, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	lines := []geom.Scanline{{Y: 3, X1: 0, X2: 7}}

	c := OptimalColor(origin, before, lines, 255)
	if c.R != 120 || c.G != 64 || c.B != 200 {
		t.Fatalf("expected exact recovery at alpha=255, got %+v", c)
	}
}

func TestDrawSkipsOutOfBoundsRows(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{A: 255})
	Draw(img, []geom.Scanline{{Y: -1, X1: 0, X2: 3}, {Y: 10, X1: 0, X2: 3}}, color.NRGBA{R: 9, A: 255})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if img.NRGBAAt(x, y).R != 0 {
				t.Fatalf("expected no change from out-of-bounds scanlines")
			}
		}
	}
}
