package export

import (
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopherforge/primish/internal/geom"
	"github.com/gopherforge/primish/internal/search"
)

func sampleHistory(t *testing.T, n int) []search.State {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	kinds := []geom.Kind{geom.KindTriangle, geom.KindEllipse, geom.KindRectangle}
	history := make([]search.State, n)
	for i := 0; i < n; i++ {
		shape := geom.Random(kinds[i%len(kinds)], 32, 32, rng)
		history[i] = search.State{
			Shape: shape,
			Color: color.NRGBA{R: uint8(i * 10), G: 100, B: 200, A: 200},
			Score: 1.0 / float64(i+1),
		}
	}
	return history
}

func TestSVGDocumentContainsEachShape(t *testing.T) {
	history := sampleHistory(t, 3)
	doc := SVGDocument(history, len(history), 32, 32, 1.0, color.NRGBA{A: 255})

	if !strings.HasPrefix(doc, "<svg") || !strings.HasSuffix(doc, "</svg>") {
		t.Fatalf("expected a well-formed svg document, got: %s", doc)
	}
	if strings.Count(doc, "fill-opacity") < len(history) {
		t.Fatalf("expected one filled element per shape in %s", doc)
	}
}

func TestLastShapeSVGEmptyWhenNoHistory(t *testing.T) {
	if got := LastShapeSVG(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestRasterizeProducesCorrectDimensions(t *testing.T) {
	history := sampleHistory(t, 4)
	img := Rasterize(history, len(history), 32, 32, 1.0, color.NRGBA{A: 255})
	b := img.Bounds()
	if b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("unexpected raster dimensions: %v", b)
	}
}

func TestRasterizeScalesOutputDimensions(t *testing.T) {
	history := sampleHistory(t, 4)
	img := Rasterize(history, len(history), 32, 32, 4.0, color.NRGBA{A: 255})
	b := img.Bounds()
	if b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("expected a 128x128 raster at scale 4, got %v", b)
	}
}

func TestFormatFramePathSubstitutesIndex(t *testing.T) {
	got := FormatFramePath("frame-{}.png", 7)
	if got != "frame-7.png" {
		t.Fatalf("got %q", got)
	}
}

func TestSavePNGWritesFile(t *testing.T) {
	history := sampleHistory(t, 2)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	if err := Save(path, history, 32, 32, 1.0, color.NRGBA{A: 255}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
}

func TestSaveGIFAlsoWritesFinalPNG(t *testing.T) {
	history := sampleHistory(t, 2)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gif")

	if err := Save(path, history, 32, 32, 1.0, color.NRGBA{A: 255}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected gif to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.png")); err != nil {
		t.Fatalf("expected companion png to exist: %v", err)
	}
}

func TestSaveSVGWithPlaceholderWritesOneFilePerShape(t *testing.T) {
	history := sampleHistory(t, 3)
	dir := t.TempDir()
	path := filepath.Join(dir, "frame-{}.svg")

	if err := Save(path, history, 32, 32, 1.0, color.NRGBA{A: 255}); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		if _, err := os.Stat(filepath.Join(dir, strings.Replace("frame-{}.svg", "{}", itoa(i), 1))); err != nil {
			t.Fatalf("expected frame %d to exist: %v", i, err)
		}
	}
}

func itoa(i int) string {
	return FormatFramePath("{}", i)
}
