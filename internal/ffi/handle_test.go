package ffi

import (
	"image"
	"image/color"
	"testing"
)

func testSourceImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: 60, A: 255})
		}
	}
	return img
}

func TestOpenRegistersHandle(t *testing.T) {
	id, h, err := Open(Params{Input: testSourceImage(), Resize: 32, Size: 32, Alpha: 128, Mode: 1})
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Fatal("expected a nonzero handle id")
	}
	if Lookup(id) != h {
		t.Fatalf("Lookup(%d) did not return the handle Open returned", id)
	}
	Close(id)
}

func TestOpenRejectsUnknownMode(t *testing.T) {
	if _, _, err := Open(Params{Input: testSourceImage(), Resize: 32, Size: 32, Alpha: 128, Mode: 99}); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}

func TestCloseMakesLookupNil(t *testing.T) {
	id, _, err := Open(Params{Input: testSourceImage(), Resize: 32, Size: 32, Alpha: 128, Mode: 4})
	if err != nil {
		t.Fatal(err)
	}
	Close(id)
	if Lookup(id) != nil {
		t.Fatal("expected Lookup to return nil after Close")
	}
}

func TestStepCommitsShapeAndImprovesScore(t *testing.T) {
	id, h, err := Open(Params{Input: testSourceImage(), Resize: 32, Size: 32, Alpha: 128, Mode: 4})
	if err != nil {
		t.Fatal(err)
	}
	defer Close(id)

	before := h.Info().Score
	if h.LastShapeSVG() != "" {
		t.Fatal("expected no last shape before the first Step")
	}
	if err := h.Step(); err != nil {
		t.Fatal(err)
	}
	after := h.Info().Score
	if after >= before {
		t.Fatalf("expected score to improve after Step: before=%v after=%v", before, after)
	}
	if h.LastShapeSVG() == "" {
		t.Fatal("expected a last shape after Step")
	}
}

func TestBackgroundMatchesCanvas(t *testing.T) {
	bg := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	id, h, err := Open(Params{Input: testSourceImage(), Resize: 32, Size: 32, Alpha: 128, Mode: 2, Background: &bg})
	if err != nil {
		t.Fatal(err)
	}
	defer Close(id)
	if got := h.Background(); got != bg {
		t.Fatalf("expected background %v, got %v", bg, got)
	}
}
