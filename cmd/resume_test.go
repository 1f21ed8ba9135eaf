package main

import (
	"image/color"
	"testing"

	"github.com/gopherforge/primish/internal/geom"
	"github.com/gopherforge/primish/internal/search"
)

func TestModeIndexRoundTrips(t *testing.T) {
	for m := 0; m <= 8; m++ {
		k, err := shapeKind(m)
		if err != nil {
			t.Fatal(err)
		}
		if got := modeIndex(k.String()); got != m {
			t.Errorf("modeIndex(%q) = %d, want %d", k.String(), got, m)
		}
	}
}

func TestModeIndexUnknown(t *testing.T) {
	if got := modeIndex("not-a-real-mode"); got != -1 {
		t.Errorf("expected -1 for an unknown mode name, got %d", got)
	}
}

func TestColorBytesRoundTrip(t *testing.T) {
	want := color.NRGBA{R: 10, G: 20, B: 30, A: 40}
	shape := &geom.Triangle{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 5, Y: 0}, P2: geom.Point{X: 0, Y: 5}}
	history := []search.State{{Shape: shape, Color: want}}
	bytes := colorBytes(history)
	if len(bytes) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(bytes))
	}
	got := colorFromBytes(bytes[0])
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}
