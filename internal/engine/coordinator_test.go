package engine

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/gopherforge/primish/internal/geom"
	"github.com/gopherforge/primish/internal/search"
)

func testSourceImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 6), G: uint8(y * 6), B: 80, A: 255})
		}
	}
	return img
}

func TestRunnerStepImprovesCanvasScore(t *testing.T) {
	canvas, err := NewCanvas(testSourceImage(), 40, 40, 128, nil)
	if err != nil {
		t.Fatal(err)
	}
	initial := canvas.Score

	r := NewRunner(canvas, Config{Kind: geom.KindTriangle, WorkerCount: 2, N: 8, M: 2, Age: 10, Alpha: 128})
	r.Init()
	defer r.Stop()

	if _, err := r.Step(); err != nil {
		t.Fatal(err)
	}
	if canvas.Score >= initial {
		t.Fatalf("expected score to improve: initial=%v got=%v", initial, canvas.Score)
	}
	if len(r.History()) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(r.History()))
	}
}

func TestRunnerReinitAfterStop(t *testing.T) {
	canvas, err := NewCanvas(testSourceImage(), 40, 40, 128, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(canvas, Config{Kind: geom.KindRectangle, WorkerCount: 2, N: 4, M: 1, Age: 5, Alpha: 200})

	r.Init()
	if _, err := r.Step(); err != nil {
		t.Fatal(err)
	}
	r.Stop()

	r.Init()
	if _, err := r.Step(); err != nil {
		t.Fatalf("expected Step to work after re-Init: %v", err)
	}
	r.Stop()
}

func TestRunnerRunFixedShapeCount(t *testing.T) {
	canvas, err := NewCanvas(testSourceImage(), 40, 40, 128, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(canvas, Config{Kind: geom.KindCombo, WorkerCount: 2, N: 4, M: 1, Age: 5, Alpha: 128})

	var steps int
	r.OnStep(func(i int, s search.State) { steps = i })

	if err := r.Run(context.Background(), 3, 0); err != nil {
		t.Fatal(err)
	}
	if len(r.History()) != 3 {
		t.Fatalf("expected 3 committed shapes, got %d", len(r.History()))
	}
	if steps != 3 {
		t.Fatalf("expected OnStep to observe 3 steps, got %d", steps)
	}
}

func TestRunnerRunRespectsCancellation(t *testing.T) {
	canvas, err := NewCanvas(testSourceImage(), 40, 40, 128, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(canvas, Config{Kind: geom.KindCircle, WorkerCount: 2, N: 4, M: 1, Age: 5, Alpha: 128})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx, 100, 0); err == nil {
		t.Fatal("expected cancellation error")
	}
}
