// Package ffi is the host-callable surface: init/reset, step, stop, and a
// small set of read-only getters a host application (the C-exported
// wrapper in cmd/ffi) polls between steps. It is pure Go and holds no
// cgo-specific state so it can be unit tested directly; cmd/ffi is the
// thin cgo skin on top of it.
package ffi

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gopherforge/primish/internal/engine"
	"github.com/gopherforge/primish/internal/export"
	"github.com/gopherforge/primish/internal/geom"
)

// Params mirrors the fields a host passes to Init: everything needed to
// build a Canvas and Runner for one job.
type Params struct {
	Input      image.Image
	Resize     uint
	Size       uint
	Alpha      uint8
	Mode       int
	Background *color.NRGBA
}

// ContextInfo is the read-only snapshot the host polls for progress
// display: canvas dimensions, export scale, and current score.
type ContextInfo struct {
	W, H  int
	Scale float64
	Score float64
}

// Handle owns one job's Canvas and Runner, the unit of state an opaque
// handle from Open identifies. The zero value is not usable; construct via
// Open.
type Handle struct {
	mu      sync.Mutex
	canvas  *engine.Canvas
	runner  *engine.Runner
	last    geom.Shape
	lastCol color.NRGBA
}

var (
	registryMu sync.Mutex
	registry   = map[int]*Handle{}
	nextID     = 1
)

// Open constructs a new Handle from params and registers it under a fresh
// id, returning both. Registration is the "legacy concession" process-wide
// table the FFI wrapper needs to hand a bare integer across the cgo
// boundary; Handle itself carries no global state of its own.
func Open(params Params) (int, *Handle, error) {
	canvas, err := engine.NewCanvas(params.Input, params.Resize, params.Size, params.Alpha, params.Background)
	if err != nil {
		return 0, nil, fmt.Errorf("ffi: init: %w", err)
	}
	kind, err := kindFromMode(params.Mode)
	if err != nil {
		return 0, nil, fmt.Errorf("ffi: init: %w", err)
	}
	h := &Handle{
		canvas: canvas,
		runner: engine.NewRunner(canvas, engine.Config{
			Kind:        kind,
			WorkerCount: 0, // resolved to 1 by NewRunner if left at zero
			N:           140,
			M:           16,
			Age:         100,
			Alpha:       params.Alpha,
		}),
	}
	h.runner.Init()

	registryMu.Lock()
	id := nextID
	nextID++
	registry[id] = h
	registryMu.Unlock()
	return id, h, nil
}

// Lookup retrieves a previously Open'd Handle by id, or nil if it has been
// closed or never existed.
func Lookup(id int) *Handle {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[id]
}

// Close stops id's worker pool and removes it from the registry. Stepping
// a closed id is a no-op from the caller's perspective: Lookup returns nil
// and callers are expected to treat that as "nothing to do", matching the
// FFI contract that host-visible failures degrade to neutral values rather
// than aborting.
func Close(id int) {
	registryMu.Lock()
	h := registry[id]
	delete(registry, id)
	registryMu.Unlock()
	if h != nil {
		h.mu.Lock()
		h.runner.Stop()
		h.mu.Unlock()
	}
}

func kindFromMode(mode int) (geom.Kind, error) {
	switch mode {
	case 0:
		return geom.KindCombo, nil
	case 1:
		return geom.KindTriangle, nil
	case 2:
		return geom.KindRectangle, nil
	case 3:
		return geom.KindEllipse, nil
	case 4:
		return geom.KindCircle, nil
	case 5:
		return geom.KindRotatedRectangle, nil
	case 6:
		return geom.KindQuadratic, nil
	case 7:
		return geom.KindRotatedEllipse, nil
	case 8:
		return geom.KindPolygon, nil
	default:
		return 0, fmt.Errorf("unknown mode %d", mode)
	}
}

// Step performs one coordinator step and remembers its shape/color as the
// "last shape" the host can fetch for incremental rendering.
func (h *Handle) Step() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, err := h.runner.Step()
	if err != nil {
		return err
	}
	h.last = st.Shape
	h.lastCol = st.Color
	return nil
}

// Stop tells the handle's worker pool to exit; a subsequent Step is a
// no-op error rather than a panic, matching the "End makes step a no-op"
// invariant.
func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runner.Stop()
}

// Background returns the canvas's starting background color.
func (h *Handle) Background() color.NRGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canvas.Bg
}

// Info returns the canvas's current dimensions, scale and score.
func (h *Handle) Info() ContextInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.canvas.Mu.RLock()
	score := h.canvas.Score
	h.canvas.Mu.RUnlock()
	return ContextInfo{W: h.canvas.W, H: h.canvas.H, Scale: h.canvas.Scale, Score: score}
}

// LastShapeSVG returns the SVG fragment for the most recently committed
// shape, or "" before the first Step.
func (h *Handle) LastShapeSVG() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		return ""
	}
	c := fmt.Sprintf(`fill="#%02x%02x%02x" fill-opacity="%g"`, h.lastCol.R, h.lastCol.G, h.lastCol.B, float64(h.lastCol.A)/255)
	return h.last.SVG(c)
}

// Export renders the handle's full history to path via the export
// package, following the same extension-based routing run/resume use.
func (h *Handle) Export(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	history := h.runner.History()
	return export.Save(path, history, h.canvas.W, h.canvas.H, h.canvas.Scale, h.canvas.Bg)
}
