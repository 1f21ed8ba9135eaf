// Command ffi builds a C-exported shared library exposing the engine as a
// host-callable surface: init/step/stop plus a handful of read-only getters
// a caller polls between steps. It is the cgo skin over internal/ffi, kept
// in its own build-tagged package so the ordinary CLI build never needs a
// C toolchain.
//
//go:build ffi

package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"unsafe"

	"github.com/gopherforge/primish/internal/ffi"
)

// primish_init decodes the image at path, builds a canvas and worker pool
// for the given mode (0-8, see internal/ffi.kindFromMode) and alpha bias,
// and returns an opaque handle id. A return of 0 means init failed.
//
//export primish_init
func primish_init(path *C.char, resize, size C.int, alpha C.int, mode C.int) C.int {
	f, err := os.Open(C.GoString(path))
	if err != nil {
		return 0
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return 0
	}
	id, _, err := ffi.Open(ffi.Params{
		Input:  src,
		Resize: uint(resize),
		Size:   uint(size),
		Alpha:  uint8(alpha),
		Mode:   int(mode),
	})
	if err != nil {
		return 0
	}
	return C.int(id)
}

// primish_step runs one coordinator step on handle and returns the
// resulting score, or -1 if the handle is unknown or the step failed.
//
//export primish_step
func primish_step(handle C.int) C.double {
	h := ffi.Lookup(int(handle))
	if h == nil {
		return -1
	}
	if err := h.Step(); err != nil {
		return -1
	}
	return C.double(h.Info().Score)
}

// primish_stop tears down handle's worker pool and releases it. Stepping
// the handle afterward is a no-op from the caller's side: primish_step
// returns -1 once the handle no longer resolves.
//
//export primish_stop
func primish_stop(handle C.int) {
	ffi.Close(int(handle))
}

// primish_get_ctx_info writes handle's canvas width, height and scale into
// the provided out-params and returns the current score, or -1 if handle
// is unknown.
//
//export primish_get_ctx_info
func primish_get_ctx_info(handle C.int, w, h *C.int, scale *C.double) C.double {
	hd := ffi.Lookup(int(handle))
	if hd == nil {
		return -1
	}
	info := hd.Info()
	if w != nil {
		*w = C.int(info.W)
	}
	if h != nil {
		*h = C.int(info.H)
	}
	if scale != nil {
		*scale = C.double(info.Scale)
	}
	return C.double(info.Score)
}

// primish_get_bg writes handle's background color as four bytes (R,G,B,A)
// into out, which must point at a 4-byte buffer. Returns 0 on success, -1
// if handle is unknown.
//
//export primish_get_bg
func primish_get_bg(handle C.int, out *C.uchar) C.int {
	hd := ffi.Lookup(int(handle))
	if hd == nil {
		return -1
	}
	bg := hd.Background()
	buf := (*[4]C.uchar)(unsafe.Pointer(out))
	buf[0] = C.uchar(bg.R)
	buf[1] = C.uchar(bg.G)
	buf[2] = C.uchar(bg.B)
	buf[3] = C.uchar(bg.A)
	return 0
}

// primish_get_last_shape returns the most recently committed shape as an
// SVG fragment, heap-allocated with C.CString. The caller must release it
// with primish_free_str. Returns NULL if handle is unknown or no shape has
// been committed yet.
//
//export primish_get_last_shape
func primish_get_last_shape(handle C.int) *C.char {
	hd := ffi.Lookup(int(handle))
	if hd == nil {
		return nil
	}
	svg := hd.LastShapeSVG()
	if svg == "" {
		return nil
	}
	return C.CString(svg)
}

// primish_export renders handle's full committed history to path, format
// selected by its extension, matching the CLI's run/resume output routing.
// Returns 0 on success, -1 on failure.
//
//export primish_export
func primish_export(handle C.int, path *C.char) C.int {
	hd := ffi.Lookup(int(handle))
	if hd == nil {
		return -1
	}
	if err := hd.Export(C.GoString(path)); err != nil {
		return -1
	}
	return 0
}

// primish_free_str releases a string previously returned by
// primish_get_last_shape.
//
//export primish_free_str
func primish_free_str(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// main is required by the c-shared buildmode but is never invoked; the
// library's entry points are the //export functions above.
func main() {}
