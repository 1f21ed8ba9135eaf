package export

import (
	"fmt"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopherforge/primish/internal/search"
)

// Save writes history out to path, choosing the output form from path's
// extension:
//
//   - ".svg"  writes the vector document as text.
//   - ".gif"  writes an animated GIF (one frame per shape) and additionally
//     writes a final flattened PNG alongside it.
//   - anything else is treated as a flattened raster image and encoded as
//     PNG regardless of the extension given.
//
// If path contains the literal token "{}" and the output form is not GIF,
// one file is written per committed shape, with "{}" replaced by the
// shape's 1-based index; a GIF's frames already serve that purpose, so the
// placeholder is left untouched in that case.
func Save(path string, history []search.State, w, h int, scale float64, bg color.NRGBA) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".svg":
		if strings.Contains(path, placeholderToken) {
			for i := range history {
				doc := SVGDocument(history, i+1, w, h, scale, bg)
				if err := os.WriteFile(FormatFramePath(path, i+1), []byte(doc), 0o644); err != nil {
					return fmt.Errorf("export: write svg frame %d: %w", i+1, err)
				}
			}
			return nil
		}
		doc := SVGDocument(history, len(history), w, h, scale, bg)
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("export: write svg: %w", err)
		}
		return nil

	case ".gif":
		anim, err := AnimatedGIF(history, w, h, scale, bg)
		if err != nil {
			return fmt.Errorf("export: encode gif: %w", err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("export: create gif: %w", err)
		}
		defer f.Close()
		if err := gif.EncodeAll(f, anim); err != nil {
			return fmt.Errorf("export: write gif: %w", err)
		}
		pngPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
		return savePNG(pngPath, history, w, h, scale, bg)

	default:
		if strings.Contains(path, placeholderToken) {
			for i := range history {
				if err := savePNG(FormatFramePath(path, i+1), history[:i+1], w, h, scale, bg); err != nil {
					return err
				}
			}
			return nil
		}
		return savePNG(path, history, w, h, scale, bg)
	}
}

func savePNG(path string, history []search.State, w, h int, scale float64, bg color.NRGBA) error {
	img := Rasterize(history, len(history), w, h, scale, bg)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create png %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("export: encode png %s: %w", path, err)
	}
	return nil
}
