package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"github.com/gopherforge/primish/internal/search"
)

// AnimatedGIF encodes one frame per committed shape in history, each frame
// showing the canvas as it stood after that shape was drawn, rendered at
// scale (output size divided by fit size) just like the single-frame PNG
// export.
func AnimatedGIF(history []search.State, w, h int, scale float64, bg color.NRGBA) (*gif.GIF, error) {
	out := &gif.GIF{}
	for i := range history {
		frame := Rasterize(history, i+1, w, h, scale, bg)
		paletted, err := toPaletted(frame)
		if err != nil {
			return nil, err
		}
		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, 0)
		out.Disposal = append(out.Disposal, gif.DisposalNone)
	}
	return out, nil
}

// toPaletted quantizes an NRGBA frame to a 256-color palette by
// round-tripping through the standard library's GIF encoder/decoder: with
// nil options gif.Encode maps the frame onto the Plan 9 palette with
// Floyd-Steinberg dithering, so reusing it here avoids pulling in a
// separate quantizer just to get a *image.Paletted back out.
func toPaletted(src *image.NRGBA) (*image.Paletted, error) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, src, nil); err != nil {
		return nil, err
	}
	decoded, err := gif.Decode(&buf)
	if err != nil {
		return nil, err
	}
	if p, ok := decoded.(*image.Paletted); ok {
		return p, nil
	}
	p := image.NewPaletted(src.Bounds(), nil)
	draw.Draw(p, p.Bounds(), src, image.Point{}, draw.Src)
	return p, nil
}
