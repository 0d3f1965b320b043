package export

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"avatar/internal/render"
)

// supersample is how much larger than the output frames are rasterized
// before being filtered down.
const supersample = 2

func raster(doc render.Document, width, height int) *image.NRGBA {
	big := render.Rasterize(doc, width*supersample, height*supersample)
	return imaging.Resize(big, width, height, imaging.Lanczos)
}

// WritePNG encodes doc as a PNG with transparency preserved.
func WritePNG(w io.Writer, doc render.Document, opts Options) error {
	width, height := opts.size()
	return errors.Wrap(imaging.Encode(w, raster(doc, width, height), imaging.PNG), "encode png")
}

// WriteGIF encodes frames as a looping animated GIF. GIF has no partial
// transparency, so frames are flattened onto white first.
func WriteGIF(w io.Writer, frames []render.Document, opts Options) error {
	width, height := opts.size()
	delay := int(opts.delay().Milliseconds() / 10)
	out := &gif.GIF{LoopCount: 0}
	for _, doc := range frames {
		flat := imaging.Overlay(imaging.New(width, height, color.White), raster(doc, width, height), image.Point{}, 1)
		pal := image.NewPaletted(flat.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, flat.Bounds(), flat, image.Point{})
		out.Image = append(out.Image, pal)
		out.Delay = append(out.Delay, delay)
	}
	return errors.Wrap(gif.EncodeAll(w, out), "encode gif")
}
