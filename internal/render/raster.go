package render

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// Rasterize paints doc into a new RGBA image of the given size. A
// non-positive size falls back to the natural size.
func Rasterize(doc Document, width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		width, height = Width, Height
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	sx := float64(width) / Width
	sy := float64(height) / Height

	scale := doc.Scale
	if scale <= 0 {
		scale = 1
	}
	cx, cy := float64(Width)/2, float64(Height)/2
	project := func(p Point) (float32, float32) {
		x := ((p.X-cx)*scale + cx) * sx
		y := ((p.Y-cy)*scale + cy) * sy
		return float32(x), float32(y)
	}

	z := vector.NewRasterizer(width, height)
	fill := func(s Shape) {
		if s.Fill.A == 0 || len(s.Path) == 0 {
			return
		}
		z.Reset(width, height)
		z.DrawOp = draw.Over
		for _, seg := range s.Path {
			switch seg.Op {
			case MoveTo:
				z.MoveTo(project(seg.P[0]))
			case LineTo:
				z.LineTo(project(seg.P[0]))
			case CubeTo:
				bx, by := project(seg.P[0])
				ccx, ccy := project(seg.P[1])
				dx, dy := project(seg.P[2])
				z.CubeTo(bx, by, ccx, ccy, dx, dy)
			case Close:
				z.ClosePath()
			}
		}
		z.ClosePath()
		z.Draw(dst, dst.Bounds(), image.NewUniform(s.Fill), image.Point{})
	}

	if doc.Background != nil {
		fill(Shape{Path: backgroundPath(), Fill: *doc.Background})
	}
	for _, s := range doc.Shapes {
		fill(s)
	}
	return dst
}
