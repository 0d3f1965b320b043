package export

import (
	"io"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"

	"avatar/internal/render"
)

const (
	pdfMargin  = 24.0
	captionGap = 18.0
	fontSize   = 10
)

// WritePDF writes one page per frame, each holding the avatar as vector
// paths with an optional caption.
func WritePDF(w io.Writer, frames []render.Document, opts Options) error {
	width, height := opts.size()
	pageW := float64(width) + 2*pdfMargin
	pageH := float64(height) + 2*pdfMargin
	if opts.Title != "" {
		pageH += captionGap
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(opts.Title, true)

	k := float64(width) / render.Width
	for _, doc := range frames {
		pdf.AddPage()
		for _, s := range doc.Flat() {
			drawShape(pdf, s, k)
		}
		if opts.Title != "" {
			pdf.SetAlpha(1, "Normal")
			pdf.SetFont("Helvetica", "", fontSize)
			pdf.SetTextColor(60, 60, 60)
			pdf.SetXY(pdfMargin, pdfMargin+float64(height)+4)
			pdf.CellFormat(float64(width), captionGap-4, opts.Title, "", 0, "C", false, 0, "")
		}
	}
	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "build pdf")
	}
	return errors.Wrap(pdf.Output(w), "write pdf")
}

// drawShape fills s, mapping avatar coordinates by k onto the page.
func drawShape(pdf *gofpdf.Fpdf, s render.Shape, k float64) {
	if s.Fill.A == 0 || len(s.Path) == 0 {
		return
	}
	at := func(p render.Point) (float64, float64) {
		return pdfMargin + p.X*k, pdfMargin + p.Y*k
	}
	pdf.SetFillColor(int(s.Fill.R), int(s.Fill.G), int(s.Fill.B))
	pdf.SetAlpha(float64(s.Fill.A)/255, "Normal")
	for _, seg := range s.Path {
		switch seg.Op {
		case render.MoveTo:
			pdf.MoveTo(at(seg.P[0]))
		case render.LineTo:
			pdf.LineTo(at(seg.P[0]))
		case render.CubeTo:
			x0, y0 := at(seg.P[0])
			x1, y1 := at(seg.P[1])
			x, y := at(seg.P[2])
			pdf.CurveBezierCubicTo(x0, y0, x1, y1, x, y)
		case render.Close:
			pdf.ClosePath()
		}
	}
	pdf.DrawPath("F")
}
