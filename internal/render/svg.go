package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
)

// WriteSVG writes doc as a standalone SVG element of the given pixel size.
// A non-positive width or height falls back to the natural size.
func WriteSVG(w io.Writer, doc Document, width, height int) error {
	if width <= 0 || height <= 0 {
		width, height = Width, Height
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, Width, Height)

	scale := doc.Scale
	if scale <= 0 {
		scale = 1
	}
	if scale != 1 {
		cx, cy := float64(Width)/2, float64(Height)/2
		fmt.Fprintf(bw, `<g transform="translate(%s %s) scale(%s) translate(%s %s)">`,
			num(cx), num(cy), num(scale), num(-cx), num(-cy))
	}
	if doc.Background != nil {
		writeShape(bw, Shape{Path: backgroundPath(), Fill: *doc.Background})
	}
	for _, s := range doc.Shapes {
		writeShape(bw, s)
	}
	if scale != 1 {
		bw.WriteString("</g>")
	}
	bw.WriteString("</svg>")
	return bw.Flush()
}

// backgroundPath is the circle painted behind the avatar; it sits low so
// the top of the head may overflow it.
func backgroundPath() Path {
	return Circle(float64(Width)/2, 160, 120)
}

func writeShape(w *bufio.Writer, s Shape) {
	w.WriteString(`<path d="`)
	for i, seg := range s.Path {
		if i > 0 {
			w.WriteByte(' ')
		}
		switch seg.Op {
		case MoveTo:
			fmt.Fprintf(w, "M%s %s", num(seg.P[0].X), num(seg.P[0].Y))
		case LineTo:
			fmt.Fprintf(w, "L%s %s", num(seg.P[0].X), num(seg.P[0].Y))
		case CubeTo:
			fmt.Fprintf(w, "C%s %s %s %s %s %s",
				num(seg.P[0].X), num(seg.P[0].Y), num(seg.P[1].X), num(seg.P[1].Y), num(seg.P[2].X), num(seg.P[2].Y))
		case Close:
			w.WriteByte('Z')
		}
	}
	fmt.Fprintf(w, `" fill="%s"`, hexColor(s.Fill))
	if s.Fill.A != 0xff {
		fmt.Fprintf(w, ` fill-opacity="%s"`, num(float64(s.Fill.A)/255))
	}
	w.WriteString("/>")
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
