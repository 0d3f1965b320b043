// Package render holds the flat shape model avatars are drawn into and the
// backends that turn it into SVG markup or pixels.
package render

import (
	"fmt"
	"image/color"
)

// Width and Height define the avatar coordinate space.
const (
	Width  = 264
	Height = 280
)

// Op is a path command.
type Op int

const (
	MoveTo Op = iota
	LineTo
	CubeTo
	Close
)

// Segment is one path command. CubeTo uses all three points (two controls
// then the end point); MoveTo and LineTo use P[0]; Close uses none.
type Segment struct {
	Op Op
	P  [3]Point
}

type Point struct{ X, Y float64 }

// Path is a sequence of segments, filled with the non-zero rule.
type Path []Segment

// Shape is one filled path.
type Shape struct {
	Path Path
	Fill color.NRGBA
}

// Document is everything needed to draw one avatar frame.
type Document struct {
	Shapes []Shape
	// Background, when non-nil, is painted as a circle behind the avatar.
	Background *color.NRGBA
	// Scale enlarges the whole drawing around its centre.
	Scale float64
}

// Hex parses "#rrggbb" or "rrggbb" into an opaque colour.
func Hex(s string) (color.NRGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b uint8
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("render: bad colour %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("render: bad colour %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MustHex is Hex for static palette tables.
func MustHex(s string) color.NRGBA {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// Canvas collects shapes in paint order.
type Canvas struct {
	shapes []Shape
}

func (c *Canvas) Add(fill color.NRGBA, p Path) {
	if len(p) == 0 {
		return
	}
	c.shapes = append(c.shapes, Shape{Path: p, Fill: fill})
}

func (c *Canvas) Shapes() []Shape {
	return c.shapes
}

func (c *Canvas) Len() int {
	return len(c.shapes)
}

// Flat returns the shapes of d in paint order, background first, with the
// document scale applied to every point.
func (d Document) Flat() []Shape {
	scale := d.Scale
	if scale <= 0 {
		scale = 1
	}
	out := make([]Shape, 0, len(d.Shapes)+1)
	if d.Background != nil {
		out = append(out, Shape{Path: backgroundPath(), Fill: *d.Background})
	}
	out = append(out, d.Shapes...)
	if scale == 1 {
		return out
	}
	cx, cy := float64(Width)/2, float64(Height)/2
	for i := range out {
		out[i].Path = Transform(out[i].Path, scale, cx, cy, 0, 0)
	}
	return out
}
