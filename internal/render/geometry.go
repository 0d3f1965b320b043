package render

import "math"

// kappa places cubic control points so four curves approximate an ellipse.
const kappa = 0.5522847498

func Rect(x, y, w, h float64) Path {
	return Polygon(Point{x, y}, Point{x + w, y}, Point{x + w, y + h}, Point{x, y + h})
}

// RoundRect is a rectangle with corners of radius r.
func RoundRect(x, y, w, h, r float64) Path {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return Rect(x, y, w, h)
	}
	k := r * kappa
	return Path{
		{Op: MoveTo, P: [3]Point{{x + r, y}}},
		{Op: LineTo, P: [3]Point{{x + w - r, y}}},
		{Op: CubeTo, P: [3]Point{{x + w - r + k, y}, {x + w, y + r - k}, {x + w, y + r}}},
		{Op: LineTo, P: [3]Point{{x + w, y + h - r}}},
		{Op: CubeTo, P: [3]Point{{x + w, y + h - r + k}, {x + w - r + k, y + h}, {x + w - r, y + h}}},
		{Op: LineTo, P: [3]Point{{x + r, y + h}}},
		{Op: CubeTo, P: [3]Point{{x + r - k, y + h}, {x, y + h - r + k}, {x, y + h - r}}},
		{Op: LineTo, P: [3]Point{{x, y + r}}},
		{Op: CubeTo, P: [3]Point{{x, y + r - k}, {x + r - k, y}, {x + r, y}}},
		{Op: Close},
	}
}

func Ellipse(cx, cy, rx, ry float64) Path {
	kx, ky := rx*kappa, ry*kappa
	return Path{
		{Op: MoveTo, P: [3]Point{{cx + rx, cy}}},
		{Op: CubeTo, P: [3]Point{{cx + rx, cy + ky}, {cx + kx, cy + ry}, {cx, cy + ry}}},
		{Op: CubeTo, P: [3]Point{{cx - kx, cy + ry}, {cx - rx, cy + ky}, {cx - rx, cy}}},
		{Op: CubeTo, P: [3]Point{{cx - rx, cy - ky}, {cx - kx, cy - ry}, {cx, cy - ry}}},
		{Op: CubeTo, P: [3]Point{{cx + kx, cy - ry}, {cx + rx, cy - ky}, {cx + rx, cy}}},
		{Op: Close},
	}
}

func Circle(cx, cy, r float64) Path {
	return Ellipse(cx, cy, r, r)
}

// HalfEllipse is the lower half of an ellipse when down is true, the upper
// half otherwise. Used for smiles and frowns.
func HalfEllipse(cx, cy, rx, ry float64, down bool) Path {
	if !down {
		ry = -ry
	}
	kx, ky := rx*kappa, ry*kappa
	return Path{
		{Op: MoveTo, P: [3]Point{{cx - rx, cy}}},
		{Op: CubeTo, P: [3]Point{{cx - rx, cy + ky}, {cx - kx, cy + ry}, {cx, cy + ry}}},
		{Op: CubeTo, P: [3]Point{{cx + kx, cy + ry}, {cx + rx, cy + ky}, {cx + rx, cy}}},
		{Op: Close},
	}
}

func Polygon(pts ...Point) Path {
	if len(pts) == 0 {
		return nil
	}
	p := make(Path, 0, len(pts)+1)
	p = append(p, Segment{Op: MoveTo, P: [3]Point{pts[0]}})
	for _, pt := range pts[1:] {
		p = append(p, Segment{Op: LineTo, P: [3]Point{pt}})
	}
	return append(p, Segment{Op: Close})
}

// Bar is a thick line from a to b, drawn as a quad of width w.
func Bar(a, b Point, w float64) Path {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil
	}
	nx, ny := -dy/l*w/2, dx/l*w/2
	return Polygon(
		Point{a.X + nx, a.Y + ny}, Point{b.X + nx, b.Y + ny},
		Point{b.X - nx, b.Y - ny}, Point{a.X - nx, a.Y - ny},
	)
}

// Join concatenates paths into one, so they fill as a single shape.
func Join(ps ...Path) Path {
	var out Path
	for _, p := range ps {
		out = append(out, p...)
	}
	return out
}

// Mirror reflects p across the vertical centre line of the avatar.
func Mirror(p Path) Path {
	out := make(Path, len(p))
	for i, s := range p {
		for j := range s.P {
			s.P[j].X = Width - s.P[j].X
		}
		out[i] = s
	}
	return out
}

// Transform maps every point of p through scale s about (cx, cy), then
// translation (tx, ty).
func Transform(p Path, s, cx, cy, tx, ty float64) Path {
	out := make(Path, len(p))
	for i, seg := range p {
		for j := range seg.P {
			seg.P[j].X = (seg.P[j].X-cx)*s + cx + tx
			seg.P[j].Y = (seg.P[j].Y-cy)*s + cy + ty
		}
		out[i] = seg
	}
	return out
}

// Reverse flips the winding of a single closed subpath.
func Reverse(p Path) Path {
	if len(p) == 0 || p[0].Op != MoveTo {
		return nil
	}
	start := p[0].P[0]
	var segs []Segment
	for _, s := range p[1:] {
		if s.Op == MoveTo {
			break
		}
		if s.Op != Close {
			segs = append(segs, s)
		}
	}
	end := func(i int) Point {
		if i < 0 {
			return start
		}
		if segs[i].Op == CubeTo {
			return segs[i].P[2]
		}
		return segs[i].P[0]
	}
	out := Path{{Op: MoveTo, P: [3]Point{end(len(segs) - 1)}}}
	for i := len(segs) - 1; i >= 0; i-- {
		prev := end(i - 1)
		if segs[i].Op == CubeTo {
			out = append(out, Segment{Op: CubeTo, P: [3]Point{segs[i].P[1], segs[i].P[0], prev}})
			continue
		}
		out = append(out, Segment{Op: LineTo, P: [3]Point{prev}})
	}
	return append(out, Segment{Op: Close})
}

// Hole cuts inner out of outer. Both must be single closed subpaths wound
// the same way, as every constructor in this file produces them.
func Hole(outer, inner Path) Path {
	return Join(outer, Reverse(inner))
}
