package avatar

import (
	"avatar/internal/render"
	"avatar/internal/variant"
)

type pt = render.Point

const (
	eyeLX, eyeRX, eyeY = 106.0, 158.0, 112.0
	mouthX, mouthY     = 132.0, 152.0
)

func mouths() []variant.Variant[piece] {
	open := func(f *frame, rx, ry float64) {
		f.add(layerFace, ink, render.HalfEllipse(mouthX, mouthY-6, rx, ry, true))
	}
	return []variant.Variant[piece]{
		variant.Tagged("Concerned", piece(func(f *frame) {
			f.add(layerFace, ink, render.HalfEllipse(mouthX, mouthY+8, 18, 12, false))
			f.add(layerFace, tongue, render.Ellipse(mouthX, mouthY+4, 9, 4))
		})),
		variant.Tagged("Default", piece(func(f *frame) {
			f.add(layerFace, ink, render.Hole(
				render.HalfEllipse(mouthX, mouthY-4, 16, 9, true),
				render.HalfEllipse(mouthX, mouthY-5, 13, 5, true)))
		})),
		variant.Tagged("Disbelief", piece(func(f *frame) {
			f.add(layerFace, ink, render.Hole(
				render.HalfEllipse(mouthX, mouthY+6, 16, 9, false),
				render.HalfEllipse(mouthX, mouthY+7, 13, 5, false)))
		})),
		variant.Tagged("Eating", piece(func(f *frame) {
			f.both(layerFace, render.WithAlpha(heart, 0x40), render.Circle(92, 146, 11))
			f.add(layerFace, ink, render.Ellipse(mouthX, mouthY, 14, 4))
			f.add(layerFace, ink, render.Circle(mouthX-10, mouthY-4, 4))
		})),
		variant.Tagged("Grimace", piece(func(f *frame) {
			f.add(layerFace, ink, render.RoundRect(mouthX-24, mouthY-9, 48, 20, 10))
			f.add(layerFace, white, render.RoundRect(mouthX-20, mouthY-6, 40, 14, 6))
			f.add(layerFace, inkLight, render.Rect(mouthX-20, mouthY, 40, 2))
			for _, dx := range []float64{-10, 0, 10} {
				f.add(layerFace, inkLight, render.Rect(mouthX+dx-1, mouthY-6, 2, 14))
			}
		})),
		variant.Tagged("Sad", piece(func(f *frame) {
			f.add(layerFace, ink, render.HalfEllipse(mouthX, mouthY+8, 16, 8, false))
		})),
		variant.Tagged("ScreamOpen", piece(func(f *frame) {
			f.add(layerFace, ink, render.Ellipse(mouthX, mouthY+4, 18, 16))
			f.add(layerFace, white, render.RoundRect(mouthX-12, mouthY-12, 24, 6, 3))
			f.add(layerFace, tongue, render.HalfEllipse(mouthX, mouthY+12, 12, 7, false))
		})),
		variant.Tagged("Serious", piece(func(f *frame) {
			f.add(layerFace, ink, render.RoundRect(mouthX-18, mouthY-2, 36, 5, 2))
		})),
		variant.Tagged("Smile", piece(func(f *frame) {
			open(f, 24, 18)
			f.add(layerFace, white, render.RoundRect(mouthX-18, mouthY-6, 36, 6, 2))
			f.add(layerFace, tongue, render.HalfEllipse(mouthX, mouthY+10, 10, 4, false))
		})),
		variant.Tagged("Tongue", piece(func(f *frame) {
			open(f, 24, 16)
			f.add(layerFace, white, render.RoundRect(mouthX-18, mouthY-6, 36, 5, 2))
			f.add(layerFace, tongue, render.Ellipse(mouthX, mouthY+12, 10, 11))
		})),
		variant.Tagged("Twinkle", piece(func(f *frame) {
			f.add(layerFace, ink, render.Hole(
				render.HalfEllipse(mouthX, mouthY-4, 20, 8, true),
				render.HalfEllipse(mouthX, mouthY-5, 17, 5, true)))
		})),
		variant.Tagged("Vomit", piece(func(f *frame) {
			f.add(layerFace, ink, render.HalfEllipse(mouthX, mouthY+8, 20, 12, false))
			f.add(layerFace, vomit, render.RoundRect(mouthX-10, mouthY, 20, 30, 10))
			f.add(layerFace, vomit, render.Circle(mouthX+6, mouthY+34, 5))
		})),
	}
}

// eyePair draws shape at the centre of each eye.
func eyePair(f *frame, shape func(x float64) render.Path) {
	for _, x := range []float64{eyeLX, eyeRX} {
		f.add(layerFace, ink, shape(x))
	}
}

func dot(x float64) render.Path { return render.Circle(x, eyeY, 6) }

func arc(x float64) render.Path {
	return render.Hole(
		render.HalfEllipse(x, eyeY+4, 10, 8, false),
		render.HalfEllipse(x, eyeY+4, 7, 5, false))
}

func heartAt(x, y, s float64) render.Path {
	return render.Join(
		render.Circle(x-s/2, y, s/2+1),
		render.Circle(x+s/2, y, s/2+1),
		render.Polygon(pt{X: x - s - 1, Y: y + 1}, pt{X: x + s + 1, Y: y + 1}, pt{X: x, Y: y + s*1.5}),
	)
}

func eyes() []variant.Variant[piece] {
	big := func(f *frame, x, r, px, py, pr float64) {
		f.add(layerFace, white, render.Circle(x, eyeY, r))
		f.add(layerFace, ink, render.Circle(x+px, eyeY+py, pr))
	}
	return []variant.Variant[piece]{
		variant.Tagged("Close", piece(func(f *frame) {
			eyePair(f, func(x float64) render.Path {
				return render.Hole(
					render.HalfEllipse(x, eyeY, 10, 6, true),
					render.HalfEllipse(x, eyeY, 7, 3, true))
			})
		})),
		variant.Tagged("Cry", piece(func(f *frame) {
			eyePair(f, dot)
			f.add(layerFace, tear, render.Join(
				render.Circle(eyeLX-4, eyeY+18, 5),
				render.Polygon(pt{X: eyeLX - 9, Y: eyeY + 17}, pt{X: eyeLX + 1, Y: eyeY + 17}, pt{X: eyeLX - 4, Y: eyeY + 8}),
			))
		})),
		variant.Tagged("Default", piece(func(f *frame) { eyePair(f, dot) })),
		variant.Tagged("Dizzy", piece(func(f *frame) {
			eyePair(f, func(x float64) render.Path {
				return render.Join(
					render.Bar(pt{X: x - 7, Y: eyeY - 7}, pt{X: x + 7, Y: eyeY + 7}, 4),
					render.Bar(pt{X: x - 7, Y: eyeY + 7}, pt{X: x + 7, Y: eyeY - 7}, 4),
				)
			})
		})),
		variant.Tagged("EyeRoll", piece(func(f *frame) {
			big(f, eyeLX, 11, 0, -5, 5)
			big(f, eyeRX, 11, 0, -5, 5)
		})),
		variant.Tagged("Happy", piece(func(f *frame) { eyePair(f, arc) })),
		variant.Tagged("Hearts", piece(func(f *frame) {
			f.add(layerFace, heart, heartAt(eyeLX, eyeY-4, 8))
			f.add(layerFace, heart, heartAt(eyeRX, eyeY-4, 8))
		})),
		variant.Tagged("Side", piece(func(f *frame) {
			eyePair(f, func(x float64) render.Path { return render.Circle(x+5, eyeY, 6) })
		})),
		variant.Tagged("Squint", piece(func(f *frame) {
			eyePair(f, func(x float64) render.Path {
				return render.HalfEllipse(x, eyeY-2, 9, 6, true)
			})
		})),
		variant.Tagged("Surprised", piece(func(f *frame) {
			big(f, eyeLX, 12, 0, 0, 6)
			big(f, eyeRX, 12, 0, 0, 6)
		})),
		variant.Tagged("Wink", piece(func(f *frame) {
			f.add(layerFace, ink, dot(eyeLX))
			f.add(layerFace, ink, arc(eyeRX))
		})),
		variant.Tagged("WinkWacky", piece(func(f *frame) {
			f.add(layerFace, ink, arc(eyeLX))
			big(f, eyeRX, 14, 2, 2, 7)
		})),
	}
}

// brows draws a left brow from (88, outerY) to (122, innerY) and a right
// brow from (142, rInnerY) to (176, rOuterY).
func brows(f *frame, outerY, innerY, rOuterY, rInnerY, w float64) {
	f.add(layerFace, ink, render.Bar(pt{X: 88, Y: outerY}, pt{X: 122, Y: innerY}, w))
	f.add(layerFace, ink, render.Bar(pt{X: 142, Y: rInnerY}, pt{X: 176, Y: rOuterY}, w))
}

func eyebrows() []variant.Variant[piece] {
	sym := func(outerY, innerY, w float64) piece {
		return func(f *frame) { brows(f, outerY, innerY, outerY, innerY, w) }
	}
	return []variant.Variant[piece]{
		variant.Tagged("Angry", sym(84, 96, 5)),
		variant.Tagged("AngryNatural", sym(84, 97, 7)),
		variant.Tagged("Default", sym(92, 90, 5)),
		variant.Tagged("DefaultNatural", sym(93, 90, 7)),
		variant.Tagged("FlatNatural", sym(92, 92, 7)),
		variant.Tagged("RaisedExcited", sym(82, 78, 5)),
		variant.Tagged("RaisedExcitedNatural", sym(83, 78, 7)),
		variant.Tagged("SadConcerned", sym(96, 84, 5)),
		variant.Tagged("SadConcernedNatural", sym(97, 84, 7)),
		variant.Tagged("UnibrowNatural", piece(func(f *frame) {
			f.add(layerFace, ink, render.Join(
				render.Bar(pt{X: 88, Y: 93}, pt{X: 132, Y: 89}, 7),
				render.Bar(pt{X: 132, Y: 89}, pt{X: 176, Y: 93}, 7),
			))
		})),
		variant.Tagged("UpDown", piece(func(f *frame) { brows(f, 80, 78, 92, 90, 5) })),
		variant.Tagged("UpDownNatural", piece(func(f *frame) { brows(f, 81, 78, 93, 90, 7) })),
	}
}
