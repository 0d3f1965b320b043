package avatar

import (
	"image/color"

	"avatar/internal/render"
	"avatar/internal/variant"
)

// style draws a top in colour c.
type style func(f *frame, c color.NRGBA)

// extras draws what every top carries beneath it.
func (t *tree) extras(f *frame) {
	draw(f, t.facialHair)
	draw(f, t.accessories)
}

// hair draws s in the selected hair colour.
func (t *tree) hair(s style) piece {
	return func(f *frame) {
		if c, ok := tint(f, t.hairColor); ok {
			s(f, c)
		}
		t.extras(f)
	}
}

// hat draws s in the selected hat colour.
func (t *tree) hat(s style) piece {
	return func(f *frame) {
		if c, ok := tint(f, t.hatColor); ok {
			s(f, c)
		}
		t.extras(f)
	}
}

// fixed draws s in colour c, without consulting any colour option.
func (t *tree) fixed(c color.NRGBA, s style) piece {
	return func(f *frame) {
		s(f, c)
		t.extras(f)
	}
}

func hairCap(f *frame, c color.NRGBA, y, ry float64) {
	f.add(layerHair, c, render.HalfEllipse(132, y, 62, ry, false))
}

func sideburns(f *frame, c color.NRGBA, h float64) {
	f.both(layerHair, c, render.RoundRect(70, 78, 10, h, 4))
}

func curls(f *frame, l layer, c color.NRGBA, y, r float64, xs ...float64) {
	for _, x := range xs {
		f.add(l, c, render.Circle(x, y, r))
	}
}

func locks(f *frame, l layer, c color.NRGBA, top, bottom, w float64, xs ...float64) {
	for _, x := range xs {
		f.both(l, c, render.Bar(pt{X: x, Y: top}, pt{X: x - 4, Y: bottom}, w))
	}
}

func winterCrown(f *frame, c color.NRGBA) {
	f.add(layerHair, c, render.HalfEllipse(132, 84, 66, 52, false))
}

func (t *tree) tops() []variant.Variant[piece] {
	return []variant.Variant[piece]{
		variant.Tagged("NoHair", piece(t.extras)),
		variant.Tagged("Eyepatch", t.fixed(hatBlack, func(f *frame, c color.NRGBA) {
			f.add(layerFront, c, render.Bar(pt{X: 70, Y: 84}, pt{X: 194, Y: 126}, 4))
			f.add(layerFront, c, render.Ellipse(eyeLX, eyeY, 15, 13))
		})),
		variant.Tagged("Hat", t.fixed(hatBlack, func(f *frame, c color.NRGBA) {
			f.add(layerHair, c, render.RoundRect(86, 14, 92, 58, 12))
			f.add(layerHair, c, render.Ellipse(132, 72, 94, 12))
		})),
		variant.Tagged("Hijab", t.hat(func(f *frame, c color.NRGBA) {
			f.add(layerBack, darken(c, 0.85), render.RoundRect(52, 44, 160, 196, 70))
			f.add(layerHair, c, render.Hole(render.Ellipse(132, 116, 80, 92), render.Ellipse(132, 120, 56, 62)))
		})),
		variant.Tagged("Turban", t.hat(func(f *frame, c color.NRGBA) {
			f.add(layerHair, c, render.HalfEllipse(132, 82, 70, 60, false))
			f.add(layerHair, darken(c, 0.85), render.Bar(pt{X: 72, Y: 76}, pt{X: 150, Y: 28}, 12))
			f.add(layerHair, darken(c, 0.85), render.Bar(pt{X: 192, Y: 76}, pt{X: 114, Y: 28}, 12))
		})),
		variant.Tagged("WinterHat1", t.hat(func(f *frame, c color.NRGBA) {
			winterCrown(f, c)
			f.add(layerHair, white, render.RoundRect(64, 74, 136, 12, 6))
			f.both(layerHair, c, render.RoundRect(64, 84, 18, 52, 8))
		})),
		variant.Tagged("WinterHat2", t.hat(func(f *frame, c color.NRGBA) {
			winterCrown(f, c)
			f.add(layerHair, darken(c, 0.85), render.RoundRect(64, 72, 136, 14, 6))
			f.add(layerHair, white, render.Circle(132, 28, 12))
		})),
		variant.Tagged("WinterHat3", t.hat(func(f *frame, c color.NRGBA) {
			winterCrown(f, c)
			f.add(layerHair, darken(c, 0.8), render.RoundRect(62, 68, 140, 20, 10))
		})),
		variant.Tagged("WinterHat4", t.hat(func(f *frame, c color.NRGBA) {
			winterCrown(f, c)
			f.both(layerHair, c, render.Polygon(pt{X: 78, Y: 50}, pt{X: 84, Y: 18}, pt{X: 106, Y: 38}))
			f.add(layerHair, darken(c, 0.85), render.RoundRect(64, 74, 136, 12, 6))
		})),

		variant.Tagged("LongHairBigHair", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.Ellipse(132, 118, 100, 104))
			hairCap(f, c, 86, 46)
		})),
		variant.Tagged("LongHairBob", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.RoundRect(64, 60, 136, 124, 40))
			hairCap(f, c, 86, 42)
			sideburns(f, c, 60)
		})),
		variant.Tagged("LongHairBun", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.Circle(132, 38, 22))
			hairCap(f, c, 84, 38)
		})),
		variant.Tagged("LongHairCurly", t.hair(func(f *frame, c color.NRGBA) {
			for _, y := range []float64{80, 120, 160} {
				curls(f, layerBack, c, y, 22, 62, 202)
			}
			curls(f, layerHair, c, 60, 18, 90, 116, 148, 174)
			hairCap(f, c, 82, 36)
		})),
		variant.Tagged("LongHairCurvy", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.Ellipse(132, 134, 86, 94))
			hairCap(f, c, 86, 44)
		})),
		variant.Tagged("LongHairDreads", t.hair(func(f *frame, c color.NRGBA) {
			locks(f, layerBack, c, 70, 210, 10, 70, 84, 98)
			hairCap(f, c, 84, 40)
		})),
		variant.Tagged("LongHairFrida", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.RoundRect(70, 60, 124, 100, 40))
			hairCap(f, c, 84, 40)
			curls(f, layerHair, heart, 46, 8, 96, 120, 144, 168)
			curls(f, layerHair, white, 46, 3, 96, 120, 144, 168)
		})),
		variant.Tagged("LongHairFro", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.Circle(132, 96, 96))
		})),
		variant.Tagged("LongHairFroBand", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.Circle(132, 96, 96))
			f.add(layerHair, tear, render.RoundRect(72, 60, 120, 14, 7))
		})),
		variant.Tagged("LongHairNotTooLong", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.RoundRect(68, 66, 128, 150, 30))
			hairCap(f, c, 84, 40)
			sideburns(f, c, 80)
		})),
		variant.Tagged("LongHairShavedSides", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.RoundRect(150, 60, 50, 140, 24))
			f.add(layerHair, c, render.HalfEllipse(150, 84, 46, 40, false))
		})),
		variant.Tagged("LongHairMiaWallace", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.RoundRect(60, 52, 144, 144, 20))
			f.add(layerHair, c, render.Rect(74, 48, 116, 36))
			sideburns(f, c, 100)
		})),
		variant.Tagged("LongHairStraight", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.RoundRect(66, 60, 132, 184, 30))
			hairCap(f, c, 84, 40)
		})),
		variant.Tagged("LongHairStraight2", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.Rect(68, 64, 128, 172))
			hairCap(f, c, 82, 36)
			sideburns(f, c, 90)
		})),
		variant.Tagged("LongHairStraightStrand", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.RoundRect(66, 60, 132, 184, 30))
			hairCap(f, c, 84, 40)
			f.add(layerHair, c, render.Bar(pt{X: 80, Y: 80}, pt{X: 72, Y: 220}, 12))
		})),

		variant.Tagged("ShortHairDreads01", t.hair(func(f *frame, c color.NRGBA) {
			hairCap(f, c, 80, 34)
			locks(f, layerHair, c, 50, 92, 8, 82, 98, 114)
		})),
		variant.Tagged("ShortHairDreads02", t.hair(func(f *frame, c color.NRGBA) {
			hairCap(f, c, 80, 34)
			locks(f, layerHair, c, 50, 130, 8, 72, 86)
		})),
		variant.Tagged("ShortHairFrizzle", t.hair(func(f *frame, c color.NRGBA) {
			hairCap(f, c, 84, 44)
			curls(f, layerHair, c, 42, 8, 100, 116, 132, 148, 164)
		})),
		variant.Tagged("ShortHairShaggyMullet", t.hair(func(f *frame, c color.NRGBA) {
			f.add(layerBack, c, render.RoundRect(82, 100, 100, 96, 30))
			hairCap(f, c, 86, 42)
			sideburns(f, c, 40)
		})),
		variant.Tagged("ShortHairShortCurly", t.hair(func(f *frame, c color.NRGBA) {
			hairCap(f, c, 82, 36)
			curls(f, layerHair, c, 80, 10, 76, 96, 168, 188)
		})),
		variant.Tagged("ShortHairShortFlat", t.hair(func(f *frame, c color.NRGBA) {
			hairCap(f, c, 82, 36)
			sideburns(f, c, 24)
		})),
		variant.Tagged("ShortHairShortRound", t.hair(func(f *frame, c color.NRGBA) {
			hairCap(f, c, 86, 44)
		})),
		variant.Tagged("ShortHairShortWaved", t.hair(func(f *frame, c color.NRGBA) {
			hairCap(f, c, 82, 36)
			curls(f, layerHair, c, 50, 14, 104, 132, 160)
		})),
		variant.Tagged("ShortHairSides", t.hair(func(f *frame, c color.NRGBA) {
			f.both(layerHair, c, render.RoundRect(66, 74, 16, 44, 6))
		})),
		variant.Tagged("ShortHairTheCaesar", t.hair(func(f *frame, c color.NRGBA) {
			hairCap(f, c, 80, 32)
			f.add(layerHair, c, render.Rect(76, 74, 112, 8))
		})),
		variant.Tagged("ShortHairTheCaesarSidePart", t.hair(func(f *frame, c color.NRGBA) {
			hairCap(f, c, 80, 32)
			f.add(layerHair, c, render.Rect(76, 74, 112, 8))
			f.add(layerHair, darken(c, 0.7), render.Bar(pt{X: 104, Y: 50}, pt{X: 112, Y: 80}, 3))
		})),
	}
}

func (t *tree) beard(s style) piece {
	return func(f *frame) {
		if c, ok := tint(f, t.facialHairColor); ok {
			s(f, c)
		}
	}
}

func moustache(f *frame, c color.NRGBA) {
	f.add(layerFront, c, render.Join(
		render.Ellipse(116, mouthY-14, 16, 5),
		render.Ellipse(148, mouthY-14, 16, 5),
	))
}

func (t *tree) facialHairs() []variant.Variant[piece] {
	return []variant.Variant[piece]{
		variant.Tagged("Blank", piece(func(*frame) {})),
		variant.Tagged("BeardMedium", t.beard(func(f *frame, c color.NRGBA) {
			f.add(layerBeard, c, render.HalfEllipse(132, 126, 60, 66, true))
		})),
		variant.Tagged("BeardLight", t.beard(func(f *frame, c color.NRGBA) {
			f.add(layerBeard, render.WithAlpha(c, 0x99), render.HalfEllipse(132, 126, 58, 54, true))
		})),
		variant.Tagged("BeardMajestic", t.beard(func(f *frame, c color.NRGBA) {
			f.add(layerBeard, c, render.HalfEllipse(132, 122, 64, 92, true))
			moustache(f, c)
		})),
		variant.Tagged("MoustacheFancy", t.beard(func(f *frame, c color.NRGBA) {
			moustache(f, c)
			f.both(layerFront, c, render.Circle(98, mouthY-18, 4))
		})),
		variant.Tagged("MoustacheMagnum", t.beard(func(f *frame, c color.NRGBA) {
			f.add(layerFront, c, render.HalfEllipse(132, mouthY-16, 30, 12, true))
		})),
	}
}

// glasses draws a lens and a rim around each eye, joined by a bridge.
func glasses(f *frame, outer func(x float64) render.Path, inner func(x float64) render.Path, fill color.NRGBA, rim color.NRGBA) {
	for _, x := range []float64{eyeLX, eyeRX} {
		f.add(layerFront, fill, inner(x))
		f.add(layerFront, rim, render.Hole(outer(x), inner(x)))
	}
	f.add(layerFront, rim, render.Bar(pt{X: eyeLX + 14, Y: eyeY - 4}, pt{X: eyeRX - 14, Y: eyeY - 4}, 3))
}

func ring(r float64) func(x float64) render.Path {
	return func(x float64) render.Path { return render.Circle(x, eyeY, r) }
}

func lensRect(w, h, r float64) func(x float64) render.Path {
	return func(x float64) render.Path { return render.RoundRect(x-w/2, eyeY-h/2, w, h, r) }
}

func accessories() []variant.Variant[piece] {
	return []variant.Variant[piece]{
		variant.Tagged("Blank", piece(func(*frame) {})),
		variant.Tagged("Kurt", piece(func(f *frame) {
			glasses(f, ring(20), ring(16), shade, white)
		})),
		variant.Tagged("Prescription01", piece(func(f *frame) {
			glasses(f, lensRect(32, 24, 6), lensRect(28, 20, 4), lens, hatBlack)
		})),
		variant.Tagged("Prescription02", piece(func(f *frame) {
			glasses(f, lensRect(34, 26, 8), lensRect(26, 18, 4), lens, hatBlack)
		})),
		variant.Tagged("Round", piece(func(f *frame) {
			glasses(f, ring(16), ring(14), lens, hatBlack)
		})),
		variant.Tagged("Sunglasses", piece(func(f *frame) {
			glasses(f, ring(17), ring(15), shade, hatBlack)
		})),
		variant.Tagged("Wayfarers", piece(func(f *frame) {
			glasses(f, lensRect(38, 26, 4), lensRect(32, 20, 2), shade, hatBlack)
		})),
	}
}
