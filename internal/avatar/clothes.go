package avatar

import (
	"image/color"

	"avatar/internal/render"
	"avatar/internal/variant"
)

const chestX, chestY = 132.0, 246.0

func torso() render.Path { return render.RoundRect(36, 202, 192, 120, 60) }

// neckline cuts the shirt open in the wearer's skin colour.
func neckline(f *frame, p render.Path) {
	if f.skin.A == 0 {
		return
	}
	f.add(layerClothes, darken(f.skin, 0.9), p)
}

// fabric draws s in the selected clothing colour.
func (t *tree) fabric(s style) piece {
	return func(f *frame) {
		if c, ok := tint(f, t.clotheColor); ok {
			s(f, c)
		}
	}
}

func (t *tree) clothes() []variant.Variant[piece] {
	blazerWith := func(inner color.NRGBA) piece {
		return func(f *frame) {
			f.add(layerClothes, blazer, torso())
			f.add(layerClothes, inner, render.Polygon(pt{X: 108, Y: 203}, pt{X: 156, Y: 203}, pt{X: 132, Y: 262}))
			neckline(f, render.Polygon(pt{X: 114, Y: 203}, pt{X: 150, Y: 203}, pt{X: 132, Y: 226}))
			f.both(layerClothes, darken(blazer, 0.8), render.Polygon(pt{X: 104, Y: 204}, pt{X: 132, Y: 270}, pt{X: 96, Y: 236}))
		}
	}
	return []variant.Variant[piece]{
		variant.Tagged("BlazerShirt", piece(blazerWith(white))),
		variant.Tagged("BlazerSweater", piece(blazerWith(render.MustHex("#E6E6E6")))),
		variant.Tagged("CollarSweater", t.fabric(func(f *frame, c color.NRGBA) {
			f.add(layerClothes, c, torso())
			neckline(f, render.HalfEllipse(chestX, 203, 22, 14, true))
			f.both(layerClothes, darken(c, 0.8), render.Polygon(pt{X: 104, Y: 200}, pt{X: 132, Y: 216}, pt{X: 118, Y: 232}))
		})),
		variant.Tagged("GraphicShirt", t.fabric(func(f *frame, c color.NRGBA) {
			f.add(layerClothes, c, torso())
			neckline(f, render.HalfEllipse(chestX, 203, 24, 12, true))
			draw(f, t.graphic)
		})),
		variant.Tagged("Hoodie", t.fabric(func(f *frame, c color.NRGBA) {
			f.add(layerBack, darken(c, 0.8), render.Ellipse(chestX, 204, 72, 30))
			f.add(layerClothes, c, torso())
			neckline(f, render.HalfEllipse(chestX, 203, 24, 14, true))
			f.both(layerClothes, white, render.Bar(pt{X: 116, Y: 214}, pt{X: 114, Y: 252}, 4))
		})),
		variant.Tagged("Overall", t.fabric(func(f *frame, c color.NRGBA) {
			f.add(layerClothes, white, torso())
			neckline(f, render.HalfEllipse(chestX, 203, 24, 12, true))
			f.add(layerClothes, c, render.RoundRect(92, 226, 80, 60, 8))
			f.both(layerClothes, c, render.Bar(pt{X: 76, Y: 206}, pt{X: 98, Y: 232}, 10))
			f.both(layerClothes, white, render.Circle(104, 236, 4))
		})),
		variant.Tagged("ShirtCrewNeck", t.fabric(func(f *frame, c color.NRGBA) {
			f.add(layerClothes, c, torso())
			f.add(layerClothes, darken(c, 0.85), render.HalfEllipse(chestX, 202, 30, 18, true))
			neckline(f, render.HalfEllipse(chestX, 202, 24, 12, true))
		})),
		variant.Tagged("ShirtScoopNeck", t.fabric(func(f *frame, c color.NRGBA) {
			f.add(layerClothes, c, torso())
			neckline(f, render.HalfEllipse(chestX, 202, 36, 30, true))
		})),
		variant.Tagged("ShirtVNeck", t.fabric(func(f *frame, c color.NRGBA) {
			f.add(layerClothes, c, torso())
			neckline(f, render.Polygon(pt{X: 108, Y: 202}, pt{X: 156, Y: 202}, pt{X: 132, Y: 244}))
		})),
	}
}

// letters draws n block glyphs centred on the chest, a stand-in for text.
func letters(f *frame, n int) {
	const w, gap = 8.0, 4.0
	x := chestX - (float64(n)*(w+gap)-gap)/2
	for i := 0; i < n; i++ {
		h := 14.0
		if i%2 == 1 {
			h = 10
		}
		f.add(layerClothes, white, render.Rect(x, chestY-h/2, w, h))
		x += w + gap
	}
}

func graphics() []variant.Variant[piece] {
	return []variant.Variant[piece]{
		variant.Tagged("Bat", piece(func(f *frame) {
			f.add(layerClothes, white, render.Polygon(
				pt{X: chestX, Y: chestY - 6}, pt{X: chestX + 8, Y: chestY - 12}, pt{X: chestX + 30, Y: chestY - 8},
				pt{X: chestX + 20, Y: chestY + 8}, pt{X: chestX, Y: chestY + 2}, pt{X: chestX - 20, Y: chestY + 8},
				pt{X: chestX - 30, Y: chestY - 8}, pt{X: chestX - 8, Y: chestY - 12},
			))
		})),
		variant.Tagged("Cumbia", piece(func(f *frame) { letters(f, 6) })),
		variant.Tagged("Deer", piece(func(f *frame) {
			f.add(layerClothes, white, render.Ellipse(chestX, chestY+2, 10, 14))
			f.both(layerClothes, white, render.Bar(pt{X: 124, Y: chestY - 8}, pt{X: 112, Y: chestY - 24}, 3))
		})),
		variant.Tagged("Diamond", piece(func(f *frame) {
			f.add(layerClothes, white, render.Polygon(
				pt{X: chestX - 16, Y: chestY - 8}, pt{X: chestX - 8, Y: chestY - 16}, pt{X: chestX + 8, Y: chestY - 16},
				pt{X: chestX + 16, Y: chestY - 8}, pt{X: chestX, Y: chestY + 16},
			))
		})),
		variant.Tagged("Hola", piece(func(f *frame) { letters(f, 4) })),
		variant.Tagged("Pizza", piece(func(f *frame) {
			f.add(layerClothes, white, render.Polygon(pt{X: chestX - 16, Y: chestY - 14}, pt{X: chestX + 16, Y: chestY - 14}, pt{X: chestX, Y: chestY + 18}))
			f.add(layerClothes, heart, render.Circle(chestX-4, chestY-6, 3))
			f.add(layerClothes, heart, render.Circle(chestX+5, chestY-2, 3))
		})),
		variant.Tagged("Resist", piece(func(f *frame) { letters(f, 6) })),
		variant.Tagged("Selena", piece(func(f *frame) {
			f.add(layerClothes, white, render.Circle(chestX, chestY-8, 8))
			letters(f, 3)
		})),
		variant.Tagged("Bear", piece(func(f *frame) {
			f.add(layerClothes, white, render.Circle(chestX, chestY, 14))
			f.both(layerClothes, white, render.Circle(chestX-12, chestY-12, 6))
		})),
		variant.Tagged("SkullOutline", piece(func(f *frame) {
			f.add(layerClothes, white, render.Hole(render.Circle(chestX, chestY-4, 16), render.Circle(chestX, chestY-4, 13)))
			f.add(layerClothes, white, render.Hole(
				render.RoundRect(chestX-9, chestY+8, 18, 12, 3),
				render.RoundRect(chestX-6, chestY+11, 12, 6, 2)))
		})),
		variant.Tagged("Skull", piece(func(f *frame) {
			f.add(layerClothes, white, render.Join(
				render.Circle(chestX, chestY-4, 16),
				render.RoundRect(chestX-9, chestY+6, 18, 12, 3)))
			f.both(layerClothes, blazer, render.Circle(chestX-6, chestY-4, 4))
		})),
	}
}
