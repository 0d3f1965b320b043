package avatar

import (
	"image/color"

	"avatar/internal/option"
	"avatar/internal/render"
	"avatar/internal/variant"
)

// layer fixes paint order independently of the order parts are visited.
type layer int

const (
	layerBack layer = iota
	layerBody
	layerClothes
	layerHair
	layerBeard
	layerFace
	layerFront
	numLayers
)

// binding is a selector seen by a render pass.
type binding interface {
	Mount()
	Unmount()
	Mounted() bool
}

// frame is one render pass over the part tree.
type frame struct {
	layers [numLayers]render.Canvas
	live   map[binding]bool
	skin   color.NRGBA
}

func newFrame() *frame {
	return &frame{live: map[binding]bool{}}
}

func (f *frame) add(l layer, c color.NRGBA, p render.Path) {
	f.layers[l].Add(c, p)
}

// both adds p and its mirror image.
func (f *frame) both(l layer, c color.NRGBA, p render.Path) {
	f.layers[l].Add(c, p)
	f.layers[l].Add(c, render.Mirror(p))
}

func (f *frame) use(b binding) {
	if !b.Mounted() {
		b.Mount()
	}
	f.live[b] = true
}

func (f *frame) shapes() []render.Shape {
	var out []render.Shape
	for i := range f.layers {
		out = append(out, f.layers[i].Shapes()...)
	}
	return out
}

// piece draws one variant into a frame.
type piece func(f *frame)

func draw(f *frame, s *variant.Selector[piece]) {
	f.use(s)
	if v, ok := s.Resolve(); ok {
		v.Payload(f)
	}
}

func tint(f *frame, s *variant.Selector[color.NRGBA]) (color.NRGBA, bool) {
	f.use(s)
	v, ok := s.Resolve()
	return v.Payload, ok
}

// Defaults registered by the selectors of every category.
var Defaults = option.Values{
	option.Top:             "ShortHairShortFlat",
	option.Accessories:     "Blank",
	option.HairColor:       "BrownDark",
	option.HatColor:        "Gray01",
	option.FacialHair:      "Blank",
	option.FacialHairColor: "BrownDark",
	option.Clothe:          "ShirtCrewNeck",
	option.ClotheColor:     "Blue01",
	option.Graphic:         "Skull",
	option.Eyes:            "Default",
	option.Eyebrow:         "Default",
	option.Mouth:           "Default",
	option.Skin:            "Light",
}

// tree is the composed avatar: one selector per category. Selectors nested
// inside a variant are only visited, and therefore only mounted, while that
// variant renders.
type tree struct {
	skin            *variant.Selector[color.NRGBA]
	clothe          *variant.Selector[piece]
	clotheColor     *variant.Selector[color.NRGBA]
	graphic         *variant.Selector[piece]
	mouth           *variant.Selector[piece]
	eyes            *variant.Selector[piece]
	eyebrow         *variant.Selector[piece]
	top             *variant.Selector[piece]
	hairColor       *variant.Selector[color.NRGBA]
	hatColor        *variant.Selector[color.NRGBA]
	facialHair      *variant.Selector[piece]
	facialHairColor *variant.Selector[color.NRGBA]
	accessories     *variant.Selector[piece]
}

func newTree(reg *option.Registry) *tree {
	t := &tree{}
	t.skin = variant.New(reg, option.Skin, Defaults[option.Skin], colorVariants(option.Skin, skinColors)...)
	t.clotheColor = variant.New(reg, option.ClotheColor, Defaults[option.ClotheColor], colorVariants(option.ClotheColor, fabricColors)...)
	t.hairColor = variant.New(reg, option.HairColor, Defaults[option.HairColor], colorVariants(option.HairColor, hairColors)...)
	t.hatColor = variant.New(reg, option.HatColor, Defaults[option.HatColor], colorVariants(option.HatColor, fabricColors)...)
	t.facialHairColor = variant.New(reg, option.FacialHairColor, Defaults[option.FacialHairColor], colorVariants(option.FacialHairColor, hairColors)...)

	t.graphic = variant.New(reg, option.Graphic, Defaults[option.Graphic], graphics()...)
	t.clothe = variant.New(reg, option.Clothe, Defaults[option.Clothe], t.clothes()...)
	t.mouth = variant.New(reg, option.Mouth, Defaults[option.Mouth], mouths()...)
	t.eyes = variant.New(reg, option.Eyes, Defaults[option.Eyes], eyes()...)
	t.eyebrow = variant.New(reg, option.Eyebrow, Defaults[option.Eyebrow], eyebrows()...)
	t.facialHair = variant.New(reg, option.FacialHair, Defaults[option.FacialHair], t.facialHairs()...)
	t.accessories = variant.New(reg, option.Accessories, Defaults[option.Accessories], accessories()...)
	t.top = variant.New(reg, option.Top, Defaults[option.Top], t.tops()...)
	return t
}

func (t *tree) draw(f *frame) {
	if skin, ok := tint(f, t.skin); ok {
		f.skin = skin
		drawBody(f, skin)
	}
	draw(f, t.clothe)
	f.add(layerFace, inkLight, render.Ellipse(132, 134, 7, 4))
	draw(f, t.mouth)
	draw(f, t.eyes)
	draw(f, t.eyebrow)
	draw(f, t.top)
}

func drawBody(f *frame, skin color.NRGBA) {
	f.add(layerBody, darken(skin, 0.9), render.Rect(108, 160, 48, 52))
	f.add(layerBody, skin, render.Circle(74, 118, 10))
	f.add(layerBody, skin, render.Circle(190, 118, 10))
	f.add(layerBody, skin, render.Ellipse(132, 114, 58, 64))
}
