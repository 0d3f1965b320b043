package avatar

import (
	"image/color"

	"avatar/internal/option"
	"avatar/internal/render"
	"avatar/internal/variant"
)

var skinColors = map[string]string{
	"Tanned":    "#FD9841",
	"Yellow":    "#F8D25C",
	"Pale":      "#FFDBB4",
	"Light":     "#EDB98A",
	"Brown":     "#D08B5B",
	"DarkBrown": "#AE5D29",
	"Black":     "#614335",
}

var hairColors = map[string]string{
	"Auburn":       "#A55728",
	"Black":        "#2C1B18",
	"Blonde":       "#B58143",
	"BlondeGolden": "#D6B370",
	"Brown":        "#724133",
	"BrownDark":    "#4A312C",
	"PastelPink":   "#F59797",
	"Blue":         "#000FDB",
	"Platinum":     "#ECDCBF",
	"Red":          "#C93305",
	"SilverGray":   "#E8E1E1",
}

var fabricColors = map[string]string{
	"Black":        "#262E33",
	"Blue01":       "#65C9FF",
	"Blue02":       "#5199E4",
	"Blue03":       "#25557C",
	"Gray01":       "#E6E6E6",
	"Gray02":       "#929598",
	"Heather":      "#3C4F5C",
	"PastelBlue":   "#B1E2FF",
	"PastelGreen":  "#A7FFC4",
	"PastelOrange": "#FFDEB5",
	"PastelRed":    "#FFAFB9",
	"PastelYellow": "#FFFFB1",
	"Pink":         "#FF488E",
	"Red":          "#FF5C5C",
	"White":        "#FFFFFF",
}

// Fixed colours that are not customizable.
var (
	ink      = color.NRGBA{A: 0x99}
	inkLight = color.NRGBA{A: 0x40}
	white    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	tongue   = render.MustHex("#FF4F6D")
	tear     = render.MustHex("#92D9FF")
	heart    = render.MustHex("#FF5353")
	vomit    = render.MustHex("#88C553")
	blazer   = render.MustHex("#3A4C5A")
	hatBlack = render.MustHex("#1F333C")
	lens     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x55}
	shade    = color.NRGBA{A: 0xb8}
)

// colorVariants tags one colour per catalog value of k. A value missing
// from table is a wiring bug and panics.
func colorVariants(k option.Key, table map[string]string) []variant.Variant[color.NRGBA] {
	cat, ok := option.Lookup(k)
	if !ok {
		panic("avatar: no catalog entry for " + string(k))
	}
	out := make([]variant.Variant[color.NRGBA], 0, len(cat.Values))
	for _, v := range cat.Values {
		hex, ok := table[v]
		if !ok {
			panic("avatar: no colour for " + string(k) + "=" + v)
		}
		out = append(out, variant.Tagged(v, render.MustHex(hex)))
	}
	return out
}

// darken scales the RGB channels of c by f.
func darken(c color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
