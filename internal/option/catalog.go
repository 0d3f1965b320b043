// Package option holds the catalog of customizable avatar categories and the
// per-avatar registry that maps each category to its selected value.
package option

// Key identifies one option category.
type Key string

const (
	Top             Key = "topType"
	Accessories     Key = "accessoriesType"
	HairColor       Key = "hairColor"
	HatColor        Key = "hatColor"
	FacialHair      Key = "facialHairType"
	FacialHairColor Key = "facialHairColor"
	Clothe          Key = "clotheType"
	ClotheColor     Key = "clotheColor"
	Graphic         Key = "graphicType"
	Eyes            Key = "eyeType"
	Eyebrow         Key = "eyebrowType"
	Mouth           Key = "mouthType"
	Skin            Key = "skinColor"
)

// Category describes one customizable aspect of the avatar. Values lists
// every value a caller may supply for it.
type Category struct {
	Key    Key
	Label  string
	Values []string
}

var hairColors = []string{
	"Auburn", "Black", "Blonde", "BlondeGolden", "Brown", "BrownDark",
	"PastelPink", "Blue", "Platinum", "Red", "SilverGray",
}

var fabricColors = []string{
	"Black", "Blue01", "Blue02", "Blue03", "Gray01", "Gray02", "Heather",
	"PastelBlue", "PastelGreen", "PastelOrange", "PastelRed", "PastelYellow",
	"Pink", "Red", "White",
}

// Catalog is the fixed set of categories, in rendering order.
var Catalog = []Category{
	{Key: Top, Label: "Top", Values: []string{
		"NoHair", "Eyepatch", "Hat", "Hijab", "Turban",
		"WinterHat1", "WinterHat2", "WinterHat3", "WinterHat4",
		"LongHairBigHair", "LongHairBob", "LongHairBun", "LongHairCurly",
		"LongHairCurvy", "LongHairDreads", "LongHairFrida", "LongHairFro",
		"LongHairFroBand", "LongHairNotTooLong", "LongHairShavedSides",
		"LongHairMiaWallace", "LongHairStraight", "LongHairStraight2",
		"LongHairStraightStrand", "ShortHairDreads01", "ShortHairDreads02",
		"ShortHairFrizzle", "ShortHairShaggyMullet", "ShortHairShortCurly",
		"ShortHairShortFlat", "ShortHairShortRound", "ShortHairShortWaved",
		"ShortHairSides", "ShortHairTheCaesar", "ShortHairTheCaesarSidePart",
	}},
	{Key: Accessories, Label: "Accessories", Values: []string{
		"Blank", "Kurt", "Prescription01", "Prescription02", "Round", "Sunglasses", "Wayfarers",
	}},
	{Key: HairColor, Label: "Hair Color", Values: hairColors},
	{Key: HatColor, Label: "Hat Color", Values: fabricColors},
	{Key: FacialHair, Label: "Facial Hair", Values: []string{
		"Blank", "BeardMedium", "BeardLight", "BeardMajestic", "MoustacheFancy", "MoustacheMagnum",
	}},
	{Key: FacialHairColor, Label: "Facial Hair Color", Values: []string{
		"Auburn", "Black", "Blonde", "BlondeGolden", "Brown", "BrownDark", "Platinum", "Red",
	}},
	{Key: Clothe, Label: "Clothes", Values: []string{
		"BlazerShirt", "BlazerSweater", "CollarSweater", "GraphicShirt", "Hoodie",
		"Overall", "ShirtCrewNeck", "ShirtScoopNeck", "ShirtVNeck",
	}},
	{Key: ClotheColor, Label: "Color Fabric", Values: fabricColors},
	{Key: Graphic, Label: "Graphic", Values: []string{
		"Bat", "Cumbia", "Deer", "Diamond", "Hola", "Pizza", "Resist", "Selena",
		"Bear", "SkullOutline", "Skull",
	}},
	{Key: Eyes, Label: "Eyes", Values: []string{
		"Close", "Cry", "Default", "Dizzy", "EyeRoll", "Happy", "Hearts", "Side",
		"Squint", "Surprised", "Wink", "WinkWacky",
	}},
	{Key: Eyebrow, Label: "Eyebrow", Values: []string{
		"Angry", "AngryNatural", "Default", "DefaultNatural", "FlatNatural",
		"RaisedExcited", "RaisedExcitedNatural", "SadConcerned", "SadConcernedNatural",
		"UnibrowNatural", "UpDown", "UpDownNatural",
	}},
	{Key: Mouth, Label: "Mouth", Values: []string{
		"Concerned", "Default", "Disbelief", "Eating", "Grimace", "Sad", "ScreamOpen",
		"Serious", "Smile", "Tongue", "Twinkle", "Vomit",
	}},
	{Key: Skin, Label: "Skin", Values: []string{
		"Tanned", "Yellow", "Pale", "Light", "Brown", "DarkBrown", "Black",
	}},
}

// Lookup returns the catalog entry for k.
func Lookup(k Key) (Category, bool) {
	for _, c := range Catalog {
		if c.Key == k {
			return c, true
		}
	}
	return Category{}, false
}

// Allowed reports whether v is in the fixed enumeration of category k.
func Allowed(k Key, v string) bool {
	c, ok := Lookup(k)
	if !ok {
		return false
	}
	for _, x := range c.Values {
		if x == v {
			return true
		}
	}
	return false
}

// Values is a sparse category→value assignment.
type Values map[Key]string

// Clone returns a copy of v; a nil map clones to an empty one.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// Valid returns the subset of v whose values are allowed by the catalog.
func (v Values) Valid() Values {
	out := Values{}
	for k, s := range v {
		if Allowed(k, s) {
			out[k] = s
		}
	}
	return out
}
