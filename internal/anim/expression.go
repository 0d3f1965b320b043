// Package anim drives the expression animation of one avatar: idle drift,
// hover scaling, hover expression sequences and the staged restoration that
// follows a hover.
package anim

// Expression is the mouth/eyes/eyebrow triple animated as one unit. An empty
// field means "not set".
type Expression struct {
	Mouth   string `yaml:"mouth"`
	Eyes    string `yaml:"eyes"`
	Eyebrow string `yaml:"eyebrow"`
}

// DefaultValue is rendered for a field nobody has set.
const DefaultValue = "Default"

// Any reports whether at least one field is set.
func (e Expression) Any() bool {
	return e.Mouth != "" || e.Eyes != "" || e.Eyebrow != ""
}

// Field returns the value of field i: 0 mouth, 1 eyes, 2 eyebrow.
func (e Expression) Field(i int) string {
	switch i {
	case 0:
		return e.Mouth
	case 1:
		return e.Eyes
	default:
		return e.Eyebrow
	}
}

// With returns e with field i set to v.
func (e Expression) With(i int, v string) Expression {
	switch i {
	case 0:
		e.Mouth = v
	case 1:
		e.Eyes = v
	default:
		e.Eyebrow = v
	}
	return e
}

// Or fills every empty field of e from fb.
func (e Expression) Or(fb Expression) Expression {
	for i := 0; i < 3; i++ {
		if e.Field(i) == "" {
			e = e.With(i, fb.Field(i))
		}
	}
	return e
}

// Idle drift draws from these lists, not from the registry, so it works
// before any selector has registered its candidates.
var (
	idleMouths   = []string{"Default", "Smile", "Twinkle", "Serious", "Tongue", "Concerned"}
	idleEyes     = []string{"Default", "Happy", "Side", "Squint", "Wink", "Surprised"}
	idleEyebrows = []string{"Default", "DefaultNatural", "RaisedExcited", "UpDown", "FlatNatural"}
)

func fallbackList(field int) []string {
	switch field {
	case 0:
		return idleMouths
	case 1:
		return idleEyes
	default:
		return idleEyebrows
	}
}

// DefaultHoverSequence is the four-step preset used when a caller asks for
// a hover sequence without listing one.
var DefaultHoverSequence = []Expression{
	{Mouth: "Smile", Eyes: "Happy", Eyebrow: "RaisedExcited"},
	{Mouth: "Twinkle", Eyes: "Wink", Eyebrow: "Default"},
	{Mouth: "ScreamOpen", Eyes: "Surprised", Eyebrow: "RaisedExcitedNatural"},
	{Mouth: "Tongue", Eyes: "WinkWacky", Eyebrow: "UpDown"},
}
