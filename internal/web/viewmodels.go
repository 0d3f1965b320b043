package web

import (
	"html/template"

	"avatar/internal/export"
)

// StudioViewModel contains data for rendering the avatar studio page.
type StudioViewModel struct {
	Categories []CategoryView
	Avatar     AvatarViewModel
	Style      string
	Background string
	Animation  AnimationView
	Formats    []export.Format
}

// CategoryView is one option select of the studio form.
type CategoryView struct {
	Key      string
	Label    string
	Values   []string
	Selected string
	// Animated marks mouth, eyes and eyebrow, which may be left empty so the
	// animation drives them.
	Animated bool
}

type AnimationView struct {
	IdleInterval  int
	HoverScale    float64
	HoverInterval int
	HoverSequence bool
}

// AvatarViewModel is the live avatar fragment.
type AvatarViewModel struct {
	SVG template.HTML
}
