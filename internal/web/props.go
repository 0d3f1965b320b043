package web

import (
	"net/url"
	"strconv"
	"time"

	"avatar/internal/anim"
	"avatar/internal/avatar"
	"avatar/internal/option"
)

// Form and query parameter names besides the category keys.
const (
	paramStyle         = "avatarStyle"
	paramBackground    = "background"
	paramWidth         = "width"
	paramHeight        = "height"
	paramIdleInterval  = "idleInterval"
	paramHoverScale    = "hoverScale"
	paramHoverInterval = "hoverInterval"
	paramHoverSequence = "hoverSequence"
)

// propsFrom overlays the parameters present in q onto base. Values that do
// not parse are skipped; the avatar itself ignores values outside the
// catalog.
func propsFrom(base avatar.Props, q url.Values) avatar.Props {
	p := base
	p.Values = base.Values.Clone()
	for _, c := range option.Catalog {
		if v := q.Get(string(c.Key)); v != "" {
			p.Values[c.Key] = v
		}
	}
	if v := q.Get(paramStyle); v != "" {
		p.Style = avatar.Style(v)
	}
	if v := q.Get(paramBackground); v != "" {
		p.Background = v
	}
	if n, ok := intParam(q, paramWidth); ok {
		p.Width = n
	}
	if n, ok := intParam(q, paramHeight); ok {
		p.Height = n
	}

	p.Anim.HoverSequence = append([]anim.Expression(nil), base.Anim.HoverSequence...)
	if n, ok := intParam(q, paramIdleInterval); ok {
		p.Anim.IdleInterval = time.Duration(n) * time.Millisecond
	}
	if n, ok := intParam(q, paramHoverInterval); ok {
		p.Anim.HoverInterval = time.Duration(n) * time.Millisecond
	}
	if v := q.Get(paramHoverScale); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.Anim.HoverScale = f
		}
	}
	switch q.Get(paramHoverSequence) {
	case "default":
		p.Anim.HoverSequence = append([]anim.Expression(nil), anim.DefaultHoverSequence...)
	case "off":
		p.Anim.HoverSequence = nil
	}
	return p
}

func intParam(q url.Values, name string) (int, bool) {
	v := q.Get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
