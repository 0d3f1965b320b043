// Package avatar composes the option registry, the part tree of selectors and
// the animation coordinator into one live avatar.
package avatar

import (
	"image/color"
	"sync"

	"avatar/internal/anim"
	"avatar/internal/option"
	"avatar/internal/render"
)

// Style is how the avatar is presented behind its parts.
type Style string

const (
	StyleCircle      Style = "Circle"
	StyleTransparent Style = "Transparent"
)

// DefaultBackground fills the circle when no valid background is given.
const DefaultBackground = "#65C9FF"

// Props is everything a caller configures on an avatar.
type Props struct {
	Values     option.Values
	Style      Style
	Background string
	Width      int
	Height     int
	Anim       anim.Config
}

var expressionKeys = [3]option.Key{option.Mouth, option.Eyes, option.Eyebrow}

// expressionOf extracts the expression props among vals.
func expressionOf(vals option.Values) anim.Expression {
	var e anim.Expression
	for i, k := range expressionKeys {
		e = e.With(i, vals[k])
	}
	return e
}

// Option customizes an Avatar.
type Option func(*settings)

type settings struct {
	coord []anim.Option
}

// WithClock drives the animation from c instead of real time.
func WithClock(c anim.Clock) Option {
	return func(s *settings) { s.coord = append(s.coord, anim.WithClock(c)) }
}

// WithRand draws idle drift from r.
func WithRand(r anim.Rand) Option {
	return func(s *settings) { s.coord = append(s.coord, anim.WithRand(r)) }
}

// Avatar is one live avatar. Its methods are safe for concurrent use.
type Avatar struct {
	mu     sync.Mutex
	reg    *option.Registry
	tree   *tree
	coord  *anim.Coordinator
	seen   option.Values
	live   map[binding]bool
	style  Style
	bg     color.NRGBA
	width  int
	height int
	closed bool

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New builds an avatar from p and starts its animation. Values outside the
// catalog, unknown styles, bad colours and non-positive sizes are ignored.
func New(p Props, opts ...Option) *Avatar {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	seed := p.Values.Valid()
	a := &Avatar{
		reg:    option.NewRegistry(),
		seen:   seed.Clone(),
		live:   map[binding]bool{},
		style:  StyleCircle,
		bg:     render.MustHex(DefaultBackground),
		width:  render.Width,
		height: render.Height,
		subs:   map[int]chan struct{}{},
	}
	a.reg.SetAll(seed)
	a.tree = newTree(a.reg)
	a.present(p)
	a.coord = anim.New(p.Anim, expressionOf(seed), append(s.coord, anim.WithObserver(a.changed))...)
	a.coord.Mount()
	return a
}

// present applies the presentational part of p, keeping prior values for
// anything invalid.
func (a *Avatar) present(p Props) {
	switch p.Style {
	case StyleCircle, StyleTransparent:
		a.style = p.Style
	}
	if c, err := render.Hex(p.Background); err == nil {
		a.bg = c
	}
	if p.Width > 0 {
		a.width = p.Width
	}
	if p.Height > 0 {
		a.height = p.Height
	}
}

// Update applies new props. Only values that changed since the last call
// reach the registry; a value that disappears from p is kept, so the
// category falls back to what it last had.
func (a *Avatar) Update(p Props) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	valid := p.Values.Valid()
	for k, v := range valid {
		if prev, ok := a.seen[k]; ok && prev == v {
			continue
		}
		a.seen[k] = v
		a.reg.SetValue(k, v)
	}
	a.present(p)
	a.mu.Unlock()

	a.coord.SetConfig(p.Anim, expressionOf(valid))
	a.changed()
}

// Render returns the avatar as it looks now.
func (a *Avatar) Render() render.Document {
	e := a.coord.Resolve()
	scale := a.coord.Scale()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return render.Document{Scale: 1}
	}
	for i, k := range expressionKeys {
		if v, ok := a.reg.Value(k); !ok || v != e.Field(i) {
			a.reg.SetValue(k, e.Field(i))
		}
	}
	f := newFrame()
	a.tree.draw(f)
	for b := range a.live {
		if !f.live[b] {
			b.Unmount()
		}
	}
	a.live = f.live

	doc := render.Document{Shapes: f.shapes(), Scale: scale}
	if a.style == StyleCircle {
		bg := a.bg
		doc.Background = &bg
	}
	return doc
}

// Size is the pixel size the avatar is presented at.
func (a *Avatar) Size() (w, h int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.width, a.height
}

// Values returns the category values set on the registry so far.
func (a *Avatar) Values() option.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reg.Values()
}

// State exposes the animation state.
func (a *Avatar) State() anim.Snapshot {
	return a.coord.Snapshot()
}

func (a *Avatar) PointerEnter() { a.coord.Enter() }

func (a *Avatar) PointerLeave() { a.coord.Leave() }

// Subscribe returns a channel that receives a value whenever the avatar may
// look different. Notifications coalesce: a slow reader sees at least one
// after the last change. cancel releases the subscription.
func (a *Avatar) Subscribe() (<-chan struct{}, func()) {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	ch := make(chan struct{}, 1)
	if a.subs == nil {
		close(ch)
		return ch, func() {}
	}
	id := a.nextSub
	a.nextSub++
	a.subs[id] = ch
	return ch, func() {
		a.subMu.Lock()
		defer a.subMu.Unlock()
		if c, ok := a.subs[id]; ok {
			delete(a.subs, id)
			close(c)
		}
	}
}

func (a *Avatar) changed() {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	for _, ch := range a.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close stops the animation, releases every selector binding and closes all
// subscriptions. Calling it again does nothing.
func (a *Avatar) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	for b := range a.live {
		b.Unmount()
	}
	a.live = nil
	a.mu.Unlock()

	// Subscribers go first so the coordinator's final notification finds
	// nobody to wake. A closed avatar renders nothing, so pending
	// notifications are dropped too.
	a.subMu.Lock()
	for id, ch := range a.subs {
		delete(a.subs, id)
		select {
		case <-ch:
		default:
		}
		close(ch)
	}
	a.subs = nil
	a.subMu.Unlock()

	a.coord.Unmount()
}

// Snapshot resolves base plus one expression into a complete set of valid
// category values: every category present, invalid entries replaced by the
// default.
func Snapshot(base option.Values, e anim.Expression) option.Values {
	out := make(option.Values, len(option.Catalog))
	for _, c := range option.Catalog {
		v := base[c.Key]
		if !option.Allowed(c.Key, v) {
			v = Defaults[c.Key]
		}
		out[c.Key] = v
	}
	for i, k := range expressionKeys {
		if v := e.Field(i); option.Allowed(k, v) {
			out[k] = v
		}
	}
	return out
}

// RenderSnapshot renders p with expression e on a throwaway part tree. No
// timers run; the result depends only on its arguments.
func RenderSnapshot(p Props, e anim.Expression) render.Document {
	vals := Snapshot(p.Values, e)
	reg := option.NewRegistry()
	reg.SetAll(vals)
	t := newTree(reg)
	f := newFrame()
	t.draw(f)
	for b := range f.live {
		b.Unmount()
	}

	doc := render.Document{Shapes: f.shapes(), Scale: 1}
	if p.Style != StyleTransparent {
		c := render.MustHex(DefaultBackground)
		if bg, err := render.Hex(p.Background); err == nil {
			c = bg
		}
		doc.Background = &c
	}
	return doc
}
