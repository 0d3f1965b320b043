package avatar

import (
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"avatar/internal/anim"
	"avatar/internal/option"
	"avatar/internal/render"
)

func newTestAvatar(t *testing.T, p Props) (*Avatar, *anim.ManualClock) {
	t.Helper()
	clock := anim.NewManualClock()
	a := New(p, WithClock(clock), WithRand(rand.New(rand.NewPCG(3, 5))))
	t.Cleanup(a.Close)
	return a, clock
}

func refs(a *Avatar, k option.Key) int {
	st, _ := a.reg.State(k)
	return st.Refs
}

func value(a *Avatar, k option.Key) string {
	v, _ := a.reg.Value(k)
	return v
}

func TestRender_Defaults(t *testing.T) {
	a, _ := newTestAvatar(t, Props{})
	doc := a.Render()

	if len(doc.Shapes) == 0 {
		t.Fatal("Expected the default avatar to draw something")
	}
	if doc.Background == nil || *doc.Background != render.MustHex(DefaultBackground) {
		t.Errorf("Expected default background circle, got %v", doc.Background)
	}
	if doc.Scale != 1 {
		t.Errorf("Expected scale 1, got %v", doc.Scale)
	}
	if w, h := a.Size(); w != render.Width || h != render.Height {
		t.Errorf("Expected natural size, got %dx%d", w, h)
	}
}

func TestRender_NestedSelectorsFollowLiveBindings(t *testing.T) {
	a, _ := newTestAvatar(t, Props{})
	a.Render()

	if got := refs(a, option.Skin); got != 1 {
		t.Errorf("Expected skin bound once, got %d", got)
	}
	if got := refs(a, option.Graphic); got != 0 {
		t.Errorf("Expected graphic unbound under a crew neck, got %d", got)
	}
	if got := refs(a, option.FacialHairColor); got != 0 {
		t.Errorf("Expected facial hair colour unbound without a beard, got %d", got)
	}

	a.Update(Props{Values: option.Values{option.Clothe: "GraphicShirt", option.FacialHair: "BeardMedium"}})
	a.Render()
	if got := refs(a, option.Graphic); got != 1 {
		t.Errorf("Expected graphic bound by the graphic shirt, got %d", got)
	}
	if got := refs(a, option.FacialHairColor); got != 1 {
		t.Errorf("Expected facial hair colour bound by the beard, got %d", got)
	}

	a.Update(Props{Values: option.Values{option.Clothe: "BlazerShirt", option.Top: "Hat"}})
	a.Render()
	if got := refs(a, option.Graphic); got != 0 {
		t.Errorf("Expected graphic released, got %d", got)
	}
	if got := refs(a, option.ClotheColor); got != 0 {
		t.Errorf("Expected blazer to leave clothe colour unbound, got %d", got)
	}
	if got := refs(a, option.HairColor); got != 0 {
		t.Errorf("Expected hat to release hair colour, got %d", got)
	}
	if got := refs(a, option.FacialHairColor); got != 1 {
		t.Errorf("Expected beard to stay bound under the hat, got %d", got)
	}
}

func TestRender_Idempotent(t *testing.T) {
	a, _ := newTestAvatar(t, Props{})
	first := a.Render()
	for i := 0; i < 3; i++ {
		a.Render()
	}
	if got := refs(a, option.Top); got != 1 {
		t.Errorf("Expected repeated renders to keep one binding, got %d", got)
	}
	if got := a.Render(); len(got.Shapes) != len(first.Shapes) {
		t.Errorf("Expected stable output, got %d then %d shapes", len(first.Shapes), len(got.Shapes))
	}
}

func TestNew_InvalidInputIgnored(t *testing.T) {
	a, _ := newTestAvatar(t, Props{
		Values:     option.Values{option.Skin: "Green", option.Top: "Mohawk", "bogus": "x"},
		Style:      "Square",
		Background: "not a colour",
		Width:      -10,
		Height:     0,
	})
	if len(a.Values()) != 0 {
		t.Errorf("Expected no values seeded, got %v", a.Values())
	}
	doc := a.Render()
	if len(doc.Shapes) == 0 {
		t.Fatal("Expected a render despite invalid input")
	}
	if value(a, option.Skin) != "Light" || value(a, option.Top) != "ShortHairShortFlat" {
		t.Errorf("Expected defaults, got skin=%s top=%s", value(a, option.Skin), value(a, option.Top))
	}
	if doc.Background == nil {
		t.Error("Expected unknown style to keep the circle")
	}
	if w, h := a.Size(); w != render.Width || h != render.Height {
		t.Errorf("Expected non-positive size to be ignored, got %dx%d", w, h)
	}

	a.Update(Props{Style: StyleTransparent, Width: 128, Height: 0})
	if a.Render().Background != nil {
		t.Error("Expected transparent style to drop the background")
	}
	if w, h := a.Size(); w != 128 || h != render.Height {
		t.Errorf("Expected width 128 and height kept, got %dx%d", w, h)
	}
}

func TestUpdate_WritesOnlyChanges(t *testing.T) {
	a, _ := newTestAvatar(t, Props{Values: option.Values{option.Top: "Hat"}})
	writes := 0
	a.reg.AddValueListener(func(k option.Key, v string) {
		if k == option.Top {
			writes++
		}
	})

	a.Update(Props{Values: option.Values{option.Top: "Hat"}})
	if writes != 0 {
		t.Errorf("Expected unchanged value not to be written, got %d writes", writes)
	}
	a.Update(Props{Values: option.Values{option.Top: "Turban"}})
	a.Update(Props{Values: option.Values{option.Top: "Turban"}})
	if writes != 1 {
		t.Errorf("Expected one write, got %d", writes)
	}

	a.Update(Props{})
	if value(a, option.Top) != "Turban" {
		t.Errorf("Expected absent prop to keep the last value, got %s", value(a, option.Top))
	}
}

func TestRender_FeedsExpression(t *testing.T) {
	a, _ := newTestAvatar(t, Props{Values: option.Values{option.Mouth: "Smile"}})
	a.Render()

	if got := value(a, option.Mouth); got != "Smile" {
		t.Errorf("Expected explicit mouth, got %s", got)
	}
	if got := value(a, option.Eyes); got != anim.DefaultValue {
		t.Errorf("Expected eyes to fall back to Default, got %s", got)
	}
}

func TestPointer_HoverSequenceAndScale(t *testing.T) {
	seq := []anim.Expression{
		{Mouth: "Sad", Eyes: "Cry", Eyebrow: "Angry"},
		{Mouth: "Tongue", Eyes: "Wink", Eyebrow: "UpDown"},
	}
	a, clock := newTestAvatar(t, Props{Anim: anim.Config{HoverScale: 1.2, HoverSequence: seq}})

	a.PointerEnter()
	doc := a.Render()
	if doc.Scale != 1.2 {
		t.Errorf("Expected hover scale 1.2, got %v", doc.Scale)
	}
	if got := value(a, option.Mouth); got != "Sad" {
		t.Errorf("Expected first step on enter, got %s", got)
	}

	clock.Advance(time.Second)
	a.Render()
	if got := value(a, option.Eyes); got != "Wink" {
		t.Errorf("Expected second step after one interval, got %s", got)
	}

	a.PointerLeave()
	if got := a.Render().Scale; got != 1 {
		t.Errorf("Expected scale to drop at once on leave, got %v", got)
	}
	clock.Advance(10 * time.Second)
	a.Render()
	if got := value(a, option.Mouth); got != anim.DefaultValue {
		t.Errorf("Expected restoration back to Default, got %s", got)
	}
	if st := a.State(); st.Phase != anim.PhaseIdle {
		t.Errorf("Expected idle after restoration, got %v", st.Phase)
	}
}

func TestSubscribe(t *testing.T) {
	a, _ := newTestAvatar(t, Props{})
	ch, cancel := a.Subscribe()

	a.Update(Props{Values: option.Values{option.Top: "Hat"}})
	select {
	case <-ch:
	default:
		t.Fatal("Expected a notification after update")
	}

	cancel()
	if _, ok := <-ch; ok {
		t.Error("Expected cancelled channel to be closed")
	}
	cancel()
}

func TestClose(t *testing.T) {
	a, clock := newTestAvatar(t, Props{Anim: anim.Config{IdleInterval: time.Second}})
	ch, _ := a.Subscribe()
	a.Render()
	a.PointerEnter()

	a.Close()
	a.Close()
	for _, c := range option.Catalog {
		if got := refs(a, c.Key); got != 0 {
			t.Errorf("Expected %s released, got %d", c.Key, got)
		}
	}
	if _, ok := <-ch; ok {
		t.Error("Expected subscription closed")
	}
	if st := a.State(); st.Phase != anim.PhaseClosed {
		t.Errorf("Expected closed coordinator, got %v", st.Phase)
	}
	before := a.State().Animated
	clock.Advance(time.Minute)
	if a.State().Animated != before {
		t.Error("Expected no idle ticks after close")
	}
	late, _ := a.Subscribe()
	if _, ok := <-late; ok {
		t.Error("Expected subscribe after close to return a closed channel")
	}
}

func TestSnapshot(t *testing.T) {
	base := option.Values{option.Mouth: "Sad", option.Eyes: "Cry", option.Skin: "Green", option.Top: "Hat"}
	got := Snapshot(base, anim.Expression{Mouth: "Smile", Eyebrow: "Nope"})

	if len(got) != len(option.Catalog) {
		t.Fatalf("Expected every category, got %d", len(got))
	}
	tests := map[option.Key]string{
		option.Mouth:   "Smile",
		option.Eyes:    "Cry",
		option.Eyebrow: "Default",
		option.Skin:    "Light",
		option.Top:     "Hat",
	}
	for k, want := range tests {
		if got[k] != want {
			t.Errorf("Expected %s=%s, got %s", k, want, got[k])
		}
	}
	if base[option.Mouth] != "Sad" {
		t.Error("Expected base to be left untouched")
	}
}

func TestRenderSnapshot(t *testing.T) {
	p := Props{Values: option.Values{option.Clothe: "GraphicShirt"}, Style: StyleTransparent}
	a := RenderSnapshot(p, anim.Expression{Mouth: "Smile"})
	b := RenderSnapshot(p, anim.Expression{Mouth: "Smile"})

	if len(a.Shapes) == 0 || len(a.Shapes) != len(b.Shapes) {
		t.Fatalf("Expected deterministic output, got %d and %d shapes", len(a.Shapes), len(b.Shapes))
	}
	if a.Background != nil {
		t.Error("Expected no background for a transparent snapshot")
	}
	c := RenderSnapshot(p, anim.Expression{Mouth: "Serious"})
	if len(c.Shapes) == len(a.Shapes) {
		t.Error("Expected a different mouth to change the drawing")
	}
}

func TestTreeCoversCatalog(t *testing.T) {
	reg := option.NewRegistry()
	tr := newTree(reg)
	all := []binding{
		tr.skin, tr.clothe, tr.clotheColor, tr.graphic, tr.mouth, tr.eyes, tr.eyebrow,
		tr.top, tr.hairColor, tr.hatColor, tr.facialHair, tr.facialHairColor, tr.accessories,
	}
	for _, b := range all {
		b.Mount()
	}
	for _, c := range option.Catalog {
		st, _ := reg.State(c.Key)
		got := append([]string(nil), st.Valid...)
		want := append([]string(nil), c.Values...)
		sort.Strings(got)
		sort.Strings(want)
		if len(got) != len(want) {
			t.Errorf("%s: expected %d candidates, got %d", c.Key, len(want), len(got))
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: expected candidate %s, got %s", c.Key, want[i], got[i])
				break
			}
		}
		if st.Default != Defaults[c.Key] {
			t.Errorf("%s: expected default %s, got %s", c.Key, Defaults[c.Key], st.Default)
		}
	}
}
