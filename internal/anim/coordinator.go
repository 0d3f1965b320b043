package anim

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Phase is the state the coordinator is in.
type Phase int

const (
	// PhaseIdle: not hovered. Idle drift may be ticking.
	PhaseIdle Phase = iota
	// PhaseHovering: pointer is over the avatar. A hover sequence may be ticking.
	PhaseHovering
	// PhaseRestoring: pointer left; the saved expression is being replayed.
	PhaseRestoring
	// PhaseClosed: unmounted. Nothing is scheduled and nothing will be.
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHovering:
		return "hovering"
	case PhaseRestoring:
		return "restoring"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Rand is the randomness idle drift draws from.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Snapshot is a read-only view of the coordinator, taken under its lock.
type Snapshot struct {
	Phase Phase
	// Step is the next restoration step (0 mouth, 1 eyes, 2 eyebrow, 3 final hold)
	// while Phase is PhaseRestoring.
	Step      int
	Hovered   bool
	MouseOver bool
	Idle      bool
	Scale     float64
	Animated  Expression
	Saved     *Expression
	Original  *Expression
}

// Coordinator owns the animation session of one avatar. At most one
// transition is pending at any time; every callback carries the generation
// it was scheduled in and is dropped once superseded, so a cancelled
// transition can never act late. Methods are safe for concurrent use.
type Coordinator struct {
	mu       sync.Mutex
	clock    Clock
	rnd      Rand
	onChange func()

	cfg   effective
	props Expression

	phase     Phase
	step      int
	cells     Expression
	hovered   bool
	mouseOver bool

	idleRunning bool
	idleTarget  bool
	saved       *Expression
	original    *Expression
	seqIndex    int

	pending Timer
	gen     uint64
	mounted bool
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithClock replaces the real clock, typically with a ManualClock in tests.
func WithClock(c Clock) Option {
	return func(co *Coordinator) { co.clock = c }
}

// WithRand replaces the global random source.
func WithRand(r Rand) Option {
	return func(co *Coordinator) { co.rnd = r }
}

// WithObserver registers fn to be called after every state change. It is
// called without the coordinator lock held and may run on a timer goroutine.
func WithObserver(fn func()) Option {
	return func(co *Coordinator) { co.onChange = fn }
}

// New builds a coordinator for cfg. props holds the caller's explicit
// expression values; any of them disables idle drift.
func New(cfg Config, props Expression, opts ...Option) *Coordinator {
	c := &Coordinator{
		clock: RealClock{},
		rnd:   globalRand{},
		props: props,
	}
	for _, o := range opts {
		o(c)
	}
	c.cfg = cfg.effective(props)
	return c
}

// Mount starts the session. Idle drift, when enabled, begins from a random
// expression.
func (c *Coordinator) Mount() {
	c.mu.Lock()
	if c.mounted || c.phase == PhaseClosed {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	if c.cfg.idle {
		c.cells = c.randomExpression()
		c.startIdle()
	}
	c.mu.Unlock()
	c.notify()
}

// Unmount cancels whatever is pending and closes the session for good.
func (c *Coordinator) Unmount() {
	c.mu.Lock()
	if c.phase == PhaseClosed {
		c.mu.Unlock()
		return
	}
	c.cancel()
	c.phase = PhaseClosed
	c.idleRunning = false
	c.hovered = false
	c.mouseOver = false
	c.mu.Unlock()
	c.notify()
}

// SetConfig applies new configuration and explicit props.
func (c *Coordinator) SetConfig(cfg Config, props Expression) {
	c.mu.Lock()
	if c.phase == PhaseClosed {
		c.mu.Unlock()
		return
	}
	wasIdle := c.cfg.idle
	c.props = props
	c.cfg = cfg.effective(props)
	if c.mounted && !c.hovered {
		switch {
		case wasIdle && !c.cfg.idle:
			c.stopIdle()
			c.cells = Expression{}
		case !wasIdle && c.cfg.idle:
			c.cells = c.randomExpression()
			c.startIdle()
		}
	}
	c.mu.Unlock()
	c.notify()
}

// Enter handles the pointer entering the avatar.
func (c *Coordinator) Enter() {
	c.mu.Lock()
	if !c.mounted || c.phase == PhaseClosed {
		c.mu.Unlock()
		return
	}
	if c.phase == PhaseHovering {
		c.mouseOver = true
		c.mu.Unlock()
		return
	}
	resuming := c.phase == PhaseRestoring
	c.cancel()
	c.hovered = true
	c.mouseOver = true

	switch {
	case c.cfg.original != nil:
		o := *c.cfg.original
		c.original = &o
	case c.props.Any():
		o := c.props
		c.original = &o
	default:
		c.original = nil
	}

	switch {
	case resuming:
		// The interrupted restoration keeps its target.
		if len(c.cfg.sequence) > 0 {
			c.startSequence()
		}
	case len(c.cfg.sequence) > 0:
		v := c.visible()
		c.saved = &v
		c.idleTarget = c.idleRunning
		c.stopIdle()
		c.startSequence()
	case c.idleRunning:
		v := c.cells
		c.saved = &v
		c.idleTarget = true
		c.stopIdle()
	}
	c.phase = PhaseHovering
	c.mu.Unlock()
	c.notify()
}

// Leave handles the pointer leaving the avatar. Scaling and sequence ticks
// stop at once; a sequence is then unwound step by step.
func (c *Coordinator) Leave() {
	c.mu.Lock()
	if c.phase != PhaseHovering {
		c.mouseOver = false
		c.mu.Unlock()
		return
	}
	c.mouseOver = false
	c.cancel()

	switch {
	case len(c.cfg.sequence) > 0 && c.saved != nil:
		c.phase = PhaseRestoring
		c.step = 0
		c.schedule(restorePause, c.restoreTick)
	default:
		switch {
		case c.idleTarget && c.saved != nil && c.cfg.idle:
			c.cells = *c.saved
		case c.idleTarget:
			c.cells = Expression{}
		}
		c.endHover()
		c.resumeIdle()
	}
	c.mu.Unlock()
	c.notify()
}

// Resolve returns the expression to render now. Explicit props win over
// animated values, except while a hover sequence plays over props with no
// idle drift configured.
func (c *Coordinator) Resolve() Expression {
	c.mu.Lock()
	defer c.mu.Unlock()
	preferAnimated := c.hovered && len(c.cfg.sequence) > 0 && !c.cfg.idle && c.props.Any()
	var out Expression
	for i := 0; i < 3; i++ {
		p, a := c.props.Field(i), c.cells.Field(i)
		v := DefaultValue
		switch {
		case preferAnimated && a != "":
			v = a
		case p != "":
			v = p
		case a != "":
			v = a
		}
		out = out.With(i, v)
	}
	return out
}

// Scale is the presentation scale: the configured factor while the pointer
// is over the avatar, 1 otherwise.
func (c *Coordinator) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mouseOver && c.cfg.scaleOn {
		return c.cfg.scale
	}
	return 1
}

func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Phase:     c.phase,
		Step:      c.step,
		Hovered:   c.hovered,
		MouseOver: c.mouseOver,
		Idle:      c.idleRunning,
		Scale:     1,
		Animated:  c.cells,
	}
	if c.mouseOver && c.cfg.scaleOn {
		s.Scale = c.cfg.scale
	}
	if c.saved != nil {
		v := *c.saved
		s.Saved = &v
	}
	if c.original != nil {
		v := *c.original
		s.Original = &v
	}
	return s
}

// Everything below runs with c.mu held.

func (c *Coordinator) visible() Expression {
	return c.props.Or(c.cells).Or(Expression{Mouth: DefaultValue, Eyes: DefaultValue, Eyebrow: DefaultValue})
}

func (c *Coordinator) endHover() {
	c.hovered = false
	c.phase = PhaseIdle
	c.step = 0
	c.saved = nil
	c.idleTarget = false
}

func (c *Coordinator) startIdle() {
	if !c.cfg.idle || c.idleRunning || c.phase == PhaseClosed {
		return
	}
	c.idleRunning = true
	c.scheduleIdle()
}

func (c *Coordinator) stopIdle() {
	if !c.idleRunning {
		return
	}
	c.idleRunning = false
	c.cancel()
}

func (c *Coordinator) scheduleIdle() {
	base := float64(time.Second) * (1 + c.rnd.Float64())
	d := time.Duration(base * float64(c.cfg.idleInterval) / float64(2*time.Second))
	if d < minIdleDelay {
		d = minIdleDelay
	}
	c.schedule(d, c.idleTick)
}

func (c *Coordinator) idleTick() {
	if !c.idleRunning {
		return
	}
	field := c.rnd.IntN(3)
	c.cells = c.cells.With(field, c.pickOther(field, c.cells.Field(field)))
	c.scheduleIdle()
}

func (c *Coordinator) startSequence() {
	c.seqIndex = 0
	c.applyStep()
	c.schedule(c.cfg.hoverInterval, c.sequenceTick)
}

func (c *Coordinator) sequenceTick() {
	if len(c.cfg.sequence) == 0 {
		return
	}
	c.seqIndex = (c.seqIndex + 1) % len(c.cfg.sequence)
	c.applyStep()
	c.schedule(c.cfg.hoverInterval, c.sequenceTick)
}

func (c *Coordinator) applyStep() {
	if len(c.cfg.sequence) == 0 {
		return
	}
	step := c.cfg.sequence[c.seqIndex%len(c.cfg.sequence)]
	c.cells = step.Or(c.cells)
}

func (c *Coordinator) restoreTick() {
	if c.saved == nil {
		c.finishRestore()
		return
	}
	c.cells = c.cells.With(c.step, c.saved.Field(c.step))
	c.step++
	if c.step < 3 {
		c.schedule(restoreStep, c.restoreTick)
		return
	}
	c.schedule(restoreStep+restoreHold, c.finishRestore)
}

func (c *Coordinator) finishRestore() {
	switch {
	case c.idleTarget && c.saved != nil && c.cfg.idle:
		c.cells = *c.saved
	case c.cfg.original != nil:
		c.cells = *c.cfg.original
	default:
		c.cells = Expression{}
	}
	c.original = nil
	c.endHover()
	c.resumeIdle()
}

// resumeIdle starts drift after a hover when the current config asks for
// it, whatever it was when the hover began.
func (c *Coordinator) resumeIdle() {
	if !c.cfg.idle {
		return
	}
	if !c.cells.Any() {
		c.cells = c.randomExpression()
	}
	c.startIdle()
}

// schedule replaces the pending transition with fn after d.
func (c *Coordinator) schedule(d time.Duration, fn func()) {
	c.cancel()
	gen := c.gen
	c.pending = c.clock.AfterFunc(d, func() { c.fire(gen, fn) })
}

func (c *Coordinator) cancel() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.gen++
}

func (c *Coordinator) fire(gen uint64, fn func()) {
	c.mu.Lock()
	if gen != c.gen || c.phase == PhaseClosed {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	fn()
	c.mu.Unlock()
	c.notify()
}

func (c *Coordinator) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Coordinator) randomExpression() Expression {
	var e Expression
	for i := 0; i < 3; i++ {
		l := fallbackList(i)
		e = e.With(i, l[c.rnd.IntN(len(l))])
	}
	return e
}

func (c *Coordinator) pickOther(field int, cur string) string {
	l := fallbackList(field)
	opts := make([]string, 0, len(l))
	for _, v := range l {
		if v != cur {
			opts = append(opts, v)
		}
	}
	if len(opts) == 0 {
		return cur
	}
	return opts[c.rnd.IntN(len(opts))]
}
