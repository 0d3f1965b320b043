package anim

import "time"

const (
	MinIdleInterval = 500 * time.Millisecond
	MaxIdleInterval = 3000 * time.Millisecond

	MinHoverScale = 1.05
	MaxHoverScale = 1.32

	MinHoverInterval     = 100 * time.Millisecond
	MaxHoverInterval     = 2000 * time.Millisecond
	DefaultHoverInterval = 1000 * time.Millisecond

	restorePause = 600 * time.Millisecond
	restoreStep  = 800 * time.Millisecond
	restoreHold  = 100 * time.Millisecond

	minIdleDelay = 500 * time.Millisecond
)

// Config selects which animation behaviors run. The zero value disables all
// of them.
type Config struct {
	// IdleInterval enables idle drift when positive; it scales the random
	// delay between changes.
	IdleInterval time.Duration
	// HoverScale enables scaling while the pointer is over the avatar when
	// greater than 1.
	HoverScale float64
	// HoverSequence is cycled while hovered when non-empty.
	HoverSequence []Expression
	// HoverInterval is the delay between sequence steps; zero means the default.
	HoverInterval time.Duration
	// Original, when set, is restored after a hover instead of the props
	// the avatar was given.
	Original *Expression
}

// ClampIdleInterval bounds d to [MinIdleInterval, MaxIdleInterval].
func ClampIdleInterval(d time.Duration) time.Duration {
	return clampDuration(d, MinIdleInterval, MaxIdleInterval)
}

// ClampHoverInterval bounds d to [MinHoverInterval, MaxHoverInterval].
func ClampHoverInterval(d time.Duration) time.Duration {
	return clampDuration(d, MinHoverInterval, MaxHoverInterval)
}

// ClampHoverScale bounds s to [MinHoverScale, MaxHoverScale].
func ClampHoverScale(s float64) float64 {
	if s < MinHoverScale {
		return MinHoverScale
	}
	if s > MaxHoverScale {
		return MaxHoverScale
	}
	return s
}

// ScaleActive reports whether a configured scale turns hover scaling on.
// Anything at or below 1 means "no scaling", even though it would clamp up.
func ScaleActive(s float64) bool {
	return s > 1 && ClampHoverScale(s) > 1
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

// effective is Config after clamping and feature detection.
type effective struct {
	idle          bool
	idleInterval  time.Duration
	scale         float64
	scaleOn       bool
	sequence      []Expression
	hoverInterval time.Duration
	original      *Expression
}

func (c Config) effective(explicit Expression) effective {
	e := effective{
		scale:         1,
		sequence:      append([]Expression(nil), c.HoverSequence...),
		hoverInterval: DefaultHoverInterval,
	}
	if c.IdleInterval > 0 {
		e.idleInterval = ClampIdleInterval(c.IdleInterval)
		e.idle = !explicit.Any()
	}
	if c.HoverScale > 0 {
		e.scaleOn = ScaleActive(c.HoverScale)
		if e.scaleOn {
			e.scale = ClampHoverScale(c.HoverScale)
		}
	}
	if c.HoverInterval > 0 {
		e.hoverInterval = ClampHoverInterval(c.HoverInterval)
	}
	if c.Original != nil {
		o := *c.Original
		e.original = &o
	}
	return e
}
