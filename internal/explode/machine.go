// Package explode implements the per-glyph click animation: a small cyclic
// state machine that blows the glyph up, hides it, and fades it back in.
// Each visual cell owns one Machine; there is no shared state between cells.
package explode

import "time"

// Phase durations of the animation sequence.
const (
	ExplodeDuration = 300 * time.Millisecond
	HiddenDuration  = 1500 * time.Millisecond
	FadeInDuration  = 500 * time.Millisecond
)

// Phase is the machine's current animation state.
type Phase int

const (
	// Idle glyphs are fully opaque and accept clicks.
	Idle Phase = iota

	// Exploding scales and fades the glyph out.
	Exploding

	// Hidden is fully transparent.
	Hidden

	// FadingIn brings the glyph back.
	FadingIn
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Exploding:
		return "exploding"
	case Hidden:
		return "hidden"
	case FadingIn:
		return "fading-in"
	default:
		return "unknown"
	}
}

// Machine is one glyph's animation state. The zero value is an idle machine.
//
// The machine is driven by the owner's clock: Click starts a sequence, Step
// advances it past any deadlines that have passed. A non-idle phase is the
// latch that rejects further clicks until the cycle completes.
type Machine struct {
	phase    Phase
	entered  time.Time
	deadline time.Time
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Active reports whether a sequence is in flight. Active machines ignore
// pointer input.
func (m *Machine) Active() bool {
	return m.phase != Idle
}

// Click starts the explode sequence. It reports whether the click was
// accepted; a click on a non-idle machine is a no-op, so the caller plays the
// click sound only when Click returns true.
func (m *Machine) Click(now time.Time) bool {
	if m.phase != Idle {
		return false
	}
	m.enter(Exploding, now)
	return true
}

// Step advances the machine past every deadline that now has reached. A large
// gap between calls may cross several phases at once.
func (m *Machine) Step(now time.Time) {
	for m.phase != Idle && !now.Before(m.deadline) {
		switch m.phase {
		case Exploding:
			m.enter(Hidden, m.deadline)
		case Hidden:
			m.enter(FadingIn, m.deadline)
		case FadingIn:
			m.phase = Idle
			m.entered = m.deadline
			m.deadline = time.Time{}
		}
	}
}

func (m *Machine) enter(p Phase, now time.Time) {
	m.phase = p
	m.entered = now
	switch p {
	case Exploding:
		m.deadline = now.Add(ExplodeDuration)
	case Hidden:
		m.deadline = now.Add(HiddenDuration)
	case FadingIn:
		m.deadline = now.Add(FadeInDuration)
	}
}

// Progress returns how far the current phase has run, in [0, 1]. Idle and
// Hidden report 1 and 0 respectively; the renderer maps Exploding progress to
// scale-and-fade-out and FadingIn progress to fade-in.
func (m *Machine) Progress(now time.Time) float64 {
	switch m.phase {
	case Idle:
		return 1
	case Hidden:
		return 0
	}
	total := m.deadline.Sub(m.entered)
	if total <= 0 {
		return 1
	}
	p := float64(now.Sub(m.entered)) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
