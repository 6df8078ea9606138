// Package pulse drives the ambient breathing animation of the passive glyph
// layer. A Scheduler owns a rotating working set of glyph indices; sampling it
// at a time yields the opacity for every pulsing index, and advancing it
// retires a few members and admits fresh ones so the pattern never settles.
//
// The scheduler holds no timers. The owner feeds it a clock, which makes the
// whole animation reproducible in tests with a virtual now.
package pulse

import (
	"math"
	"math/rand"
	"time"
)

// Defaults for the breathing animation.
const (
	DefaultBaseCount     = 24
	DefaultPeriod        = 3 * time.Second
	DefaultTurnoverEvery = 1200 * time.Millisecond
	DefaultTurnoverCount = 4
	DefaultMinOpacity    = 0.2
	DefaultMaxOpacity    = 1.0

	// admitRetries bounds the random search for a not-yet-pulsing index, so
	// turnover terminates even when nearly every index already pulses.
	admitRetries = 16
)

// Config tunes a Scheduler. Zero values fall back to the defaults above.
type Config struct {
	// BaseCount is the target working-set size.
	BaseCount int

	// Period is the length of one full breath.
	Period time.Duration

	// TurnoverEvery is how often members are rotated out.
	TurnoverEvery time.Duration

	// TurnoverCount is how many members each rotation replaces.
	TurnoverCount int

	// MinOpacity and MaxOpacity bound the breathing curve.
	MinOpacity float64
	MaxOpacity float64
}

func (c Config) withDefaults() Config {
	if c.BaseCount <= 0 {
		c.BaseCount = DefaultBaseCount
	}
	if c.Period <= 0 {
		c.Period = DefaultPeriod
	}
	if c.TurnoverEvery <= 0 {
		c.TurnoverEvery = DefaultTurnoverEvery
	}
	if c.TurnoverCount <= 0 {
		c.TurnoverCount = DefaultTurnoverCount
	}
	if c.MaxOpacity <= 0 {
		c.MaxOpacity = DefaultMaxOpacity
	}
	if c.MinOpacity < 0 || c.MinOpacity > c.MaxOpacity {
		c.MinOpacity = DefaultMinOpacity
	}
	return c
}

// entry is one pulsing glyph: its index, when it joined, and a phase offset
// so members do not breathe in lockstep.
type entry struct {
	index int
	start time.Time
	phase float64
}

// Scheduler owns the working set for a glyph layer of `total` cells.
type Scheduler struct {
	cfg          Config
	total        int
	rng          *rand.Rand
	entries      []entry
	member       map[int]bool
	nextTurnover time.Time
}

// New builds a scheduler over total glyph indices and fills the working set to
// min(BaseCount, total). A nil rng gets a time-seeded one.
func New(cfg Config, total int, rng *rand.Rand, now time.Time) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Scheduler{
		cfg:          cfg.withDefaults(),
		total:        total,
		rng:          rng,
		member:       make(map[int]bool),
		nextTurnover: now.Add(cfg.withDefaults().TurnoverEvery),
	}
	target := s.targetSize()
	for len(s.entries) < target {
		s.admit(now)
	}
	return s
}

func (s *Scheduler) targetSize() int {
	if s.total < s.cfg.BaseCount {
		return s.total
	}
	return s.cfg.BaseCount
}

// admit adds one random non-member index, giving up after a bounded number of
// collisions with existing members.
func (s *Scheduler) admit(now time.Time) {
	if s.total <= 0 || len(s.entries) >= s.total {
		return
	}
	for try := 0; try < admitRetries; try++ {
		idx := s.rng.Intn(s.total)
		if s.member[idx] {
			continue
		}
		s.join(idx, now)
		return
	}
	// Random probing kept colliding; walk from a random offset so the set
	// still reaches its target size when occupancy is high.
	off := s.rng.Intn(s.total)
	for i := 0; i < s.total; i++ {
		idx := (off + i) % s.total
		if !s.member[idx] {
			s.join(idx, now)
			return
		}
	}
}

func (s *Scheduler) join(idx int, now time.Time) {
	s.member[idx] = true
	s.entries = append(s.entries, entry{
		index: idx,
		start: now,
		phase: s.rng.Float64(),
	})
}

// Sample returns the opacity for every pulsing index at the given time.
// Indices absent from the map render at full opacity.
func (s *Scheduler) Sample(now time.Time) map[int]float64 {
	out := make(map[int]float64, len(s.entries))
	period := s.cfg.Period.Seconds()
	span := s.cfg.MaxOpacity - s.cfg.MinOpacity
	for _, e := range s.entries {
		elapsed := now.Sub(e.start).Seconds()
		progress := math.Mod(elapsed/period+e.phase, 1.0)
		if progress < 0 {
			progress += 1.0
		}
		// Half-cosine breath: starts and ends at the minimum, peaks mid-cycle.
		wave := 0.5 - 0.5*math.Cos(2*math.Pi*progress)
		out[e.index] = s.cfg.MinOpacity + span*wave
	}
	return out
}

// Advance performs any turnover that has come due since the last call.
func (s *Scheduler) Advance(now time.Time) {
	for !now.Before(s.nextTurnover) {
		s.turnover(s.nextTurnover)
		s.nextTurnover = s.nextTurnover.Add(s.cfg.TurnoverEvery)
	}
}

// turnover retires TurnoverCount random members and admits replacements,
// then tops the set back up to the target size.
func (s *Scheduler) turnover(now time.Time) {
	retire := s.cfg.TurnoverCount
	if retire > len(s.entries) {
		retire = len(s.entries)
	}
	for i := 0; i < retire; i++ {
		victim := s.rng.Intn(len(s.entries))
		delete(s.member, s.entries[victim].index)
		last := len(s.entries) - 1
		s.entries[victim] = s.entries[last]
		s.entries = s.entries[:last]
	}
	for i := 0; i < retire; i++ {
		s.admit(now)
	}
	for len(s.entries) < s.targetSize() {
		s.admit(now)
	}
}

// Size returns the current working-set size.
func (s *Scheduler) Size() int {
	return len(s.entries)
}

// Indices returns the pulsing indices in no particular order.
func (s *Scheduler) Indices() []int {
	out := make([]int, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.index
	}
	return out
}

// Curve evaluates one breath of the opacity curve at n evenly spaced points,
// for plotting and diagnostics.
func Curve(cfg Config, n int) []float64 {
	cfg = cfg.withDefaults()
	if n <= 0 {
		return nil
	}
	span := cfg.MaxOpacity - cfg.MinOpacity
	out := make([]float64, n)
	for i := range out {
		progress := float64(i) / float64(n)
		out[i] = cfg.MinOpacity + span*(0.5-0.5*math.Cos(2*math.Pi*progress))
	}
	return out
}
