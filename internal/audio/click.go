// Package audio plays the glyph click sound. The speaker is a shared system
// resource, so the package exposes a small Player interface with a beep-backed
// implementation and a no-op fallback for tests, --mute, and machines without
// an audio backend.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	clickDuration = 60 * time.Millisecond
	clickAttack   = 2 * time.Millisecond
	clickRelease  = 45 * time.Millisecond
	clickFreq     = 1320.0
)

// Player is the click-sound collaborator. Implementations must be safe for
// concurrent use.
type Player interface {
	PlayClick()
	Close()
}

// NewNop returns a player that swallows every click.
func NewNop() Player {
	return nopPlayer{}
}

type nopPlayer struct{}

func (nopPlayer) PlayClick() {}
func (nopPlayer) Close()     {}

// Speaker plays clicks through the system audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	open   bool
}

// NewSpeaker initializes the audio backend. On failure it returns the error
// so the caller can degrade to NewNop; a blank decorative layer should never
// lose its sound to a crash, nor crash for losing its sound.
func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &Speaker{
		mixer:  &beep.Mixer{},
		volume: volume,
		open:   true,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// PlayClick mixes one click into the output stream.
func (s *Speaker) PlayClick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	speaker.Lock()
	s.mixer.Add(newClick(s.volume))
	speaker.Unlock()
}

// Close silences the player. The speaker itself stays initialized; beep has
// no teardown, clearing the mixer is the accepted way to stop output.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.open = false
}

// newClick builds the click streamer: a short high sine ping over a burst of
// noise, shaped by a fast attack/release envelope.
func newClick(volume float64) beep.Streamer {
	ping := newOscillator(clickFreq, clickDuration, false)
	noise := newOscillator(0, clickDuration/3, true)
	mixed := beep.Mix(
		withVolume(newEnvelope(ping, clickDuration, clickAttack, clickRelease), 0.8),
		withVolume(newEnvelope(noise, clickDuration/3, clickAttack, clickDuration/4), 0.2),
	)
	return withVolume(mixed, volume)
}

// oscillator generates a sine or white-noise burst of fixed length.
type oscillator struct {
	freq     float64
	phase    float64
	noise    bool
	position int
	duration int
	seed     uint64
}

func newOscillator(freq float64, d time.Duration, noise bool) beep.Streamer {
	return &oscillator{
		freq:     freq,
		noise:    noise,
		duration: sampleRate.N(d),
		seed:     uint64(time.Now().UnixNano()) | 1,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}
		var val float64
		if o.noise {
			// xorshift keeps the hot path allocation- and lock-free.
			o.seed ^= o.seed << 13
			o.seed ^= o.seed >> 7
			o.seed ^= o.seed << 17
			val = float64(int64(o.seed))/float64(math.MaxInt64)*2 - 1
			if val > 1 {
				val = 1
			} else if val < -1 {
				val = -1
			}
		} else {
			val = math.Sin(2 * math.Pi * o.phase)
			o.phase += o.freq / float64(sampleRate)
			o.phase -= math.Floor(o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   sampleRate.N(attack),
		release:  sampleRate.N(release),
		total:    sampleRate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, false
		}
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.position >= releaseStart && e.release > 0 {
			vol = float64(e.total-e.position) / float64(e.release)
			if vol < 0 {
				vol = 0
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume wraps a streamer at the given linear volume.
// math.Log2(0) is -Inf, so zero volume becomes silence instead.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
