package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("streamer error: %v", err)
	}
	return out
}

func TestOscillator_Length(t *testing.T) {
	d := 30 * time.Millisecond
	osc := newOscillator(880, d, false)
	samples := drain(t, osc)
	if want := sampleRate.N(d); len(samples) != want {
		t.Errorf("sample count = %d, want %d", len(samples), want)
	}
}

func TestOscillator_InRange(t *testing.T) {
	for _, noise := range []bool{false, true} {
		osc := newOscillator(1320, 20*time.Millisecond, noise)
		for _, s := range drain(t, osc) {
			if s[0] < -1 || s[0] > 1 || s[1] < -1 || s[1] > 1 {
				t.Fatalf("sample out of range: %v (noise=%v)", s, noise)
			}
		}
	}
}

func TestEnvelope_ShapesEdges(t *testing.T) {
	d := 40 * time.Millisecond
	osc := newOscillator(0, d, true)
	env := newEnvelope(osc, d, 5*time.Millisecond, 20*time.Millisecond)
	samples := drain(t, env)
	if len(samples) == 0 {
		t.Fatal("no samples")
	}

	// Attack starts silent; release ends near silent.
	if v := samples[0][0]; v != 0 {
		t.Errorf("first sample = %f, want 0", v)
	}
	last := samples[len(samples)-1][0]
	if last > 0.01 || last < -0.01 {
		t.Errorf("last sample = %f, want ~0", last)
	}
}

func TestClickStreamer_Terminates(t *testing.T) {
	samples := drain(t, newClick(0.5))
	if max := sampleRate.N(clickDuration) + 1; len(samples) > max {
		t.Errorf("click longer than its duration: %d > %d samples", len(samples), max)
	}
	if len(samples) == 0 {
		t.Fatal("click produced no samples")
	}
}

func TestNopPlayer(t *testing.T) {
	p := NewNop()
	p.PlayClick() // must not panic or touch the speaker
	p.Close()
}
