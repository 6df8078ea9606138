package glyphs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/lipgloss"
	. "github.com/onsi/gomega"
)

func testPalette() []lipgloss.Color {
	return []lipgloss.Color{"#111111", "#222222", "#333333"}
}

func countingChars(n *atomic.Int32, chars []string) CharLoader {
	return func(ctx context.Context) ([]string, error) {
		n.Add(1)
		out := make([]string, len(chars))
		copy(out, chars)
		return out, nil
	}
}

func countingFonts(n *atomic.Int32, fonts []Font) FontLoader {
	return func(ctx context.Context) ([]Font, error) {
		n.Add(1)
		out := make([]Font, len(fonts))
		copy(out, fonts)
		return out, nil
	}
}

func TestStyles_Length(t *testing.T) {
	g := NewWithT(t)
	c := New(Options{
		Chars:   countingChars(new(atomic.Int32), []string{"山", "川", "空"}),
		Palette: testPalette(),
		Seed:    1,
	})

	for _, count := range []int{0, 1, 3, 7, 100} {
		styles, err := c.Styles(context.Background(), count, false)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(styles).To(HaveLen(count))
	}
}

func TestStyles_CyclesSmallPool(t *testing.T) {
	g := NewWithT(t)
	c := New(Options{
		Chars:   countingChars(new(atomic.Int32), []string{"月", "星"}),
		Palette: testPalette(),
		Seed:    7,
	})

	styles, err := c.Styles(context.Background(), 9, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(styles).To(HaveLen(9))
	// Cycled: index i repeats the shuffled pool with period 2.
	for i, s := range styles {
		g.Expect(s.Char).To(Equal(styles[i%2].Char))
		g.Expect(s.Char).NotTo(BeEmpty())
	}
}

func TestStyles_CachedPerCount(t *testing.T) {
	g := NewWithT(t)
	c := New(Options{
		Chars:   countingChars(new(atomic.Int32), []string{"火", "水", "木", "金", "土"}),
		Palette: testPalette(),
		Seed:    42,
	})

	first, err := c.Styles(context.Background(), 12, false)
	g.Expect(err).NotTo(HaveOccurred())
	second, err := c.Styles(context.Background(), 12, false)
	g.Expect(err).NotTo(HaveOccurred())

	// Same backing list, not a recomputed equivalent.
	g.Expect(&second[0]).To(BeIdenticalTo(&first[0]))
}

func TestStyles_FontPolicy(t *testing.T) {
	tests := []struct {
		name      string
		loadFonts bool
		force     bool
		wantFonts bool
	}{
		{"skipped by default", false, false, false},
		{"forced", false, true, true},
		{"enabled by config", true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			var fontCalls atomic.Int32
			c := New(Options{
				Chars:     countingChars(new(atomic.Int32), []string{"禅"}),
				Fonts:     countingFonts(&fontCalls, []Font{{Name: "Shippori Mincho", Class: "shippori-mincho"}}),
				Palette:   testPalette(),
				LoadFonts: tt.loadFonts,
				Seed:      3,
			})

			styles, err := c.Styles(context.Background(), 4, tt.force)
			g.Expect(err).NotTo(HaveOccurred())

			if tt.wantFonts {
				g.Expect(fontCalls.Load()).To(Equal(int32(1)))
				g.Expect(styles[0].FontClass).To(Equal("shippori-mincho"))
			} else {
				g.Expect(fontCalls.Load()).To(BeZero())
				g.Expect(styles[0].FontClass).To(BeEmpty())
			}
		})
	}
}

func TestStyles_ConcurrentLoadsDeduplicated(t *testing.T) {
	g := NewWithT(t)
	var charCalls, fontCalls atomic.Int32
	gate := make(chan struct{})

	c := New(Options{
		Chars: func(ctx context.Context) ([]string, error) {
			charCalls.Add(1)
			<-gate
			return []string{"風", "林", "火", "山"}, nil
		},
		Fonts:     countingFonts(&fontCalls, defaultFonts),
		Palette:   testPalette(),
		LoadFonts: true,
		Seed:      9,
	})

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Styles(context.Background(), 10+i, false)
		}(i)
	}
	close(gate)
	wg.Wait()

	for _, err := range errs {
		g.Expect(err).NotTo(HaveOccurred())
	}
	g.Expect(charCalls.Load()).To(Equal(int32(1)))
	g.Expect(fontCalls.Load()).To(Equal(int32(1)))
}

func TestStyles_LoadErrorSticks(t *testing.T) {
	g := NewWithT(t)
	boom := errors.New("fetch failed")
	var calls atomic.Int32
	c := New(Options{
		Chars: func(ctx context.Context) ([]string, error) {
			calls.Add(1)
			return nil, boom
		},
		Palette: testPalette(),
		Seed:    5,
	})

	_, err := c.Styles(context.Background(), 3, false)
	g.Expect(err).To(MatchError(boom))

	// Second request does not refetch; the failed outcome is session-wide.
	_, err = c.Styles(context.Background(), 3, false)
	g.Expect(err).To(MatchError(boom))
	g.Expect(calls.Load()).To(Equal(int32(1)))
}

func TestStyles_EmptyPool(t *testing.T) {
	g := NewWithT(t)
	c := New(Options{
		Chars:   countingChars(new(atomic.Int32), nil),
		Palette: testPalette(),
		Seed:    5,
	})

	_, err := c.Styles(context.Background(), 3, false)
	g.Expect(err).To(MatchError(ErrNoGlyphs))
}

func TestReset(t *testing.T) {
	g := NewWithT(t)
	var calls atomic.Int32
	c := New(Options{
		Chars:   countingChars(&calls, []string{"夢", "幻"}),
		Palette: testPalette(),
		Seed:    11,
	})

	_, err := c.Styles(context.Background(), 5, false)
	g.Expect(err).NotTo(HaveOccurred())

	c.Reset()

	_, err = c.Styles(context.Background(), 5, false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(calls.Load()).To(Equal(int32(2)))
}

func TestEmbeddedChars(t *testing.T) {
	chars, err := EmbeddedChars()(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(chars) < 100 {
		t.Errorf("embedded set suspiciously small: %d", len(chars))
	}
	for _, ch := range chars {
		if ch == "" {
			t.Fatal("embedded set contains empty entry")
		}
	}
}
