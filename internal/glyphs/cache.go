package glyphs

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/singleflight"

	"github.com/yorufune/zengrid/internal/theme"
)

// ErrNoGlyphs is returned when the character source resolves to an empty pool.
var ErrNoGlyphs = errors.New("glyphs: character source is empty")

// Style is one glyph's fixed visual assignment. Immutable once computed.
type Style struct {
	Char      string
	Color     lipgloss.Color
	FontClass string
}

// Options configures a Cache. Zero-value fields fall back to the embedded
// character set, the built-in font list, the theme palette, and a time seed.
type Options struct {
	Chars   CharLoader
	Fonts   FontLoader
	Palette []lipgloss.Color

	// LoadFonts enables the font fetch for every request. Decorative fonts
	// are skipped during development unless a request forces them.
	LoadFonts bool

	Seed int64
}

// Cache memoizes the character pool, the font list, and the per-count style
// assignments for the session. Loads happen at most once per resource kind;
// concurrent first callers share a single in-flight fetch.
type Cache struct {
	loadChars CharLoader
	loadFonts FontLoader
	palette   []lipgloss.Color
	loadAll   bool

	group singleflight.Group

	mu        sync.Mutex
	rng       *rand.Rand
	chars     []string
	charsErr  error
	charsDone bool
	fonts     []Font
	fontsErr  error
	fontsDone bool
	byCount   map[int][]Style
}

// New creates an empty cache. Nothing is fetched until the first Styles call.
func New(o Options) *Cache {
	if o.Chars == nil {
		o.Chars = EmbeddedChars()
	}
	if o.Fonts == nil {
		o.Fonts = DefaultFonts()
	}
	if o.Palette == nil {
		o.Palette = theme.Palette()
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return &Cache{
		loadChars: o.Chars,
		loadFonts: o.Fonts,
		palette:   o.Palette,
		loadAll:   o.LoadFonts,
		rng:       rand.New(rand.NewSource(o.Seed)),
		byCount:   make(map[int][]Style),
	}
}

// Styles returns exactly count style entries. The character pool is cycled
// when count exceeds it. Results are cached per count, so a later request for
// the same count returns the identical list.
func (c *Cache) Styles(ctx context.Context, count int, force bool) ([]Style, error) {
	if count <= 0 {
		return []Style{}, nil
	}

	c.mu.Lock()
	if cached, ok := c.byCount[count]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	chars, err := c.ensureChars(ctx)
	if err != nil {
		return nil, err
	}

	var fonts []Font
	if force || c.loadAll {
		fonts, err = c.ensureFonts(ctx)
		if err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.byCount[count]; ok {
		return cached, nil
	}

	styles := make([]Style, count)
	for i := range styles {
		styles[i] = Style{
			Char:  chars[i%len(chars)],
			Color: c.palette[c.rng.Intn(len(c.palette))],
		}
		if len(fonts) > 0 {
			styles[i].FontClass = fonts[c.rng.Intn(len(fonts))].Class
		}
	}
	c.byCount[count] = styles
	return styles, nil
}

// ensureChars fetches and shuffles the character pool on first use. The
// outcome, success or failure, is kept for the rest of the session.
func (c *Cache) ensureChars(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	if c.charsDone {
		chars, err := c.chars, c.charsErr
		c.mu.Unlock()
		return chars, err
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("chars", func() (any, error) {
		// Double-check after winning the flight; a caller that lost the
		// race to the first check may arrive after the load finished.
		c.mu.Lock()
		if c.charsDone {
			chars, err := c.chars, c.charsErr
			c.mu.Unlock()
			if err != nil {
				return nil, err
			}
			return chars, nil
		}
		c.mu.Unlock()

		chars, err := c.loadChars(ctx)
		if err == nil && len(chars) == 0 {
			err = ErrNoGlyphs
		}
		c.mu.Lock()
		if err == nil {
			c.rng.Shuffle(len(chars), func(i, j int) {
				chars[i], chars[j] = chars[j], chars[i]
			})
			c.chars = chars
		}
		c.charsErr = err
		c.charsDone = true
		c.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return chars, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (c *Cache) ensureFonts(ctx context.Context) ([]Font, error) {
	c.mu.Lock()
	if c.fontsDone {
		fonts, err := c.fonts, c.fontsErr
		c.mu.Unlock()
		return fonts, err
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("fonts", func() (any, error) {
		c.mu.Lock()
		if c.fontsDone {
			fonts, err := c.fonts, c.fontsErr
			c.mu.Unlock()
			if err != nil {
				return nil, err
			}
			return fonts, nil
		}
		c.mu.Unlock()

		fonts, err := c.loadFonts(ctx)
		c.mu.Lock()
		if err == nil {
			c.fonts = fonts
		}
		c.fontsErr = err
		c.fontsDone = true
		c.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return fonts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Font), nil
}

// Reset drops all cached data so the next request reloads everything.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chars = nil
	c.charsErr = nil
	c.charsDone = false
	c.fonts = nil
	c.fontsErr = nil
	c.fontsDone = false
	c.byCount = make(map[int][]Style)
}
