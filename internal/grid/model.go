// Package grid renders the decorative glyph layer: a fixed-column grid of
// kanji filling the terminal, breathing in static mode and exploding under
// the cursor in interactive mode.
package grid

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yorufune/zengrid/internal/audio"
	"github.com/yorufune/zengrid/internal/config"
	"github.com/yorufune/zengrid/internal/explode"
	"github.com/yorufune/zengrid/internal/glyphs"
	"github.com/yorufune/zengrid/internal/logging"
	"github.com/yorufune/zengrid/internal/pulse"
	"github.com/yorufune/zengrid/internal/theme"
	"github.com/yorufune/zengrid/internal/viewport"
)

// Terminal geometry. The sizer thinks in device pixels, so terminal cells are
// converted with nominal font metrics; glyph rows land on every other line.
const (
	glyphWidth = 2 // kanji are double-width
	rowSpacing = 2
	pxPerCol   = 9
	pxPerRow   = 19

	// collapsedOpacity is the layer tier when decorations are not expanded.
	collapsedOpacity = 0.35
)

type tickMsg time.Time

func tick(fps int) tea.Cmd {
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// cell is one glyph's visual state: a fixed style plus its own explode
// machine. Machines never outlive their cell; rebuilding the grid drops them.
type cell struct {
	style glyphs.Style
	boom  explode.Machine
}

type Model struct {
	cfg    *config.Config
	cache  *glyphs.Cache
	player audio.Player
	log    *slog.Logger
	r      *renderer

	interactive bool
	expand      bool

	termWidth  int
	termHeight int
	count      int
	cells      []cell
	opacity    map[int]float64
	sched      *pulse.Scheduler
	deb        *viewport.Debouncer
	rng        *rand.Rand
	cursor     int
	lastTick   time.Time
}

func New(cfg *config.Config, cache *glyphs.Cache, player audio.Player) Model {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Model{
		cfg:         cfg,
		cache:       cache,
		player:      player,
		log:         logging.New("grid"),
		r:           newRenderer(),
		interactive: cfg.Interactive,
		expand:      cfg.Expand,
		deb:         viewport.NewDebouncer(viewport.DebounceQuiet),
		rng:         rand.New(rand.NewSource(seed)),
		lastTick:    time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tick(m.cfg.FPS)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.interactive && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if idx := m.cellAt(msg.X, msg.Y); idx >= 0 {
				m.clickCell(idx, m.lastTick)
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.deb.Observe(msg.Width*pxPerCol, msg.Height*pxPerRow, m.lastTick)
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		m.lastTick = now
		if w, h, ok := m.deb.Fire(now); ok {
			m.applySize(w, h, now)
		}
		if m.interactive {
			for i := range m.cells {
				m.cells[i].boom.Step(now)
			}
		} else if m.sched != nil {
			m.sched.Advance(now)
			m.opacity = m.sched.Sample(now)
		}
		return m, tick(m.cfg.FPS)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "i":
		m.toggleMode(m.lastTick)
	case "e":
		m.expand = !m.expand
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-m.columns())
	case "down", "j":
		m.moveCursor(m.columns())
	case "enter", " ":
		if m.interactive {
			m.clickCell(m.cursor, m.lastTick)
		}
	}
	return m, nil
}

// toggleMode switches between the passive and interactive layers. The pulse
// loop must not survive into interactive mode: the scheduler and the opacity
// map are both dropped, reverting every glyph to full opacity.
func (m *Model) toggleMode(now time.Time) {
	m.interactive = !m.interactive
	m.sched = nil
	m.opacity = nil
	m.cursor = 0
	if m.termWidth <= 0 {
		return
	}
	m.rebuild(viewport.Count(m.termWidth*pxPerCol, m.termHeight*pxPerRow, m.interactive), now)
}

// applySize reacts to a debounced resize. An unchanged count is a no-op so
// the styles and animation state survive jitter resizes.
func (m *Model) applySize(pxWidth, pxHeight int, now time.Time) {
	count := viewport.Count(pxWidth, pxHeight, m.interactive)
	if count == m.count && m.cells != nil {
		return
	}
	m.rebuild(count, now)
}

func (m *Model) rebuild(count int, now time.Time) {
	m.count = count
	m.sched = nil
	m.opacity = nil

	styles, err := m.cache.Styles(context.Background(), count, false)
	if err != nil {
		// No recovery: the layer goes blank and stays blank.
		m.log.Error("loading glyph styles", "error", err)
		m.cells = nil
		return
	}

	cells := make([]cell, count)
	for i := range cells {
		cells[i].style = styles[i]
	}
	m.cells = cells
	if m.cursor >= count {
		m.cursor = 0
	}

	if !m.interactive && count > 0 {
		m.sched = pulse.New(pulse.Config{
			BaseCount:     m.cfg.Pulse.Count,
			Period:        m.cfg.Pulse.Period(),
			TurnoverEvery: m.cfg.Pulse.TurnoverEvery(),
			TurnoverCount: m.cfg.Pulse.TurnoverCount,
			MinOpacity:    m.cfg.Pulse.MinOpacity,
			MaxOpacity:    m.cfg.Pulse.MaxOpacity,
		}, count, m.rng, now)
	}
}

func (m *Model) moveCursor(delta int) {
	if !m.interactive || len(m.cells) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.cells) {
		return
	}
	m.cursor = next
}

// clickCell runs one click through the cell's machine. The machine is the
// latch: a rejected click plays no sound.
func (m *Model) clickCell(idx int, now time.Time) {
	if idx < 0 || idx >= len(m.cells) {
		return
	}
	if m.cells[idx].boom.Click(now) {
		m.player.PlayClick()
	}
}

func (m *Model) columns() int {
	return viewport.Columns(m.termWidth*pxPerCol, m.interactive)
}

// cellAt maps terminal coordinates to a glyph index, or -1.
func (m *Model) cellAt(x, y int) int {
	cols := m.columns()
	if cols <= 0 || m.termWidth <= 0 {
		return -1
	}
	cellW := m.termWidth / cols
	if cellW < glyphWidth {
		cellW = glyphWidth
	}
	col := x / cellW
	if col >= cols {
		return -1
	}
	idx := (y/rowSpacing)*cols + col
	if idx >= len(m.cells) {
		return -1
	}
	return idx
}

func (m Model) View() string {
	if m.termWidth <= 0 {
		return ""
	}

	var b strings.Builder
	if len(m.cells) > 0 {
		b.WriteString(m.viewGrid())
	}
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewGrid() string {
	cols := m.columns()
	cellW := m.termWidth / cols
	if cellW < glyphWidth {
		cellW = glyphWidth
	}
	rows := (len(m.cells) + cols - 1) / cols

	// Clip to the space above the footer; the buffer rows exist so the grid
	// always runs past the bottom, never short of it.
	maxRows := (m.termHeight - 1 + rowSpacing - 1) / rowSpacing
	if rows > maxRows {
		rows = maxRows
	}

	layer := 1.0
	if !m.expand {
		layer = collapsedOpacity
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(strings.Repeat("\n", rowSpacing))
		}
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if idx >= len(m.cells) {
				b.WriteString(blank(cellW))
				continue
			}
			b.WriteString(m.renderCell(idx, cellW, layer))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderCell(idx, cellW int, layer float64) string {
	cl := &m.cells[idx]
	op := layer
	bold := false

	if m.interactive {
		switch cl.boom.Phase() {
		case explode.Hidden:
			return blank(cellW)
		case explode.Exploding:
			op = layer * (1 - cl.boom.Progress(m.lastTick))
			bold = true
		case explode.FadingIn:
			op = layer * cl.boom.Progress(m.lastTick)
		}
	} else if v, ok := m.opacity[idx]; ok {
		op = layer * v
	}

	style := m.r.glyphStyle(cl.style, op, bold)
	if m.interactive && idx == m.cursor {
		style = style.Reverse(true)
	}
	return pad(style.Render(cl.style.Char), cellW)
}

func (m Model) viewFooter() string {
	var hint string
	if m.interactive {
		hint = "←↑↓→ move  enter explode  i calm  e expand  q quit"
	} else {
		hint = "i interact  e expand  q quit"
	}
	return dimText.Render("  " + hint)
}

// Run starts the glyph layer in its own Bubble Tea program.
func Run(cfg *config.Config) error {
	log := logging.New("zengrid")

	cache := glyphs.New(glyphs.Options{
		Chars:     charLoader(cfg),
		Palette:   glyphPalette(cfg.Theme),
		LoadFonts: cfg.Fonts.Load,
		Seed:      cfg.Seed,
	})

	var player audio.Player
	if cfg.Audio.Enabled {
		spk, err := audio.NewSpeaker(cfg.Audio.Volume)
		if err != nil {
			// Decorative feature: losing sound is not worth dying over.
			log.Warn("audio backend unavailable", "error", err)
			player = audio.NewNop()
		} else {
			player = spk
		}
	} else {
		player = audio.NewNop()
	}
	defer player.Close()

	p := tea.NewProgram(New(cfg, cache, player),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// glyphPalette resolves the color pool for the session: every theme's main
// and secondary color unless one theme was chosen explicitly.
func glyphPalette(name string) []lipgloss.Color {
	if name == "" {
		return theme.Palette()
	}
	t := theme.GetTheme(name)
	pal := []lipgloss.Color{t.Main}
	if t.Secondary != "" {
		pal = append(pal, t.Secondary)
	}
	return pal
}

func charLoader(cfg *config.Config) glyphs.CharLoader {
	if cfg.CharsFile != "" {
		return glyphs.FileChars(cfg.CharsFile)
	}
	return glyphs.EmbeddedChars()
}
