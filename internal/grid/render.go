package grid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/yorufune/zengrid/internal/glyphs"
)

// background is the assumed terminal background the glyphs sink into as their
// opacity drops.
const background = "#0a0a0a"

var dimText = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// styleKey buckets opacity so the style cache stays small: 5% steps are
// indistinguishable on a terminal.
type styleKey struct {
	color  string
	class  string
	bucket int
	bold   bool
}

// renderer memoizes the lipgloss styles derived from glyph styles and
// opacity levels.
type renderer struct {
	styles map[styleKey]lipgloss.Style
	bg     colorful.Color
}

func newRenderer() *renderer {
	bg, err := colorful.Hex(background)
	if err != nil {
		bg = colorful.Color{}
	}
	return &renderer{
		styles: make(map[styleKey]lipgloss.Style),
		bg:     bg,
	}
}

// glyphStyle returns the terminal style for one glyph at the given opacity.
// bold layers the explode emphasis on top of whatever the font class sets.
func (r *renderer) glyphStyle(st glyphs.Style, opacity float64, bold bool) lipgloss.Style {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	key := styleKey{
		color:  string(st.Color),
		class:  st.FontClass,
		bucket: int(opacity*20 + 0.5),
		bold:   bold,
	}
	if cached, ok := r.styles[key]; ok {
		return cached
	}

	fg, err := colorful.Hex(string(st.Color))
	if err != nil {
		fg = colorful.Color{R: 1, G: 1, B: 1}
	}
	faded := r.bg.BlendLab(fg, float64(key.bucket)/20).Clamped()

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(faded.Hex()))
	style = applyFontClass(style, st.FontClass)
	if bold {
		style = style.Bold(true)
	}

	r.styles[key] = style
	return style
}

// applyFontClass maps a display font class onto the nearest terminal variant.
func applyFontClass(style lipgloss.Style, class string) lipgloss.Style {
	switch class {
	case "shippori-mincho":
		return style.Bold(true)
	case "kaisei-decol":
		return style.Italic(true)
	case "yuji-syuku":
		return style.Bold(true).Italic(true)
	default:
		return style
	}
}

// pad right-fills a rendered glyph out to the cell width. Kanji occupy two
// terminal columns.
func pad(rendered string, cellWidth int) string {
	if cellWidth <= glyphWidth {
		return rendered
	}
	return rendered + strings.Repeat(" ", cellWidth-glyphWidth)
}

// blank is an empty cell of the given width.
func blank(cellWidth int) string {
	if cellWidth < glyphWidth {
		cellWidth = glyphWidth
	}
	return strings.Repeat(" ", cellWidth)
}
