package document

import (
	"math"
	"strings"
)

const pointToMillimetre = 25.4 / 72

// Layout describes the fixed page geometry. Units are millimetres.
type Layout struct {
	PageWidth   float64 `json:"pageWidth"`
	PageHeight  float64 `json:"pageHeight"`
	Margin      float64 `json:"margin"`
	Top         float64 `json:"top"`
	BottomLimit float64 `json:"bottomLimit"`
	LineHeight  float64 `json:"lineHeight"`
	// GlyphWidth is the average glyph advance as a fraction of the font size.
	// It sizes monospaced text output and is the fallback when no font
	// metrics are available.
	GlyphWidth float64 `json:"glyphWidth"`
}

// DefaultLayout returns an A4 portrait layout with 20mm margins.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:   210,
		PageHeight:  297,
		Margin:      20,
		Top:         20,
		BottomLimit: 260,
		LineHeight:  5,
		GlyphWidth:  0.5,
	}
}

// ContentWidth is the usable width between the side margins.
func (l Layout) ContentWidth() float64 {
	return l.PageWidth - 2*l.Margin
}

// Columns reports how many average glyphs at the given font size fit in the
// content width. Plain text output wraps at this column. It never returns
// less than 1.
func (l Layout) Columns(size float64) int {
	glyph := size * pointToMillimetre * l.GlyphWidth
	if glyph <= 0 {
		return 1
	}
	cols := int(math.Floor(l.ContentWidth() / glyph))
	if cols < 1 {
		return 1
	}
	return cols
}

// Wrap splits text into lines whose measured width fits the content width
// at the given font size. Words wider than a line are broken between runes.
// Explicit newlines are kept. A nil measure falls back to the average glyph
// estimate.
func (l Layout) Wrap(text string, size float64, measure Measure) []string {
	if measure == nil {
		measure = l.estimate
	}
	width := l.ContentWidth()
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	for _, paragraph := range strings.Split(normalized, "\n") {
		out = append(out, wrapParagraph(paragraph, size, width, measure)...)
	}
	return out
}

func wrapParagraph(paragraph string, size, width float64, measure Measure) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if measure(candidate, size) <= width {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		for measure(word, size) > width {
			var head string
			head, word = breakWord(word, size, width, measure)
			lines = append(lines, head)
		}
		line = word
	}
	return append(lines, line)
}

// breakWord returns the longest prefix of word that fits width, never less
// than one rune, and the remainder.
func breakWord(word string, size, width float64, measure Measure) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && measure(string(runes[:n+1]), size) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

func (l Layout) normalized() Layout {
	def := DefaultLayout()
	if l.PageWidth <= 0 {
		l.PageWidth = def.PageWidth
	}
	if l.PageHeight <= 0 {
		l.PageHeight = def.PageHeight
	}
	if l.Margin < 0 || 2*l.Margin >= l.PageWidth {
		l.Margin = def.Margin
	}
	if l.Top <= 0 {
		l.Top = def.Top
	}
	if l.BottomLimit <= l.Top || l.BottomLimit > l.PageHeight {
		l.BottomLimit = math.Min(def.BottomLimit, l.PageHeight)
	}
	if l.LineHeight <= 0 {
		l.LineHeight = def.LineHeight
	}
	if l.GlyphWidth <= 0 {
		l.GlyphWidth = def.GlyphWidth
	}
	return l
}

// cursor tracks the current page and vertical position while laying out a
// document.
type cursor struct {
	layout Layout
	pages  []Page
	y      float64
}

func newCursor(layout Layout) *cursor {
	c := &cursor{layout: layout}
	c.newPage()
	return c
}

func (c *cursor) newPage() {
	c.pages = append(c.pages, Page{Number: len(c.pages) + 1})
	c.y = c.layout.Top
}

func (c *cursor) down(dy float64) {
	c.y += dy
}

func (c *cursor) text(block Block, x float64, text string, style Style) {
	page := &c.pages[len(c.pages)-1]
	page.Lines = append(page.Lines, Line{
		Block: block,
		X:     x,
		Y:     c.y,
		Text:  text,
		Style: style,
	})
}

// flow draws wrapped lines one line height apart, starting a new page before
// any line that would begin past the bottom limit.
func (c *cursor) flow(block Block, x float64, lines []string, style Style) {
	for _, line := range lines {
		if c.y > c.layout.BottomLimit {
			c.newPage()
		}
		c.text(block, x, line, style)
		c.down(c.layout.LineHeight)
	}
}
