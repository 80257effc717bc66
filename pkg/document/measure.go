package document

import (
	"sync"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

// DefaultFontFamily is the core PDF font the default measure uses.
const DefaultFontFamily = "Helvetica"

// Measure reports the printed width in millimetres of text set at size
// points in the regular weight.
type Measure func(text string, size float64) float64

// CoreFontMeasure measures text with the built-in metrics of one of the core
// PDF fonts (Helvetica, Times, Courier). Text is translated to cp1252 first,
// as the PDF exporter does. ok is false for an unknown family.
func CoreFontMeasure(family string) (measure Measure, ok bool) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont(family, "", bodySize)
	if pdf.Err() {
		return nil, false
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	var mu sync.Mutex
	return func(text string, size float64) float64 {
		mu.Lock()
		defer mu.Unlock()
		pdf.SetFontSize(size)
		return pdf.GetStringWidth(tr(text))
	}, true
}

var (
	defaultMeasureOnce sync.Once
	defaultMeasure     Measure
)

// helveticaMeasure returns the shared Helvetica measure, or nil when the core
// metrics cannot be loaded.
func helveticaMeasure() Measure {
	defaultMeasureOnce.Do(func() {
		defaultMeasure, _ = CoreFontMeasure(DefaultFontFamily)
	})
	return defaultMeasure
}

// estimate sizes text by the layout's average glyph advance.
func (l Layout) estimate(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * pointToMillimetre * l.GlyphWidth
}
