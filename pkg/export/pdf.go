package export

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-timeeffort/pkg/document"
)

const pdfCreator = "go-timeeffort"

// PDFOption configures the PDF exporter.
type PDFOption func(*PDFExporter)

// WithFontFamily selects one of the core PDF font families (Helvetica,
// Times, Courier). Lines are wrapped when the document is rendered, so a
// family other than Helvetica should be paired with
// document.WithMeasure with document.CoreFontMeasure(family).
func WithFontFamily(family string) PDFOption {
	return func(e *PDFExporter) {
		if family != "" {
			e.family = family
		}
	}
}

// PDFExporter draws every document line at its laid-out position. Page
// breaks come from the document; the PDF never breaks pages on its own.
type PDFExporter struct {
	family string
}

// NewPDFExporter returns an exporter using Helvetica.
func NewPDFExporter(options ...PDFOption) *PDFExporter {
	e := &PDFExporter{family: document.DefaultFontFamily}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *PDFExporter) Name() string        { return "pdf" }
func (e *PDFExporter) Extension() string   { return "pdf" }
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Export implements Exporter.
func (e *PDFExporter) Export(ctx context.Context, doc document.Document, w io.Writer) error {
	if err := checkDocument(ctx, doc); err != nil {
		return err
	}

	layout := doc.Layout
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(layout.Margin, layout.Top, layout.Margin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetSubject(doc.Name, true)
	pdf.SetCreator(pdfCreator, true)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetModificationDate(doc.GeneratedAt)

	// Core fonts are cp1252; accented names need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			pdf.SetFont(e.family, fontStyle(line.Style.Weight), line.Style.Size)
			text := tr(line.Text)
			x := line.X
			if line.Style.Align == document.AlignCenter {
				x -= pdf.GetStringWidth(text) / 2
			}
			pdf.Text(x, line.Y, text)
		}
	}

	if pdf.Err() {
		return fmt.Errorf("%w: pdf: %v", ErrEncode, pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: pdf: %v", ErrEncode, err)
	}
	return nil
}

func fontStyle(weight document.Weight) string {
	switch weight {
	case document.WeightBold:
		return "B"
	case document.WeightItalic:
		return "I"
	default:
		return ""
	}
}
