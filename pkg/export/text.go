package export

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-timeeffort/pkg/document"
	"github.com/goliatone/go-timeeffort/pkg/render/template"
)

const (
	textTemplate = "report.txt"
	bodySize     = 10
)

// TextExporter renders the report summary as plain text through the
// report.txt template.
type TextExporter struct {
	engine template.TemplateRenderer
}

// NewTextExporter returns a text exporter rendering with engine.
func NewTextExporter(engine template.TemplateRenderer) *TextExporter {
	return &TextExporter{engine: engine}
}

func (e *TextExporter) Name() string        { return "text" }
func (e *TextExporter) Extension() string   { return "txt" }
func (e *TextExporter) ContentType() string { return "text/plain; charset=utf-8" }

// Export implements Exporter.
func (e *TextExporter) Export(ctx context.Context, doc document.Document, w io.Writer) error {
	if err := checkDocument(ctx, doc); err != nil {
		return err
	}
	if _, err := e.engine.RenderTemplate(textTemplate, reportView(doc), w); err != nil {
		return fmt.Errorf("%w: text: %v", ErrEncode, err)
	}
	return nil
}

// reportView is the template context shared by the text and HTML reports.
func reportView(doc document.Document) map[string]any {
	return map[string]any{
		"name":                    doc.Name,
		"title":                   doc.Title,
		"header":                  document.Texts(doc.Block(document.BlockTitle)),
		"summary":                 doc.Summary,
		"columns":                 doc.Layout.Columns(bodySize),
		"employeeCertification":   document.EmployeeCertificationText,
		"supervisorCertification": document.SupervisorCertificationText,
		"generatedAt":             doc.GeneratedAt.UTC().Format(document.TimestampLayout),
		"notice":                  document.ElectronicSignatureNotice,
	}
}
