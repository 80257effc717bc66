package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goliatone/go-timeeffort/pkg/document"
)

// JSONExporter writes the full document, pages and summary, as indented
// JSON.
type JSONExporter struct{}

// NewJSONExporter returns the JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Name() string        { return "json" }
func (e *JSONExporter) Extension() string   { return "json" }
func (e *JSONExporter) ContentType() string { return "application/json" }

// Export implements Exporter.
func (e *JSONExporter) Export(ctx context.Context, doc document.Document, w io.Writer) error {
	if err := checkDocument(ctx, doc); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: json: %v", ErrEncode, err)
	}
	return nil
}
