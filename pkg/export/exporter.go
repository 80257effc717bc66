package export

import (
	"context"
	"io"
	"time"

	"github.com/goliatone/go-timeeffort/pkg/document"
)

// Exporter encodes a rendered document into one file format.
type Exporter interface {
	// Name is the format key used on the command line and in config.
	Name() string
	// Extension is appended to the document name, without the dot.
	Extension() string
	ContentType() string
	Export(ctx context.Context, doc document.Document, w io.Writer) error
}

// Result reports the outcome of exporting one format.
type Result struct {
	Format   string    `json:"format"`
	Name     string    `json:"name"`
	Location string    `json:"location,omitempty"`
	Size     int       `json:"size"`
	Success  bool      `json:"success"`
	SavedAt  time.Time `json:"savedAt,omitempty"`
	Err      error     `json:"-"`
}

func checkDocument(ctx context.Context, doc document.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(doc.Pages) == 0 {
		return ErrEmptyDocument
	}
	return nil
}
