package timeeffort

import (
	"io/fs"

	"github.com/goliatone/go-timeeffort/pkg/export"
)

// EmbeddedTemplates exposes the built-in text and HTML report templates so
// callers can copy them as a starting point for output.templates overrides.
func EmbeddedTemplates() fs.FS {
	return export.TemplatesFS()
}
