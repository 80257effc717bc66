package export

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-timeeffort/pkg/render/template"
	"github.com/goliatone/go-timeeffort/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var templateFS embed.FS

// TemplatesFS returns the built-in text and HTML report templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewTemplateEngine builds a pongo2 engine over the built-in templates. A
// non-empty overrideDir is searched first, letting deployments restyle the
// reports without rebuilding.
func NewTemplateEngine(overrideDir ...string) (template.TemplateRenderer, error) {
	options := []gotemplate.Option{gotemplate.WithFS(TemplatesFS())}
	for _, dir := range overrideDir {
		if dir != "" {
			options = append(options, gotemplate.WithBaseDir(dir))
		}
	}
	return gotemplate.New(options...)
}
