package template_test

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flosch/pongo2/v6"
	"github.com/goliatone/go-timeeffort/pkg/render/template/gotemplate"
	"github.com/goliatone/go-timeeffort/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	assertGolden(t, "hello.golden", result, written)
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"organization": "EcoExploratorio"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})
	assertGolden(t, "use-global.golden", result, written)
}

func TestGoTemplateEngine_TemplateFuncFilter(t *testing.T) {
	shout := pongo2.FilterFunction(func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(fmt.Sprintf("%s!", strings.ToUpper(in.String()))), nil
	})
	engine := newEngine(t, gotemplate.WithTemplateFunc(map[string]any{"shout": shout}))

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})
	assertGolden(t, "use-filter.golden", result, written)
}

func TestGoTemplateEngine_WrapFilter(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("wrap", map[string]any{
			"text": "Led outreach & lab workshops for students.",
		}, w)
	})
	assertGolden(t, "wrap.golden", result, written)
}

func TestGoTemplateEngine_RenderStringWithStruct(t *testing.T) {
	engine := newEngine(t)

	type line struct {
		Text string `json:"text"`
		Page int    `json:"page"`
	}
	data := struct {
		Lines []line `json:"lines"`
	}{Lines: []line{{Text: "TOTAL: 100.0%", Page: 1}}}

	got, err := engine.Render("{% for l in lines %}{{ l.page }}:{{ l.text }}{% endfor %}", data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "1:TOTAL: 100.0%" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
	var engine *gotemplate.Engine
	if _, err := engine.RenderString("x", nil); !errors.Is(err, gotemplate.ErrNilEngine) {
		t.Fatalf("expected ErrNilEngine, got %v", err)
	}
}

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(sub)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func assertGolden(t *testing.T, golden, result, written string) {
	t.Helper()
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", golden))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}
