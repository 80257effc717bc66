package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-timeeffort/pkg/document"
	"github.com/goliatone/go-timeeffort/pkg/render/template"
)

const (
	htmlBodyTemplate = "report.html"
	htmlPageTemplate = "page.html"
)

var (
	reportPolicyOnce sync.Once
	reportPolicy     *bluemonday.Policy
)

// HTMLOption configures the HTML exporter.
type HTMLOption func(*HTMLExporter)

// WithThemeSelector replaces the selector resolving the page theme.
func WithThemeSelector(selector theme.ThemeSelector) HTMLOption {
	return func(e *HTMLExporter) {
		if selector != nil {
			e.selector = selector
		}
	}
}

// WithThemeProvider builds a go-theme selector over provider with the given
// defaults.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) HTMLOption {
	return func(e *HTMLExporter) {
		if provider == nil {
			return
		}
		e.selector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
	}
}

// WithTheme picks the theme and variant requested from the selector.
func WithTheme(name, variant string) HTMLOption {
	return func(e *HTMLExporter) {
		e.themeName = strings.TrimSpace(name)
		e.variant = strings.TrimSpace(variant)
	}
}

// HTMLExporter renders the report body, sanitises it, and wraps it in a
// standalone page styled from the selected theme's tokens.
type HTMLExporter struct {
	engine    template.TemplateRenderer
	selector  theme.ThemeSelector
	themeName string
	variant   string
}

// NewHTMLExporter returns an HTML exporter rendering with engine. Without a
// selector the built-in report theme is used.
func NewHTMLExporter(engine template.TemplateRenderer, options ...HTMLOption) *HTMLExporter {
	e := &HTMLExporter{engine: engine}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.selector == nil {
		e.selector = defaultThemeSelector()
	}
	return e
}

func (e *HTMLExporter) Name() string        { return "html" }
func (e *HTMLExporter) Extension() string   { return "html" }
func (e *HTMLExporter) ContentType() string { return "text/html; charset=utf-8" }

// Export implements Exporter.
func (e *HTMLExporter) Export(ctx context.Context, doc document.Document, w io.Writer) error {
	if err := checkDocument(ctx, doc); err != nil {
		return err
	}
	selection, err := e.selector.Select(e.themeName, e.variant)
	if err != nil {
		return fmt.Errorf("%w: html theme: %v", ErrEncode, err)
	}
	cfg := selection.RendererTheme(themeFallbacks())

	view := reportView(doc)
	view["theme"] = themeView(cfg)
	body, err := e.engine.RenderTemplate(cfg.Partials[ThemeBodyPartial], view)
	if err != nil {
		return fmt.Errorf("%w: html: %v", ErrEncode, err)
	}
	view["body"] = sanitizeReport(body)
	if _, err := e.engine.RenderTemplate(cfg.Partials[ThemePagePartial], view, w); err != nil {
		return fmt.Errorf("%w: html: %v", ErrEncode, err)
	}
	return nil
}

func sanitizeReport(markup string) string {
	return strings.TrimSpace(reportSanitizer().Sanitize(markup))
}

func reportSanitizer() *bluemonday.Policy {
	reportPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"header", "section", "footer", "h1", "h2", "p", "em", "strong", "br",
			"table", "thead", "tbody", "tfoot", "tr", "th", "td", "dl", "dt", "dd",
		)
		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("scope").OnElements("th")
		reportPolicy = policy
	})
	return reportPolicy
}
