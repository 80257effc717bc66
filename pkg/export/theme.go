package export

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-timeeffort/pkg/model"
)

const (
	// DefaultThemeName is the built-in HTML report theme.
	DefaultThemeName = "report"
	// PrintVariant is the greyscale variant of the built-in theme.
	PrintVariant = "print"

	// Partial keys a theme manifest may override in its templates map.
	ThemeBodyPartial = "report.body"
	ThemePagePartial = "report.page"
	// ThemeStylesheetAsset names an extra stylesheet linked from the page.
	ThemeStylesheetAsset = "report.stylesheet"

	sourceTokenPrefix = "source-"
)

var (
	defaultThemesOnce sync.Once
	defaultThemes     *theme.MemoryRegistry
)

// DefaultThemeManifest returns the built-in theme. Every funding source gets
// a source-<key> token carrying its display colour.
func DefaultThemeManifest() *theme.Manifest {
	tokens := map[string]string{
		"font-family": "Helvetica, Arial, sans-serif",
		"text":        "#111111",
		"muted":       "#555555",
		"rule":        "#cccccc",
		"header-bg":   "#4472c4",
		"header-text": "#ffffff",
	}
	printTokens := map[string]string{
		"header-bg":   "#e5e5e5",
		"header-text": "#111111",
	}
	for _, source := range model.FundingSources() {
		tokens[SourceToken(source.Key)] = source.Color
		printTokens[SourceToken(source.Key)] = "#777777"
	}
	return &theme.Manifest{
		Name:        DefaultThemeName,
		Version:     "1.0.0",
		Description: "Time & Effort report",
		Tokens:      tokens,
		Variants: map[string]theme.Variant{
			PrintVariant: {
				Description: "Greyscale for monochrome printers",
				Tokens:      printTokens,
			},
		},
	}
}

// SourceToken is the theme token holding a funding source colour.
func SourceToken(key model.FieldName) string {
	return sourceTokenPrefix + string(key)
}

// NewThemeRegistry returns a registry holding the built-in theme and, when
// dir is set, the manifest found there (theme.yaml, theme.json, ...).
func NewThemeRegistry(dir string) (*theme.MemoryRegistry, error) {
	registry := theme.NewRegistry()
	if err := registry.Register(DefaultThemeManifest()); err != nil {
		return nil, fmt.Errorf("export: register %s theme: %w", DefaultThemeName, err)
	}
	if strings.TrimSpace(dir) == "" {
		return registry, nil
	}
	manifest, err := theme.LoadDir(os.DirFS(dir), ".")
	if err != nil {
		return nil, fmt.Errorf("export: load theme from %s: %w", dir, err)
	}
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("export: register theme %q: %w", manifest.Name, err)
	}
	return registry, nil
}

func defaultThemeSelector() theme.ThemeSelector {
	defaultThemesOnce.Do(func() {
		registry, err := NewThemeRegistry("")
		if err != nil {
			panic(err)
		}
		defaultThemes = registry
	})
	return theme.Selector{Registry: defaultThemes, DefaultTheme: DefaultThemeName}
}

func themeFallbacks() map[string]string {
	return map[string]string{
		ThemeBodyPartial: htmlBodyTemplate,
		ThemePagePartial: htmlPageTemplate,
	}
}

// themeView flattens the renderer config for the page template: CSS
// variables sorted by name and the funding sources the theme colours.
func themeView(cfg theme.RendererConfig) map[string]any {
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)
	vars := make([]map[string]string, 0, len(names))
	for _, name := range names {
		vars = append(vars, map[string]string{"name": name, "value": cfg.CSSVars[name]})
	}

	var sources []map[string]string
	for _, source := range model.FundingSources() {
		token := SourceToken(source.Key)
		if _, ok := cfg.Tokens[token]; !ok {
			continue
		}
		sources = append(sources, map[string]string{"key": string(source.Key), "token": token})
	}

	view := map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"cssVars": vars,
		"sources": sources,
	}
	if cfg.AssetURL != nil {
		view["stylesheet"] = cfg.AssetURL(ThemeStylesheetAsset)
	}
	return view
}
