package export

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores exporters by name and rejects duplicates.
type Registry struct {
	mu        sync.RWMutex
	exporters map[string]Exporter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		exporters: make(map[string]Exporter),
	}
}

// RegistryOption configures DefaultRegistry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	templateDir string
	html        []HTMLOption
}

// WithTemplateDir overrides the bundled report templates with files in dir.
func WithTemplateDir(dir string) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.templateDir = dir
	}
}

// WithHTMLOptions forwards options to the HTML exporter.
func WithHTMLOptions(options ...HTMLOption) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.html = append(cfg.html, options...)
	}
}

// DefaultRegistry returns a registry with every built-in format: pdf, xlsx,
// text, html and json.
func DefaultRegistry(options ...RegistryOption) (*Registry, error) {
	cfg := &registryConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	engine, err := NewTemplateEngine(cfg.templateDir)
	if err != nil {
		return nil, err
	}
	registry := NewRegistry()
	for _, exporter := range []Exporter{
		NewPDFExporter(),
		NewXLSXExporter(),
		NewTextExporter(engine),
		NewHTMLExporter(engine, cfg.html...),
		NewJSONExporter(),
	} {
		if err := registry.Register(exporter); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register adds an exporter by its Name(). Names are case-insensitive.
func (r *Registry) Register(exporter Exporter) error {
	if exporter == nil {
		return fmt.Errorf("export: exporter is required")
	}
	name := normalizeName(exporter.Name())
	if name == "" {
		return fmt.Errorf("export: exporter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exporters[name]; exists {
		return fmt.Errorf("export: exporter %q already registered", name)
	}
	r.exporters[name] = exporter
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(exporter Exporter) {
	if err := r.Register(exporter); err != nil {
		panic(err)
	}
}

// Get retrieves an exporter by name.
func (r *Registry) Get(name string) (Exporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exporter, ok := r.exporters[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return exporter, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether an exporter is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.exporters[normalizeName(name)]
	return ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
