package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-timeeffort/pkg/document"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSink overrides where artifacts are saved.
func WithSink(sink Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithRegistry overrides the exporter registry.
func WithRegistry(registry *Registry) Option {
	return func(s *Service) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithClock overrides the time source for Result.SavedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDefaultFormats sets the formats used when Export is called without
// any.
func WithDefaultFormats(formats ...string) Option {
	return func(s *Service) {
		s.defaults = append([]string(nil), formats...)
	}
}

// Service exports a document to one or more formats and saves each artifact
// through a Sink.
type Service struct {
	registry *Registry
	sink     Sink
	logger   *zap.Logger
	now      func() time.Time
	defaults []string
}

// NewService builds a Service. Without WithRegistry the built-in formats are
// registered; without WithSink artifacts go to the working directory.
func NewService(options ...Option) (*Service, error) {
	s := &Service{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			return nil, err
		}
		s.registry = registry
	}
	if s.sink == nil {
		s.sink = NewFileSink(".")
	}
	for _, format := range s.defaults {
		if !s.registry.Has(format) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
		}
	}
	return s, nil
}

// Registry returns the exporters available to the service.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Export encodes doc in every requested format and saves the artifacts as
// baseName plus the format extension. An empty baseName falls back to the
// document name. Each format gets a Result; the returned error joins every
// per-format failure.
func (s *Service) Export(ctx context.Context, doc document.Document, baseName string, formats ...string) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		formats = s.defaults
	}
	formats = dedupe(formats)
	if len(formats) == 0 {
		return nil, ErrNoFormats
	}
	if strings.TrimSpace(baseName) == "" {
		baseName = doc.Name
	}

	results := make([]Result, 0, len(formats))
	var errs []error
	for _, format := range formats {
		result := s.exportOne(ctx, doc, baseName, format)
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.Format, result.Err))
			s.logger.Warn("document export failed",
				zap.String("format", result.Format),
				zap.String("name", result.Name),
				zap.Error(result.Err),
			)
		} else {
			s.logger.Info("document exported",
				zap.String("format", result.Format),
				zap.String("location", result.Location),
				zap.Int("size", result.Size),
			)
		}
		results = append(results, result)
	}
	return results, errors.Join(errs...)
}

func (s *Service) exportOne(ctx context.Context, doc document.Document, baseName, format string) Result {
	result := Result{Format: normalizeName(format)}

	exporter, err := s.registry.Get(format)
	if err != nil {
		result.Err = err
		return result
	}
	result.Name = baseName + "." + exporter.Extension()

	var buf bytes.Buffer
	if err := exporter.Export(ctx, doc, &buf); err != nil {
		result.Err = err
		return result
	}

	location, err := s.sink.Save(ctx, result.Name, buf.Bytes())
	if err != nil {
		result.Err = err
		return result
	}

	result.Location = location
	result.Size = buf.Len()
	result.Success = true
	result.SavedAt = s.now()
	return result
}

func dedupe(formats []string) []string {
	seen := make(map[string]struct{}, len(formats))
	out := make([]string, 0, len(formats))
	for _, format := range formats {
		name := normalizeName(format)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
