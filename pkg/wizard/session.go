package wizard

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goliatone/go-timeeffort/pkg/allocation"
	"github.com/goliatone/go-timeeffort/pkg/document"
	"github.com/goliatone/go-timeeffort/pkg/model"
)

// DocumentRenderer turns a finalized record into a document. The total is
// the value computed by the session at submit time.
type DocumentRenderer interface {
	Render(record model.Record, total decimal.Decimal) document.Document
}

// SubmitHandler receives the rendered document after a successful submit.
// It is the hook for export side effects.
type SubmitHandler func(doc document.Document)

// Option configures a Session.
type Option func(*Session)

// WithRenderer overrides the document renderer used by Submit.
func WithRenderer(renderer DocumentRenderer) Option {
	return func(s *Session) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithSubmitHandler registers a handler invoked with the document produced
// by a successful Submit.
func WithSubmitHandler(fn SubmitHandler) Option {
	return func(s *Session) {
		s.onSubmit = fn
	}
}

// WithLogger attaches a logger. Sessions log at debug level only.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecord seeds the session with prefilled values.
func WithRecord(record model.Record) Option {
	return func(s *Session) {
		s.record = record.Clone()
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// Session is the state machine behind one reporting session. It owns the
// record and the error map for the active step. A Session is not safe for
// concurrent use; independent sessions share nothing.
type Session struct {
	id       string
	record   model.Record
	errors   ErrorMap
	step     Step
	renderer DocumentRenderer
	onSubmit SubmitHandler
	logger   *zap.Logger
}

// New starts a session at StepEmployeeInfo with an empty record.
func New(options ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		record: model.NewRecord(),
		errors: make(ErrorMap),
		step:   StepEmployeeInfo,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = document.New()
	}
	s.logger = s.logger.With(zap.String("session_id", s.id))
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Step returns the active step.
func (s *Session) Step() Step {
	return s.step
}

// Record returns a copy of the current record.
func (s *Session) Record() model.Record {
	return s.record.Clone()
}

// Values returns the current field values keyed by wire name.
func (s *Session) Values() map[model.FieldName]string {
	return s.record.Values()
}

// Value returns a single field value.
func (s *Session) Value(name model.FieldName) (string, error) {
	return s.record.Get(name)
}

// Errors returns a copy of the current error map.
func (s *Session) Errors() ErrorMap {
	return s.errors.clone()
}

// Error returns the error stored under key, if any.
func (s *Session) Error(key string) (FieldError, bool) {
	err, ok := s.errors[key]
	return err, ok
}

// UpdateField overwrites a field and clears the error keyed by that field.
// Only unknown field names fail.
func (s *Session) UpdateField(name model.FieldName, value string) error {
	if err := s.record.Set(name, value); err != nil {
		return err
	}
	delete(s.errors, string(name))
	return nil
}

// TotalPercent sums the current allocation.
func (s *Session) TotalPercent() decimal.Decimal {
	return allocation.Total(s.record)
}

// Breakdown returns the per-source percentage and hour equivalents for all
// seven sources, zero rows included.
func (s *Session) Breakdown() []allocation.Share {
	return allocation.Breakdown(s.record)
}

// ValidateStep replaces the error map with the result of the step's rules
// and reports whether the step passed.
func (s *Session) ValidateStep(step Step) bool {
	s.errors = Validate(step, s.record)
	if len(s.errors) > 0 {
		s.logger.Debug("validation failed",
			zap.Stringer("step", step),
			zap.Strings("keys", s.errors.Keys()),
		)
		return false
	}
	return true
}

// Advance validates the active step and, when it passes, moves forward. The
// last step is never exceeded.
func (s *Session) Advance() bool {
	if !s.ValidateStep(s.step) {
		return false
	}
	from := s.step
	s.step = clamp(transitions[clamp(s.step)].Advance)
	if from != s.step {
		s.logger.Debug("step advanced", zap.Stringer("from", from), zap.Stringer("to", s.step))
	}
	return true
}

// Retreat moves back one step without validating. The first step is never
// passed.
func (s *Session) Retreat() {
	from := s.step
	s.step = clamp(transitions[clamp(s.step)].Retreat)
	if from != s.step {
		s.logger.Debug("step retreated", zap.Stringer("from", from), zap.Stringer("to", s.step))
	}
}

// Submit validates the supervisor certification step and renders the record
// when it passes. On failure the step-4 errors stay in the error map and
// nothing is rendered.
func (s *Session) Submit() (document.Document, bool) {
	if !s.ValidateStep(StepSupervisorCertification) {
		return document.Document{}, false
	}
	doc := s.renderer.Render(s.record.Clone(), s.TotalPercent())
	s.logger.Debug("document rendered",
		zap.String("name", doc.Name),
		zap.Int("pages", len(doc.Pages)),
	)
	if s.onSubmit != nil {
		s.onSubmit(doc)
	}
	return doc, true
}
