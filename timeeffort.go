// Package timeeffort exposes the Time & Effort report wizard, renderer and
// exporters from the top-level module.
package timeeffort

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-timeeffort/pkg/document"
	"github.com/goliatone/go-timeeffort/pkg/export"
	"github.com/goliatone/go-timeeffort/pkg/model"
	"github.com/goliatone/go-timeeffort/pkg/wizard"
)

// ErrStepFailed is returned by Complete when a step does not validate.
var ErrStepFailed = errors.New("timeeffort: step failed")

// Record aliases model.Record for callers that only import the root package.
type Record = model.Record

// Document aliases the rendered report.
type Document = document.Document

// Session aliases the wizard state machine.
type Session = wizard.Session

// NewSession starts a wizard session.
func NewSession(options ...wizard.Option) *Session {
	return wizard.New(options...)
}

// Complete advances session through every remaining step and submits it.
// When a step fails the session stays on that step with its errors in the
// error map, and the returned error wraps ErrStepFailed.
func Complete(session *Session) (Document, error) {
	for session.Step() != wizard.StepSupervisorCertification {
		step := session.Step()
		if !session.Advance() {
			return Document{}, fmt.Errorf("%w: step %d (%s)", ErrStepFailed, int(step), step)
		}
	}
	doc, ok := session.Submit()
	if !ok {
		step := wizard.StepSupervisorCertification
		return Document{}, fmt.Errorf("%w: step %d (%s)", ErrStepFailed, int(step), step)
	}
	return doc, nil
}

// Replay applies the non-empty values of record to session one field at a
// time, the way the interactive form fills it. Each update clears that
// field's error.
func Replay(session *Session, record Record) error {
	for _, set := range record.Sets() {
		if err := session.UpdateField(set.Name, set.Value); err != nil {
			return fmt.Errorf("timeeffort: replay %s: %w", set.Name, err)
		}
	}
	return nil
}

// RenderRecord replays record through a fresh session and returns the
// rendered report.
func RenderRecord(record Record, options ...wizard.Option) (Document, error) {
	session := NewSession(options...)
	if err := Replay(session, record); err != nil {
		return Document{}, err
	}
	return Complete(session)
}

// Export writes doc to dir in the given formats using the built-in
// exporters. No formats means PDF.
func Export(ctx context.Context, doc Document, dir string, formats ...string) ([]export.Result, error) {
	service, err := export.NewService(
		export.WithSink(export.NewFileSink(dir)),
		export.WithDefaultFormats("pdf"),
	)
	if err != nil {
		return nil, err
	}
	return service.Export(ctx, doc, "", formats...)
}
