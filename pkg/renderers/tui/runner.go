package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-timeeffort/pkg/allocation"
	"github.com/goliatone/go-timeeffort/pkg/document"
	"github.com/goliatone/go-timeeffort/pkg/model"
	"github.com/goliatone/go-timeeffort/pkg/wizard"
)

const (
	actionNext   = "Next"
	actionBack   = "Back"
	actionSubmit = "Submit"
	actionCancel = "Cancel"
)

// Runner walks a wizard session through its steps in the terminal. It only
// forwards edits and navigation to the session; every rule lives there.
type Runner struct {
	driver PromptDriver
	form   model.FormModel
	theme  Theme
	logger *zap.Logger
}

// New constructs a Runner with the survey driver and the Time & Effort form.
func New(options ...Option) *Runner {
	r := &Runner{
		form:   model.TimeEffortForm(),
		theme:  DefaultTheme(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Run prompts for the active step, then asks where to go next, until the
// session submits or the user cancels. It returns the rendered document.
func (r *Runner) Run(ctx context.Context, session *wizard.Session) (document.Document, error) {
	if ctx == nil {
		return document.Document{}, errors.New("tui: context is required")
	}
	if session == nil {
		return document.Document{}, ErrNoSession
	}

	for {
		if err := ctx.Err(); err != nil {
			return document.Document{}, err
		}
		step := session.Step()
		section, ok := r.form.Section(int(step))
		if !ok {
			return document.Document{}, fmt.Errorf("%w: %s", ErrUnknownStep, step)
		}

		if err := r.info(ctx, r.theme.InfoPrefix, fmt.Sprintf("Step %d of %d: %s", int(step), len(wizard.Steps()), section.Title)); err != nil {
			return document.Document{}, err
		}
		if err := r.promptSection(ctx, session, section); err != nil {
			return document.Document{}, err
		}
		if step == wizard.StepTimeDistribution {
			if err := r.showAllocation(ctx, session); err != nil {
				return document.Document{}, err
			}
		}

		action, err := r.chooseAction(ctx, step)
		if err != nil {
			return document.Document{}, err
		}
		r.logger.Debug("wizard action", zap.String("action", action), zap.Stringer("step", step))

		switch action {
		case actionNext:
			if !session.Advance() {
				if err := r.showErrors(ctx, session); err != nil {
					return document.Document{}, err
				}
			}
		case actionBack:
			session.Retreat()
		case actionSubmit:
			doc, ok := session.Submit()
			if !ok {
				if err := r.showErrors(ctx, session); err != nil {
					return document.Document{}, err
				}
				continue
			}
			if err := r.info(ctx, r.theme.SuccessPrefix, "Report completed: "+doc.Name); err != nil {
				return document.Document{}, err
			}
			return doc, nil
		default:
			return document.Document{}, ErrAborted
		}
	}
}

func (r *Runner) promptSection(ctx context.Context, session *wizard.Session, section model.Section) error {
	for _, field := range section.Fields {
		if fe, ok := session.Error(string(field.Name)); ok {
			if err := r.info(ctx, r.theme.ErrorPrefix, fmt.Sprintf("%s: %s", field.Label, fe.Message)); err != nil {
				return err
			}
		}
		value, err := r.promptField(ctx, session, field)
		if err != nil {
			return err
		}
		if err := session.UpdateField(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptField(ctx context.Context, session *wizard.Session, field model.Field) (string, error) {
	current, err := session.Value(field.Name)
	if err != nil {
		return "", err
	}
	label := displayLabel(field)

	switch field.Kind {
	case model.FieldKindSelect:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, current),
			Help:         field.HelpText,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return current, nil
		}
		return field.Options[idx], nil
	case model.FieldKindTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: current,
			Help:    field.HelpText,
		})
	case model.FieldKindNumber, model.FieldKindPercent:
		return r.promptNumber(ctx, field, label, current)
	default:
		return r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: current,
			Help:    displayHelp(field),
		})
	}
}

// promptNumber re-asks until the answer is blank or numeric, like a number
// input that refuses other characters.
func (r *Runner) promptNumber(ctx context.Context, field model.Field, label, current string) (string, error) {
	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   current,
			Help:      displayHelp(field),
			Validator: numberValidator,
		})
		if err != nil {
			return "", err
		}
		if err := numberValidator(response); err != nil {
			if err := r.info(ctx, r.theme.ErrorPrefix, fmt.Sprintf("Invalid %s: %v", label, err)); err != nil {
				return "", err
			}
			continue
		}
		return strings.TrimSpace(response), nil
	}
}

func (r *Runner) showAllocation(ctx context.Context, session *wizard.Session) error {
	for _, share := range session.Breakdown() {
		line := fmt.Sprintf("  %-36s %6s%%  %8s hrs",
			share.Source.Label,
			allocation.FormatPercent(share.Percent),
			allocation.FormatHours(share.Hours),
		)
		if err := r.info(ctx, r.theme.InfoPrefix, line); err != nil {
			return err
		}
	}
	total := session.TotalPercent()
	prefix := r.theme.WarningPrefix
	if allocation.IsComplete(total) {
		prefix = r.theme.SuccessPrefix
	}
	if err := r.info(ctx, prefix, fmt.Sprintf("Total: %s%%", allocation.FormatTotal(total))); err != nil {
		return err
	}

	for _, source := range allocation.OutOfRange(session.Record()) {
		msg := fmt.Sprintf("%s is outside %g-%g%%", source.Label, source.Min, source.Max)
		if err := r.info(ctx, r.theme.WarningPrefix, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) chooseAction(ctx context.Context, step wizard.Step) (string, error) {
	var options []string
	switch step {
	case wizard.StepEmployeeInfo:
		options = []string{actionNext, actionCancel}
	case wizard.StepSupervisorCertification:
		options = []string{actionSubmit, actionBack, actionCancel}
	default:
		options = []string{actionNext, actionBack, actionCancel}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: "Continue",
		Options: options,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return actionCancel, nil
	}
	return options[idx], nil
}

func (r *Runner) showErrors(ctx context.Context, session *wizard.Session) error {
	errs := session.Errors()
	for _, key := range errs.Keys() {
		label := key
		if field, ok := r.form.Field(model.FieldName(key)); ok {
			label = field.Label
		} else if key == wizard.KeyPercentage {
			label = "Time Distribution"
		}
		if err := r.info(ctx, r.theme.ErrorPrefix, fmt.Sprintf("%s: %s", label, errs[key].Message)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) info(ctx context.Context, prefix, msg string) error {
	return r.driver.Info(ctx, prefix+msg)
}

func displayLabel(field model.Field) string {
	label := field.Label
	if label == "" {
		label = string(field.Name)
	}
	if field.Required {
		label += " *"
	}
	return label
}

func displayHelp(field model.Field) string {
	if field.HelpText != "" {
		return field.HelpText
	}
	return field.Placeholder
}

func numberValidator(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, ok := allocation.ParseStrict(value); !ok {
		return errors.New("enter a number")
	}
	return nil
}
