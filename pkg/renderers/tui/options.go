package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-timeeffort/pkg/model"
)

// Theme captures the prefixes the runner puts in front of messages. It stays
// free of ANSI codes so any driver can print it.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	WarningPrefix string
	SuccessPrefix string
}

// DefaultTheme returns plain ASCII prefixes.
func DefaultTheme() Theme {
	return Theme{
		InfoPrefix:    "",
		ErrorPrefix:   "! ",
		WarningPrefix: "~ ",
		SuccessPrefix: "* ",
	}
}

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithForm overrides the form descriptor the prompts are built from.
func WithForm(form model.FormModel) Option {
	return func(r *Runner) {
		if len(form.Sections) > 0 {
			r.form = form
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
