package export

import "errors"

var (
	// ErrUnknownFormat is returned when no exporter is registered under a
	// requested format name.
	ErrUnknownFormat = errors.New("export: unknown format")
	// ErrNoFormats is returned when Export is called without formats and the
	// service has no defaults.
	ErrNoFormats = errors.New("export: no formats requested")
	// ErrEmptyDocument is returned for documents without pages.
	ErrEmptyDocument = errors.New("export: document has no pages")
	// ErrEncode wraps failures inside a format encoder (PDF, spreadsheet,
	// template).
	ErrEncode = errors.New("export: encode failed")
	// ErrSink wraps failures persisting an artifact.
	ErrSink = errors.New("export: save failed")
)
