// Package template defines the template rendering contract used by the text
// and HTML exporters. The pongo2-backed implementation lives in gotemplate.
package template
