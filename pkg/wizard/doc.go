// Package wizard implements the four-step Time & Effort form as an explicit
// state machine. A Session owns one record and the error map of the most
// recent validation. Advancing is gated by the active step's rules;
// retreating is not. Submitting validates the supervisor step and hands the
// record, with its computed allocation total, to a document renderer.
//
// Validation failures are never fatal: they populate an ErrorMap keyed by
// field name (or KeyPercentage for the allocation as a whole) that the
// presentation layer reads back.
package wizard
