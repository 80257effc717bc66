package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/goliatone/go-timeeffort/pkg/model"
)

// FixedTime is the instant returned by FixedClock.
var FixedTime = time.Date(2024, time.January, 16, 9, 30, 0, 0, time.UTC)

// FixedClock returns FixedTime, keeping generated-at stamps deterministic.
func FixedClock() time.Time {
	return FixedTime
}

// CompleteRecord returns a record that passes every step: Jane Doe, 80 hours
// split 60/40 between ERI and NASA Isla.
func CompleteRecord() model.Record {
	record := model.NewRecord()
	record.EmployeeName = "Jane Doe"
	record.EmployeeID = "E-1024"
	record.JobTitle = "Coordinator"
	record.Department = "Education"
	record.PayPeriodStart = "2024-01-01"
	record.PayPeriodEnd = "2024-01-15"
	record.TotalHours = "80"
	record.Allocation[model.FieldERIPercent] = "60"
	record.Allocation[model.FieldNASAIslaPercent] = "40"
	record.ActivitiesDescription = "Led school outreach workshops on coastal resilience and prepared NASA Isla lesson plans."
	record.EmployeeSignature = "Jane Doe"
	record.EmployeeDate = "2024-01-16"
	record.SupervisorName = "John Smith"
	record.SupervisorSignature = "John Smith"
	record.SupervisorDate = "2024-01-17"
	return record
}

// LoadRecord reads a record fixture (YAML or JSON) from disk.
func LoadRecord(t *testing.T, path string) model.Record {
	t.Helper()

	record, err := LoadRecordFromPath(path)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	return record
}

// LoadRecordFromPath returns a Record without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadRecordFromPath(path string) (model.Record, error) {
	if path == "" {
		return model.Record{}, errors.New("testsupport: record path is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return model.Record{}, fmt.Errorf("testsupport: open record: %w", err)
	}
	defer file.Close()

	record, err := model.LoadRecord(file)
	if err != nil {
		return model.Record{}, fmt.Errorf("testsupport: decode record: %w", err)
	}
	return record, nil
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}
