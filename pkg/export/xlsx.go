package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-timeeffort/pkg/document"
)

// SheetName is the worksheet the spreadsheet export writes to.
const SheetName = "Time and Effort"

// XLSXExporter writes the report summary as a single worksheet: header,
// employee and pay period rows, the distribution table, activities and the
// certification signatures.
type XLSXExporter struct{}

// NewXLSXExporter returns the spreadsheet exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) Name() string      { return "xlsx" }
func (e *XLSXExporter) Extension() string { return "xlsx" }
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

type sheetStyles struct {
	title   int
	section int
	header  int
	label   int
	wrap    int
	total   int
}

// sheetWriter appends rows to the worksheet, remembering the first error.
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (w *sheetWriter) set(col int, value any, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(SheetName, cell, value); err != nil {
		w.err = err
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(SheetName, cell, cell, style)
	}
}

func (w *sheetWriter) line(style int, values ...any) {
	for i, value := range values {
		w.set(i+1, value, style)
	}
	w.row++
}

func (w *sheetWriter) pair(label, value string, styles sheetStyles) {
	w.set(1, label, styles.label)
	w.set(2, value, 0)
	w.row++
}

func (w *sheetWriter) skip() {
	w.row++
}

// Export implements Exporter.
func (e *XLSXExporter) Export(ctx context.Context, doc document.Document, out io.Writer) error {
	if err := checkDocument(ctx, doc); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("%w: xlsx: %v", ErrEncode, err)
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		return fmt.Errorf("%w: xlsx: %v", ErrEncode, err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   doc.Title,
		Subject: doc.Name,
		Creator: "go-timeeffort",
		Created: doc.GeneratedAt.UTC().Format(document.TimestampLayout),
	}); err != nil {
		return fmt.Errorf("%w: xlsx: %v", ErrEncode, err)
	}

	for col, width := range map[string]float64{"A": 36, "B": 18, "C": 14} {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("%w: xlsx: %v", ErrEncode, err)
		}
	}

	s := doc.Summary
	w := &sheetWriter{f: f, row: 1}

	for i, text := range document.Texts(doc.Block(document.BlockTitle)) {
		style := styles.section
		if i == 0 {
			style = styles.title
		}
		w.line(style, text)
	}
	w.skip()

	w.line(styles.section, "EMPLOYEE INFORMATION")
	w.pair("Name", s.EmployeeName, styles)
	w.pair("Employee ID", s.EmployeeID, styles)
	w.pair("Job Title", s.JobTitle, styles)
	w.pair("Department", s.Department, styles)
	w.skip()

	w.line(styles.section, "PAY PERIOD")
	w.pair("Period Start", s.PayPeriodStart, styles)
	w.pair("Period End", s.PayPeriodEnd, styles)
	w.pair("Total Hours Worked", s.TotalHours, styles)
	w.skip()

	w.line(styles.section, "TIME DISTRIBUTION")
	w.line(styles.header, "Funding Source", "Percent", "Hours")
	for _, entry := range s.Distribution {
		w.line(0, entry.Label, entry.Percent+"%", entry.Hours)
	}
	w.line(styles.total, "TOTAL", s.TotalPercent+"%")
	w.skip()

	w.line(styles.section, "DESCRIPTION OF ACTIVITIES")
	w.line(styles.wrap, s.ActivitiesDescription)
	w.skip()

	w.line(styles.section, "EMPLOYEE CERTIFICATION")
	w.line(styles.wrap, document.EmployeeCertificationText)
	w.pair("Employee Signature", s.EmployeeSignature, styles)
	w.pair("Date", s.EmployeeDate, styles)
	w.skip()

	w.line(styles.section, "SUPERVISOR REVIEW AND CERTIFICATION")
	w.line(styles.wrap, document.SupervisorCertificationText)
	w.pair("Supervisor Name", s.SupervisorName, styles)
	w.pair("Supervisor Signature", s.SupervisorSignature, styles)
	w.pair("Date", s.SupervisorDate, styles)
	w.skip()

	w.line(0, "Generated: "+doc.GeneratedAt.UTC().Format(document.TimestampLayout))
	w.line(0, document.ElectronicSignatureNotice)

	if w.err != nil {
		return fmt.Errorf("%w: xlsx: %v", ErrEncode, w.err)
	}
	if err := f.Write(out); err != nil {
		return fmt.Errorf("%w: xlsx: %v", ErrEncode, err)
	}
	return nil
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var (
		styles sheetStyles
		err    error
	)
	defs := []struct {
		target *int
		style  *excelize.Style
	}{
		{&styles.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&styles.section, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}}},
		{&styles.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&styles.label, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&styles.wrap, &excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}}},
		{&styles.total, &excelize.Style{Font: &excelize.Font{Bold: true}}},
	}
	for _, def := range defs {
		if *def.target, err = f.NewStyle(def.style); err != nil {
			return styles, err
		}
	}
	return styles, nil
}
