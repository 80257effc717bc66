package document

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-timeeffort/pkg/allocation"
	"github.com/goliatone/go-timeeffort/pkg/model"
)

const (
	titleSize   = 18
	headerSize  = 12
	bodySize    = 10
	legalSize   = 9
	footerSize  = 8
	indent      = 5
	valueOffset = 50
)

var nameSeparatorRun = regexp.MustCompile(`[\s/\\]+`)

// Header holds the lines printed in the title block.
type Header struct {
	Title        string `json:"title" yaml:"title"`
	Organization string `json:"organization" yaml:"organization"`
	Compliance   string `json:"compliance" yaml:"compliance"`
}

// DefaultHeader returns the standard title block.
func DefaultHeader() Header {
	return Header{
		Title:        DefaultTitle,
		Organization: DefaultOrganization,
		Compliance:   DefaultCompliance,
	}
}

// Option configures the Renderer.
type Option func(*Renderer)

// WithLayout overrides the page geometry. Non-positive values fall back to
// the defaults.
func WithLayout(layout Layout) Option {
	return func(r *Renderer) {
		r.layout = layout.normalized()
	}
}

// WithHeader overrides the title block. Empty lines keep their defaults.
func WithHeader(header Header) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(header.Title) != "" {
			r.header.Title = header.Title
		}
		if strings.TrimSpace(header.Organization) != "" {
			r.header.Organization = header.Organization
		}
		if strings.TrimSpace(header.Compliance) != "" {
			r.header.Compliance = header.Compliance
		}
	}
}

// WithClock overrides the time source used for the generated-at stamp.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithMeasure sets the function that measures printed text widths. Wrapping
// uses it to keep every line inside the content width. The default measures
// with Helvetica metrics; pass CoreFontMeasure("Courier") or similar when the
// document is printed in another font.
func WithMeasure(measure Measure) Option {
	return func(r *Renderer) {
		if measure != nil {
			r.measure = measure
		}
	}
}

// Renderer lays out a finalized record as a paginated document. Render does
// not mutate its input and performs no I/O; the clock is the only ambient
// input.
type Renderer struct {
	layout  Layout
	header  Header
	measure Measure
	now     func() time.Time
}

// New constructs a Renderer with an A4 layout and the default header.
func New(options ...Option) *Renderer {
	r := &Renderer{
		layout:  DefaultLayout(),
		header:  DefaultHeader(),
		measure: helveticaMeasure(),
		now:     time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Layout returns the renderer's page geometry.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render builds the document for record. total is printed as given and is
// not re-validated. An unparsable TotalHours is printed verbatim and yields
// zero hour equivalents.
func (r *Renderer) Render(record model.Record, total decimal.Decimal) Document {
	record = record.Clone()
	layout := r.layout
	c := newCursor(layout)
	left := layout.Margin
	center := layout.PageWidth / 2

	normal := func(size float64) Style { return Style{Size: size, Weight: WeightNormal, Align: AlignLeft} }
	bold := func(size float64) Style { return Style{Size: size, Weight: WeightBold, Align: AlignLeft} }

	// Title block.
	c.text(BlockTitle, center, r.header.Title, Style{Size: titleSize, Weight: WeightBold, Align: AlignCenter})
	c.down(8)
	c.text(BlockTitle, center, r.header.Organization, Style{Size: headerSize, Weight: WeightNormal, Align: AlignCenter})
	c.down(15)
	c.text(BlockTitle, center, r.header.Compliance, Style{Size: bodySize, Weight: WeightItalic, Align: AlignCenter})

	// Employee information.
	c.down(15)
	c.text(BlockEmployee, left, "EMPLOYEE INFORMATION", bold(headerSize))
	c.down(8)
	c.text(BlockEmployee, left, "Name: "+record.EmployeeName, normal(bodySize))
	c.down(6)
	c.text(BlockEmployee, left, "Employee ID: "+employeeID(record), normal(bodySize))
	c.down(6)
	c.text(BlockEmployee, left, "Job Title: "+record.JobTitle, normal(bodySize))
	c.down(6)
	c.text(BlockEmployee, left, "Department: "+record.Department, normal(bodySize))

	// Pay period.
	c.down(12)
	c.text(BlockPayPeriod, left, "PAY PERIOD", bold(bodySize))
	c.down(8)
	c.text(BlockPayPeriod, left, fmt.Sprintf("Period: %s to %s", record.PayPeriodStart, record.PayPeriodEnd), normal(bodySize))
	c.down(6)
	c.text(BlockPayPeriod, left, fmt.Sprintf("Total Hours Worked: %s hours", record.TotalHours), normal(bodySize))

	// Time distribution.
	c.down(12)
	c.text(BlockDistribution, left, "TIME DISTRIBUTION", bold(bodySize))
	c.down(8)
	entries := distribution(record)
	for _, entry := range entries {
		c.text(BlockDistribution, left+indent, fmt.Sprintf("%s: %s%% (%s hrs)", entry.Label, entry.Percent, entry.Hours), normal(bodySize))
		c.down(6)
	}
	c.down(2)
	c.text(BlockDistribution, left+indent, fmt.Sprintf("TOTAL: %s%%", allocation.FormatTotal(total)), bold(bodySize))

	// Activities.
	c.down(12)
	c.text(BlockActivities, left, "DESCRIPTION OF ACTIVITIES", bold(bodySize))
	c.down(8)
	c.flow(BlockActivities, left, layout.Wrap(record.ActivitiesDescription, bodySize, r.measure), normal(bodySize))

	// Certifications always start on a fresh page.
	c.newPage()
	c.text(BlockEmployeeCertification, left, "EMPLOYEE CERTIFICATION", bold(headerSize))
	c.down(10)
	c.flow(BlockEmployeeCertification, left, layout.Wrap(EmployeeCertificationText, legalSize, r.measure), normal(legalSize))
	c.down(10)
	r.signatureLine(c, BlockEmployeeCertification, "Employee Signature:", record.EmployeeSignature)
	c.down(8)
	r.signatureLine(c, BlockEmployeeCertification, "Date:", record.EmployeeDate)

	c.down(20)
	c.text(BlockSupervisorCertification, left, "SUPERVISOR REVIEW AND CERTIFICATION", bold(headerSize))
	c.down(10)
	c.flow(BlockSupervisorCertification, left, layout.Wrap(SupervisorCertificationText, legalSize, r.measure), normal(legalSize))
	c.down(10)
	r.signatureLine(c, BlockSupervisorCertification, "Supervisor Name:", record.SupervisorName)
	c.down(8)
	r.signatureLine(c, BlockSupervisorCertification, "Supervisor Signature:", record.SupervisorSignature)
	c.down(8)
	r.signatureLine(c, BlockSupervisorCertification, "Date:", record.SupervisorDate)

	// Footer.
	generatedAt := r.now().UTC()
	footer := Style{Size: footerSize, Weight: WeightItalic, Align: AlignLeft}
	c.down(20)
	c.text(BlockFooter, left, "Generated: "+generatedAt.Format(TimestampLayout), footer)
	c.down(4)
	c.text(BlockFooter, left, ElectronicSignatureNotice, footer)

	return Document{
		Name:        FileName(record),
		Title:       r.header.Title,
		Layout:      layout,
		GeneratedAt: generatedAt,
		Pages:       c.pages,
		Summary:     summarize(record, entries, total),
	}
}

func (r *Renderer) signatureLine(c *cursor, block Block, label, value string) {
	left := r.layout.Margin
	c.text(block, left, label, Style{Size: legalSize, Weight: WeightBold, Align: AlignLeft})
	c.text(block, left+valueOffset, value, Style{Size: legalSize, Weight: WeightNormal, Align: AlignLeft})
}

// FileName derives the artifact identifier from the employee name and the
// pay period. Runs of whitespace and path separators in the name become
// underscores. Identical names and periods yield identical identifiers.
func FileName(record model.Record) string {
	name := nameSeparatorRun.ReplaceAllString(record.EmployeeName, "_")
	return fmt.Sprintf("TimeEffort_%s_%s_%s", name, record.PayPeriodStart, record.PayPeriodEnd)
}

func employeeID(record model.Record) string {
	if record.EmployeeID == "" {
		return "N/A"
	}
	return record.EmployeeID
}

func distribution(record model.Record) []DistributionEntry {
	shares := allocation.Allocated(allocation.Breakdown(record))
	out := make([]DistributionEntry, 0, len(shares))
	for _, share := range shares {
		out = append(out, DistributionEntry{
			Key:     string(share.Source.Key),
			Label:   share.Source.Label,
			Percent: allocation.FormatPercent(share.Percent),
			Hours:   allocation.FormatHours(share.Hours),
		})
	}
	return out
}

func summarize(record model.Record, entries []DistributionEntry, total decimal.Decimal) Summary {
	return Summary{
		EmployeeName:          record.EmployeeName,
		EmployeeID:            employeeID(record),
		JobTitle:              record.JobTitle,
		Department:            record.Department,
		PayPeriodStart:        record.PayPeriodStart,
		PayPeriodEnd:          record.PayPeriodEnd,
		TotalHours:            record.TotalHours,
		Distribution:          entries,
		TotalPercent:          allocation.FormatTotal(total),
		ActivitiesDescription: record.ActivitiesDescription,
		EmployeeSignature:     record.EmployeeSignature,
		EmployeeDate:          record.EmployeeDate,
		SupervisorName:        record.SupervisorName,
		SupervisorSignature:   record.SupervisorSignature,
		SupervisorDate:        record.SupervisorDate,
	}
}
