package document

import "time"

// Weight selects the font variant a line is drawn with.
type Weight string

const (
	WeightNormal Weight = "normal"
	WeightBold   Weight = "bold"
	WeightItalic Weight = "italic"
)

// Align controls how a line is anchored on its X coordinate.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Block names the section of the report a line belongs to.
type Block string

const (
	BlockTitle                   Block = "title"
	BlockEmployee                Block = "employee"
	BlockPayPeriod               Block = "pay_period"
	BlockDistribution            Block = "distribution"
	BlockActivities              Block = "activities"
	BlockEmployeeCertification   Block = "employee_certification"
	BlockSupervisorCertification Block = "supervisor_certification"
	BlockFooter                  Block = "footer"
)

// Style carries the typographic attributes of a line.
type Style struct {
	Size   float64 `json:"size"`
	Weight Weight  `json:"weight"`
	Align  Align   `json:"align"`
}

// Line is a single run of text placed at an absolute position on a page.
// Coordinates are in the layout's unit (millimetres by default) with Y
// measured from the top edge to the text baseline.
type Line struct {
	Block Block   `json:"block"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Style Style   `json:"style"`
}

// Page holds the lines drawn on one page, in drawing order.
type Page struct {
	Number int    `json:"number"`
	Lines  []Line `json:"lines"`
}

// DistributionEntry is one funding source line of the time distribution.
type DistributionEntry struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Percent string `json:"percent"`
	Hours   string `json:"hours"`
}

// Summary is the tabular view of the report for exporters that do not need
// page geometry.
type Summary struct {
	EmployeeName          string              `json:"employeeName"`
	EmployeeID            string              `json:"employeeId"`
	JobTitle              string              `json:"jobTitle"`
	Department            string              `json:"department"`
	PayPeriodStart        string              `json:"payPeriodStart"`
	PayPeriodEnd          string              `json:"payPeriodEnd"`
	TotalHours            string              `json:"totalHours"`
	Distribution          []DistributionEntry `json:"distribution"`
	TotalPercent          string              `json:"totalPercent"`
	ActivitiesDescription string              `json:"activitiesDescription"`
	EmployeeSignature     string              `json:"employeeSignature"`
	EmployeeDate          string              `json:"employeeDate"`
	SupervisorName        string              `json:"supervisorName"`
	SupervisorSignature   string              `json:"supervisorSignature"`
	SupervisorDate        string              `json:"supervisorDate"`
}

// Document is the rendered, paginated report. It is a plain value; writing
// it anywhere is left to exporters.
type Document struct {
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Layout      Layout    `json:"layout"`
	GeneratedAt time.Time `json:"generatedAt"`
	Pages       []Page    `json:"pages"`
	Summary     Summary   `json:"summary"`
}

// Lines returns every line in the document in drawing order.
func (d Document) Lines() []Line {
	var out []Line
	for _, page := range d.Pages {
		out = append(out, page.Lines...)
	}
	return out
}

// Block returns the lines belonging to one report section, across pages.
func (d Document) Block(block Block) []Line {
	var out []Line
	for _, page := range d.Pages {
		for _, line := range page.Lines {
			if line.Block == block {
				out = append(out, line)
			}
		}
	}
	return out
}

// Texts returns the text of the given lines.
func Texts(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.Text)
	}
	return out
}
