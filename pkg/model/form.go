package model

// FieldKind is the simplified enum for form-friendly field kinds.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindTextArea FieldKind = "textarea"
	FieldKindNumber   FieldKind = "number"
	FieldKindPercent  FieldKind = "percent"
	FieldKindDate     FieldKind = "date"
	FieldKindSelect   FieldKind = "select"
)

// Field models an individual input of the report form. Struct fields are
// annotated so front-ends can serialise them directly when needed.
type Field struct {
	Name        FieldName `json:"name"`
	Kind        FieldKind `json:"kind"`
	Label       string    `json:"label"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	HelpText    string    `json:"helpText,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
}

// Section groups the fields shown together on one wizard step.
type Section struct {
	Step   int     `json:"step"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// FormModel is the full description of the report form, one section per
// step in display order.
type FormModel struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Sections []Section `json:"sections"`
}

// Section returns the section for the given 1-based step.
func (f FormModel) Section(step int) (Section, bool) {
	for _, section := range f.Sections {
		if section.Step == step {
			return section, true
		}
	}
	return Section{}, false
}

// Field looks up a field descriptor by name across all sections.
func (f FormModel) Field(name FieldName) (Field, bool) {
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return Field{}, false
}

// TimeEffortForm returns the descriptor for the four-step Time & Effort
// report.
func TimeEffortForm() FormModel {
	hours := 0.0

	distribution := make([]Field, 0, len(fundingSources)+1)
	for _, source := range fundingSources {
		minVal, maxVal := source.Min, source.Max
		distribution = append(distribution, Field{
			Name:        source.Key,
			Kind:        FieldKindPercent,
			Label:       source.Label,
			Placeholder: "0",
			Min:         &minVal,
			Max:         &maxVal,
		})
	}
	distribution = append(distribution, Field{
		Name:     FieldActivitiesDescription,
		Kind:     FieldKindTextArea,
		Label:    "Description of Activities",
		Required: true,
		HelpText: "Describe 2-3 specific activities per funding source.",
	})

	return FormModel{
		Title:    "Time & Effort Report",
		Subtitle: "Certification of hours worked by funding source",
		Sections: []Section{
			{
				Step:  1,
				Title: "Employee Information",
				Fields: []Field{
					{Name: FieldEmployeeName, Kind: FieldKindText, Label: "Full Name", Required: true},
					{Name: FieldEmployeeID, Kind: FieldKindText, Label: "Employee ID", HelpText: "Optional."},
					{Name: FieldJobTitle, Kind: FieldKindText, Label: "Job Title", Required: true},
					{Name: FieldDepartment, Kind: FieldKindSelect, Label: "Department", Required: true, Options: Departments()},
					{Name: FieldPayPeriodStart, Kind: FieldKindDate, Label: "Pay Period Start", Required: true, Placeholder: "YYYY-MM-DD"},
					{Name: FieldPayPeriodEnd, Kind: FieldKindDate, Label: "Pay Period End", Required: true, Placeholder: "YYYY-MM-DD"},
					{Name: FieldTotalHours, Kind: FieldKindNumber, Label: "Total Hours Worked", Required: true, Min: &hours, HelpText: "Actual hours worked in the period."},
				},
			},
			{
				Step:   2,
				Title:  "Time Distribution",
				Fields: distribution,
			},
			{
				Step:  3,
				Title: "Employee Certification",
				Fields: []Field{
					{Name: FieldEmployeeSignature, Kind: FieldKindText, Label: "Employee Signature", Required: true, HelpText: "Type your full name."},
					{Name: FieldEmployeeDate, Kind: FieldKindDate, Label: "Date", Required: true, Placeholder: "YYYY-MM-DD"},
				},
			},
			{
				Step:  4,
				Title: "Supervisor Certification",
				Fields: []Field{
					{Name: FieldSupervisorName, Kind: FieldKindText, Label: "Supervisor Name", Required: true},
					{Name: FieldSupervisorSignature, Kind: FieldKindText, Label: "Supervisor Signature", Required: true, HelpText: "Type your full name."},
					{Name: FieldSupervisorDate, Kind: FieldKindDate, Label: "Date", Required: true, Placeholder: "YYYY-MM-DD"},
				},
			},
		},
	}
}
