package model

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field name is not part of the report.
var ErrUnknownField = errors.New("model: unknown field")

// FieldName is the wire name of a report field, matching the input names used
// by form front-ends and record files.
type FieldName string

const (
	FieldEmployeeName          FieldName = "employeeName"
	FieldEmployeeID            FieldName = "employeeId"
	FieldJobTitle              FieldName = "jobTitle"
	FieldDepartment            FieldName = "department"
	FieldPayPeriodStart        FieldName = "payPeriodStart"
	FieldPayPeriodEnd          FieldName = "payPeriodEnd"
	FieldTotalHours            FieldName = "totalHours"
	FieldERIPercent            FieldName = "eriPercent"
	FieldNASAIslaPercent       FieldName = "nasaIslaPercent"
	FieldOceanosPercent        FieldName = "oceanosPercent"
	FieldCapexPercent          FieldName = "capexPercent"
	FieldDOLPercent            FieldName = "dolPercent"
	FieldPrivateGrantsPercent  FieldName = "privateGrantsPercent"
	FieldUnrestricted          FieldName = "unrestricted"
	FieldActivitiesDescription FieldName = "activitiesDescription"
	FieldEmployeeSignature     FieldName = "employeeSignature"
	FieldEmployeeDate          FieldName = "employeeDate"
	FieldSupervisorName        FieldName = "supervisorName"
	FieldSupervisorSignature   FieldName = "supervisorSignature"
	FieldSupervisorDate        FieldName = "supervisorDate"
)

// FundingSource describes one of the fixed budget categories an employee's
// time is allocated across. Min and Max are input hints only.
type FundingSource struct {
	Key   FieldName `json:"key" yaml:"key"`
	Label string    `json:"label" yaml:"label"`
	Color string    `json:"color" yaml:"color"`
	Min   float64   `json:"min" yaml:"min"`
	Max   float64   `json:"max" yaml:"max"`
}

var fundingSources = []FundingSource{
	{Key: FieldERIPercent, Label: "ERI - Instituto de Resiliencia", Color: "#2563eb", Max: 100},
	{Key: FieldNASAIslaPercent, Label: "NASA Isla Grant 2", Color: "#dc2626", Max: 100},
	{Key: FieldOceanosPercent, Label: "OCEANOS / NASA Federal Award", Color: "#059669", Max: 100},
	{Key: FieldCapexPercent, Label: "CAPEX / Government Funds (OGP)", Color: "#7c3aed", Max: 100},
	{Key: FieldDOLPercent, Label: "Department of Labor (Law 52)", Color: "#ea580c", Max: 100},
	{Key: FieldPrivateGrantsPercent, Label: "Private/Corporate Grants", Color: "#0891b2", Max: 100},
	{Key: FieldUnrestricted, Label: "General Operations (Unrestricted)", Color: "#64748b", Max: 100},
}

var departments = []string{
	"Education",
	"Exhibits",
	"Administration",
	"Operations",
	"Finance",
	"ERI - Resilience Institute",
	"Other",
}

// FundingSources returns the funding sources in their declared order. The
// returned slice is a copy.
func FundingSources() []FundingSource {
	return append([]FundingSource(nil), fundingSources...)
}

// FundingSourceByKey looks up a funding source by its field name.
func FundingSourceByKey(key FieldName) (FundingSource, bool) {
	for _, source := range fundingSources {
		if source.Key == key {
			return source, true
		}
	}
	return FundingSource{}, false
}

// IsAllocationField reports whether name is one of the funding-source keys.
func IsAllocationField(name FieldName) bool {
	_, ok := FundingSourceByKey(name)
	return ok
}

// Departments returns the closed set of department names.
func Departments() []string {
	return append([]string(nil), departments...)
}

// IsDepartment reports whether name is one of the listed departments.
func IsDepartment(name string) bool {
	for _, dept := range departments {
		if dept == name {
			return true
		}
	}
	return false
}

// Record holds every value entered during one reporting session. Values are
// stored exactly as typed; parsing happens where numbers are needed.
type Record struct {
	EmployeeName          string               `json:"employeeName" yaml:"employeeName"`
	EmployeeID            string               `json:"employeeId" yaml:"employeeId"`
	JobTitle              string               `json:"jobTitle" yaml:"jobTitle"`
	Department            string               `json:"department" yaml:"department"`
	PayPeriodStart        string               `json:"payPeriodStart" yaml:"payPeriodStart"`
	PayPeriodEnd          string               `json:"payPeriodEnd" yaml:"payPeriodEnd"`
	TotalHours            string               `json:"totalHours" yaml:"totalHours"`
	Allocation            map[FieldName]string `json:"allocation" yaml:"allocation"`
	ActivitiesDescription string               `json:"activitiesDescription" yaml:"activitiesDescription"`
	EmployeeSignature     string               `json:"employeeSignature" yaml:"employeeSignature"`
	EmployeeDate          string               `json:"employeeDate" yaml:"employeeDate"`
	SupervisorName        string               `json:"supervisorName" yaml:"supervisorName"`
	SupervisorSignature   string               `json:"supervisorSignature" yaml:"supervisorSignature"`
	SupervisorDate        string               `json:"supervisorDate" yaml:"supervisorDate"`
}

// NewRecord returns an empty record with every allocation key unset.
func NewRecord() Record {
	return Record{Allocation: make(map[FieldName]string, len(fundingSources))}
}

// Fields lists every field name in form order.
func Fields() []FieldName {
	out := []FieldName{
		FieldEmployeeName,
		FieldEmployeeID,
		FieldJobTitle,
		FieldDepartment,
		FieldPayPeriodStart,
		FieldPayPeriodEnd,
		FieldTotalHours,
	}
	for _, source := range fundingSources {
		out = append(out, source.Key)
	}
	return append(out,
		FieldActivitiesDescription,
		FieldEmployeeSignature,
		FieldEmployeeDate,
		FieldSupervisorName,
		FieldSupervisorSignature,
		FieldSupervisorDate,
	)
}

// Get returns the value stored under name.
func (r Record) Get(name FieldName) (string, error) {
	if IsAllocationField(name) {
		return r.Allocation[name], nil
	}
	ptr := r.field(name)
	if ptr == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return *ptr, nil
}

// Set overwrites the value stored under name.
func (r *Record) Set(name FieldName, value string) error {
	if r == nil {
		return errors.New("model: record is nil")
	}
	if IsAllocationField(name) {
		if r.Allocation == nil {
			r.Allocation = make(map[FieldName]string, len(fundingSources))
		}
		r.Allocation[name] = value
		return nil
	}
	ptr := r.field(name)
	if ptr == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*ptr = value
	return nil
}

// Values flattens the record into a map keyed by wire name. Unset allocation
// keys are reported as empty strings.
func (r Record) Values() map[FieldName]string {
	out := make(map[FieldName]string, len(Fields()))
	for _, name := range Fields() {
		value, _ := r.Get(name)
		out[name] = value
	}
	return out
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	clone := r
	clone.Allocation = make(map[FieldName]string, len(r.Allocation))
	for key, value := range r.Allocation {
		clone.Allocation[key] = value
	}
	return clone
}

func (r *Record) field(name FieldName) *string {
	switch name {
	case FieldEmployeeName:
		return &r.EmployeeName
	case FieldEmployeeID:
		return &r.EmployeeID
	case FieldJobTitle:
		return &r.JobTitle
	case FieldDepartment:
		return &r.Department
	case FieldPayPeriodStart:
		return &r.PayPeriodStart
	case FieldPayPeriodEnd:
		return &r.PayPeriodEnd
	case FieldTotalHours:
		return &r.TotalHours
	case FieldActivitiesDescription:
		return &r.ActivitiesDescription
	case FieldEmployeeSignature:
		return &r.EmployeeSignature
	case FieldEmployeeDate:
		return &r.EmployeeDate
	case FieldSupervisorName:
		return &r.SupervisorName
	case FieldSupervisorSignature:
		return &r.SupervisorSignature
	case FieldSupervisorDate:
		return &r.SupervisorDate
	default:
		return nil
	}
}
