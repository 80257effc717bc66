package wizard

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-timeeffort/pkg/allocation"
	"github.com/goliatone/go-timeeffort/pkg/model"
)

type validator func(record model.Record, errs ErrorMap)

var validators = map[Step]validator{
	StepEmployeeInfo:            validateEmployeeInfo,
	StepTimeDistribution:        validateTimeDistribution,
	StepEmployeeCertification:   validateEmployeeCertification,
	StepSupervisorCertification: validateSupervisorCertification,
}

// Validate runs the rules of one step against record and returns the
// resulting error map. Steps outside 1..4 have no rules.
func Validate(step Step, record model.Record) ErrorMap {
	errs := make(ErrorMap)
	if fn, ok := validators[step]; ok {
		fn(record, errs)
	}
	return errs
}

func validateEmployeeInfo(record model.Record, errs ErrorMap) {
	requireText(errs, model.FieldEmployeeName, record.EmployeeName)
	requireText(errs, model.FieldJobTitle, record.JobTitle)
	requireValue(errs, model.FieldDepartment, record.Department)
	requireValue(errs, model.FieldPayPeriodStart, record.PayPeriodStart)
	requireValue(errs, model.FieldPayPeriodEnd, record.PayPeriodEnd)

	// No ordering check between the period boundaries.
	hours, ok := allocation.ParseStrict(record.TotalHours)
	switch {
	case !ok && strings.TrimSpace(record.TotalHours) == "":
		errs.set(string(model.FieldTotalHours), KindMissing, msgHours)
	case !ok || !hours.IsPositive():
		errs.set(string(model.FieldTotalHours), KindInvalid, msgHours)
	}
}

func validateTimeDistribution(record model.Record, errs ErrorMap) {
	total := allocation.Total(record)
	if !allocation.IsComplete(total) {
		errs.set(KeyPercentage, KindAggregate, fmt.Sprintf(msgTotalFormatted, allocation.FormatTotal(total)))
	}
	// Shares the slot with the total check and wins when both fail.
	if !allocation.HasPositive(record) {
		errs.set(KeyPercentage, KindAggregate, msgAtLeastOne)
	}

	if strings.TrimSpace(record.ActivitiesDescription) == "" {
		errs.set(string(model.FieldActivitiesDescription), KindMissing, msgActivities)
	}
}

func validateEmployeeCertification(record model.Record, errs ErrorMap) {
	requireText(errs, model.FieldEmployeeSignature, record.EmployeeSignature)
	requireValue(errs, model.FieldEmployeeDate, record.EmployeeDate)
}

func validateSupervisorCertification(record model.Record, errs ErrorMap) {
	requireText(errs, model.FieldSupervisorName, record.SupervisorName)
	requireText(errs, model.FieldSupervisorSignature, record.SupervisorSignature)
	requireValue(errs, model.FieldSupervisorDate, record.SupervisorDate)
}

// requireText rejects empty and whitespace-only values.
func requireText(errs ErrorMap, name model.FieldName, value string) {
	if strings.TrimSpace(value) == "" {
		errs.set(string(name), KindMissing, msgRequired)
	}
}

// requireValue rejects only empty values; select and date inputs never
// produce whitespace.
func requireValue(errs ErrorMap, name model.FieldName, value string) {
	if value == "" {
		errs.set(string(name), KindMissing, msgRequired)
	}
}
