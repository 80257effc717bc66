package wizard

import "fmt"

// Step identifies one of the four sequential stages of the report.
type Step int

const (
	StepEmployeeInfo Step = iota + 1
	StepTimeDistribution
	StepEmployeeCertification
	StepSupervisorCertification
)

const (
	firstStep = StepEmployeeInfo
	lastStep  = StepSupervisorCertification
)

var stepNames = map[Step]string{
	StepEmployeeInfo:            "EmployeeInfo",
	StepTimeDistribution:        "TimeDistribution",
	StepEmployeeCertification:   "EmployeeCertification",
	StepSupervisorCertification: "SupervisorCertification",
}

// String returns the step name.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Valid reports whether s is one of the four defined steps.
func (s Step) Valid() bool {
	return s >= firstStep && s <= lastStep
}

// Steps lists the steps in order.
func Steps() []Step {
	return []Step{
		StepEmployeeInfo,
		StepTimeDistribution,
		StepEmployeeCertification,
		StepSupervisorCertification,
	}
}

// transition is a row of the step transition table. Advance is guarded by
// the step's validation; Retreat is not.
type transition struct {
	Advance Step
	Retreat Step
}

var transitions = map[Step]transition{
	StepEmployeeInfo:            {Advance: StepTimeDistribution, Retreat: StepEmployeeInfo},
	StepTimeDistribution:        {Advance: StepEmployeeCertification, Retreat: StepEmployeeInfo},
	StepEmployeeCertification:   {Advance: StepSupervisorCertification, Retreat: StepTimeDistribution},
	StepSupervisorCertification: {Advance: StepSupervisorCertification, Retreat: StepEmployeeCertification},
}

func clamp(s Step) Step {
	if s < firstStep {
		return firstStep
	}
	if s > lastStep {
		return lastStep
	}
	return s
}
