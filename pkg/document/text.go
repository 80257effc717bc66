package document

const (
	DefaultTitle        = "TIME AND EFFORT REPORT"
	DefaultOrganization = "EcoExploratorio: Museo de Ciencias de Puerto Rico"
	DefaultCompliance   = "In compliance with 2 CFR 200.430(i)"

	EmployeeCertificationText = "I certify that this report accurately reflects the actual time worked by me during the period " +
		"indicated above and that the distribution of time is a true and correct representation of my activities. " +
		"I understand that this information is used to support salary charges to grants and may be subject to " +
		"audit or review. This certification is made in compliance with 2 CFR 200.430(i) and knowingly providing " +
		"false information may result in disciplinary action and recovery of funds."

	SupervisorCertificationText = "I have reviewed this Time & Effort report and confirm that it is reasonable, consistent with the " +
		"employee's assigned duties, and supported by my knowledge of the work performed. I certify that " +
		"this distribution accurately reflects the employee's activities during the reporting period."

	ElectronicSignatureNotice = "This document was electronically generated and is valid without physical signature."

	// TimestampLayout formats the generated-at footer in UTC with millisecond
	// precision.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)
