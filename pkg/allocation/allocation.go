// Package allocation computes the derived values of a Time & Effort record:
// the running percentage total and per-source hour equivalents. Every
// function is pure; nothing is cached on the record.
//
// Arithmetic uses shopspring/decimal so that decimal inputs such as
// 33.3 + 33.3 + 33.4 sum to exactly 100. The 100% check stays a strict
// equality.
package allocation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-timeeffort/pkg/model"
)

// HoursPlaces is the number of decimal places hour equivalents are rounded to.
const HoursPlaces = 2

// Inputs longer than maxInputLength or with an exponent beyond maxExponent
// are not numbers for this form. Summing decimals rescales every operand to
// the smallest exponent, so an unbounded exponent allocates an integer with
// that many digits.
const (
	maxInputLength = 64
	maxExponent    = 20
)

var (
	// Hundred is the required allocation total.
	Hundred = decimal.NewFromInt(100)
)

// Share is a single funding source's slice of the reported hours.
type Share struct {
	Source  model.FundingSource
	Percent decimal.Decimal
	Hours   decimal.Decimal
}

// Parse converts raw input into a decimal. Blank or unparsable input yields
// zero.
func Parse(raw string) decimal.Decimal {
	value, ok := ParseStrict(raw)
	if !ok {
		return decimal.Zero
	}
	return value
}

// ParseStrict converts raw input into a decimal, reporting whether the input
// was a number. Overlong input and exponents outside +/-20 are rejected.
func ParseStrict(raw string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > maxInputLength {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := value.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	return value, true
}

// Total sums the parsed percentage of every declared funding source.
func Total(record model.Record) decimal.Decimal {
	total := decimal.Zero
	for _, source := range model.FundingSources() {
		total = total.Add(Parse(record.Allocation[source.Key]))
	}
	return total
}

// IsComplete reports whether total is exactly 100.
func IsComplete(total decimal.Decimal) bool {
	return total.Equal(Hundred)
}

// HasPositive reports whether at least one funding source is above zero.
func HasPositive(record model.Record) bool {
	for _, source := range model.FundingSources() {
		if Parse(record.Allocation[source.Key]).IsPositive() {
			return true
		}
	}
	return false
}

// Hours converts a percentage of totalHours into hours rounded to
// HoursPlaces.
func Hours(percent, totalHours decimal.Decimal) decimal.Decimal {
	return percent.Div(Hundred).Mul(totalHours).Round(HoursPlaces)
}

// Breakdown returns one Share per funding source in declared order,
// including zero allocations. Unparsable totalHours counts as zero hours.
func Breakdown(record model.Record) []Share {
	totalHours := Parse(record.TotalHours)
	sources := model.FundingSources()
	out := make([]Share, 0, len(sources))
	for _, source := range sources {
		percent := Parse(record.Allocation[source.Key])
		out = append(out, Share{
			Source:  source,
			Percent: percent,
			Hours:   Hours(percent, totalHours),
		})
	}
	return out
}

// Allocated filters a breakdown down to shares strictly above zero percent.
func Allocated(shares []Share) []Share {
	var out []Share
	for _, share := range shares {
		if share.Percent.IsPositive() {
			out = append(out, share)
		}
	}
	return out
}

// OutOfRange lists the funding sources whose value falls outside the
// source's input hint. The result never blocks validation.
func OutOfRange(record model.Record) []model.FundingSource {
	var out []model.FundingSource
	for _, source := range model.FundingSources() {
		value, ok := ParseStrict(record.Allocation[source.Key])
		if !ok {
			continue
		}
		if value.LessThan(decimal.NewFromFloat(source.Min)) || value.GreaterThan(decimal.NewFromFloat(source.Max)) {
			out = append(out, source)
		}
	}
	return out
}

// FormatPercent renders a percentage the way it was typed, without trailing
// zeros ("60", "12.5").
func FormatPercent(value decimal.Decimal) string {
	return value.String()
}

// FormatTotal renders the allocation total with one decimal place.
func FormatTotal(value decimal.Decimal) string {
	return value.StringFixed(1)
}

// FormatHours renders hours with HoursPlaces decimal places.
func FormatHours(value decimal.Decimal) string {
	return value.StringFixed(HoursPlaces)
}
