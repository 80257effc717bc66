package allocation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-timeeffort/pkg/model"
)

func recordWith(values map[model.FieldName]string) model.Record {
	record := model.NewRecord()
	for key, value := range values {
		record.Allocation[key] = value
	}
	return record
}

func TestParse_TreatsBlankAndGarbageAsZero(t *testing.T) {
	cases := map[string]string{
		"":       "0",
		"   ":    "0",
		"abc":    "0",
		"12.5":   "12.5",
		" 40 ":   "40",
		"-10":    "-10",
		"60.000": "60",
	}
	for raw, want := range cases {
		if got := Parse(raw).String(); got != want {
			t.Fatalf("Parse(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestTotal_SumsParsedValues(t *testing.T) {
	record := recordWith(map[model.FieldName]string{
		model.FieldERIPercent:      "50",
		model.FieldNASAIslaPercent: "25.5",
		model.FieldOceanosPercent:  "",
		model.FieldCapexPercent:    "not a number",
		model.FieldUnrestricted:    "4.5",
	})

	total := Total(record)
	if !total.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected 80, got %s", total)
	}
}

func TestTotal_IgnoresUnknownKeys(t *testing.T) {
	record := recordWith(map[model.FieldName]string{
		model.FieldERIPercent: "100",
		"bonusPercent":        "20",
	})
	if got := Total(record); !got.Equal(Hundred) {
		t.Fatalf("expected 100, got %s", got)
	}
}

func TestIsComplete_StrictBoundaries(t *testing.T) {
	cases := []struct {
		values map[model.FieldName]string
		want   bool
	}{
		{map[model.FieldName]string{model.FieldERIPercent: "100"}, true},
		{map[model.FieldName]string{model.FieldERIPercent: "99.9"}, false},
		{map[model.FieldName]string{model.FieldERIPercent: "100.1"}, false},
		{map[model.FieldName]string{
			model.FieldERIPercent:      "33.3",
			model.FieldNASAIslaPercent: "33.3",
			model.FieldOceanosPercent:  "33.4",
		}, true},
		{map[model.FieldName]string{
			model.FieldERIPercent:      "0.1",
			model.FieldNASAIslaPercent: "0.2",
			model.FieldOceanosPercent:  "99.7",
		}, true},
	}

	for _, tc := range cases {
		got := IsComplete(Total(recordWith(tc.values)))
		if got != tc.want {
			t.Fatalf("IsComplete(%v) = %v, want %v", tc.values, got, tc.want)
		}
	}
}

func TestHasPositive(t *testing.T) {
	if HasPositive(model.NewRecord()) {
		t.Fatalf("empty record should have no positive allocation")
	}
	if HasPositive(recordWith(map[model.FieldName]string{model.FieldERIPercent: "0", model.FieldDOLPercent: "-5"})) {
		t.Fatalf("zero and negative entries are not positive")
	}
	if !HasPositive(recordWith(map[model.FieldName]string{model.FieldDOLPercent: "0.01"})) {
		t.Fatalf("expected positive allocation")
	}
}

func TestHours_RoundsToTwoPlaces(t *testing.T) {
	got := Hours(decimal.NewFromInt(25), decimal.NewFromInt(80))
	if FormatHours(got) != "20.00" {
		t.Fatalf("expected 20.00, got %s", FormatHours(got))
	}

	got = Hours(decimal.RequireFromString("33.3"), decimal.RequireFromString("37.5"))
	if FormatHours(got) != "12.49" {
		t.Fatalf("expected 12.49, got %s", FormatHours(got))
	}
}

func TestBreakdown_KeepsDeclaredOrderAndZeros(t *testing.T) {
	record := recordWith(map[model.FieldName]string{
		model.FieldNASAIslaPercent: "40",
		model.FieldERIPercent:      "60",
	})
	record.TotalHours = "80"

	shares := Breakdown(record)
	if len(shares) != len(model.FundingSources()) {
		t.Fatalf("expected %d shares, got %d", len(model.FundingSources()), len(shares))
	}

	type row struct {
		Key     model.FieldName
		Percent string
		Hours   string
	}
	var got []row
	for _, share := range Allocated(shares) {
		got = append(got, row{share.Source.Key, FormatPercent(share.Percent), FormatHours(share.Hours)})
	}
	want := []row{
		{model.FieldERIPercent, "60", "48.00"},
		{model.FieldNASAIslaPercent, "40", "32.00"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("allocated shares mismatch (-want +got):\n%s", diff)
	}

	if FormatHours(shares[2].Hours) != "0.00" {
		t.Fatalf("zero share should preview as 0.00 hours, got %s", FormatHours(shares[2].Hours))
	}
}

func TestBreakdown_UnparsableHoursCountAsZero(t *testing.T) {
	record := recordWith(map[model.FieldName]string{model.FieldERIPercent: "100"})
	record.TotalHours = "eighty"

	shares := Breakdown(record)
	if !shares[0].Hours.IsZero() {
		t.Fatalf("expected zero hours, got %s", shares[0].Hours)
	}
}

func TestOutOfRange_IsAdvisory(t *testing.T) {
	record := recordWith(map[model.FieldName]string{
		model.FieldERIPercent:      "150",
		model.FieldNASAIslaPercent: "-50",
		model.FieldOceanosPercent:  "x",
	})

	var keys []model.FieldName
	for _, source := range OutOfRange(record) {
		keys = append(keys, source.Key)
	}
	want := []model.FieldName{model.FieldERIPercent, model.FieldNASAIslaPercent}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("out of range mismatch (-want +got):\n%s", diff)
	}
	if !IsComplete(Total(record)) {
		t.Fatalf("150 + -50 should still total 100")
	}
}

func TestFormatTotal(t *testing.T) {
	if got := FormatTotal(Hundred); got != "100.0" {
		t.Fatalf("expected 100.0, got %s", got)
	}
	if got := FormatTotal(decimal.RequireFromString("99.94")); got != "99.9" {
		t.Fatalf("expected 99.9, got %s", got)
	}
}

func TestParseStrict_BoundsMagnitude(t *testing.T) {
	for _, raw := range []string{"1e900000000", "-1e-900000000", "1e21", "0.000000000000000000001", "1" + strings.Repeat("0", 64)} {
		if _, ok := ParseStrict(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
	for _, raw := range []string{"1e20", "12.5", "0.00000000000000000001", "-50"} {
		if _, ok := ParseStrict(raw); !ok {
			t.Fatalf("expected %q to parse", raw)
		}
	}

	record := recordWith(map[model.FieldName]string{
		model.FieldERIPercent:      "1e900000000",
		model.FieldNASAIslaPercent: "60",
	})
	if got := Total(record); !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected the oversized entry to count as zero, got %s", got)
	}
}
