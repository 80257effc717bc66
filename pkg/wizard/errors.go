package wizard

import (
	"sort"

	"github.com/goliatone/go-timeeffort/pkg/model"
)

// KeyPercentage is the single aggregate error slot for the allocation rules.
const KeyPercentage = "percentage"

// Kind classifies a validation failure.
type Kind string

const (
	// KindMissing marks a required value that is absent or blank.
	KindMissing Kind = "field-missing"
	// KindInvalid marks a value of the wrong shape, such as non-positive hours.
	KindInvalid Kind = "field-invalid"
	// KindAggregate marks a failure of the allocation as a whole.
	KindAggregate Kind = "aggregate-invalid"
)

const (
	msgRequired       = "Required"
	msgHours          = "Required and must be > 0"
	msgActivities     = "Required - describe 2-3 specific activities per funding source"
	msgAtLeastOne     = "At least one funding source must be > 0%"
	msgTotalFormatted = "Total must equal 100%% (currently %s%%)"
)

// FieldError is a local, recoverable validation failure attached to a field
// or to the aggregate percentage slot.
type FieldError struct {
	Key     string `json:"key"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Error implements error so callers can treat a FieldError as one.
func (e FieldError) Error() string {
	return e.Key + ": " + e.Message
}

// ErrorMap holds at most one error per key.
type ErrorMap map[string]FieldError

// Keys returns the error keys in form order, with the aggregate slot placed
// where the allocation fields are.
func (m ErrorMap) Keys() []string {
	order := make(map[string]int, len(model.Fields())+1)
	for i, name := range model.Fields() {
		order[string(name)] = i
	}
	order[KeyPercentage] = order[string(model.FieldERIPercent)]

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		oi, iok := order[keys[i]]
		oj, jok := order[keys[j]]
		switch {
		case iok && jok && oi != oj:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func (m ErrorMap) clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for key, err := range m {
		out[key] = err
	}
	return out
}

func (m ErrorMap) set(key string, kind Kind, message string) {
	m[key] = FieldError{Key: key, Kind: kind, Message: message}
}
