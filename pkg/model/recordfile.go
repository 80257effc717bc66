package model

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRecordFile is returned when a record file is not a mapping of
// field names to scalar values.
var ErrInvalidRecordFile = errors.New("model: invalid record file")

const allocationKey = "allocation"

// LoadRecord decodes a YAML (or JSON) mapping of wire field names to values.
// Scalars keep their literal text so "80" and "12.50" reach validation exactly
// as written. Funding-source percentages may be listed at the top level or
// under an "allocation" mapping.
func LoadRecord(r io.Reader) (Record, error) {
	record := NewRecord()
	if r == nil {
		return record, fmt.Errorf("%w: reader is nil", ErrInvalidRecordFile)
	}

	var raw map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return record, nil
		}
		return record, fmt.Errorf("%w: %v", ErrInvalidRecordFile, err)
	}

	for key, node := range raw {
		name := strings.TrimSpace(key)
		if name == allocationKey && node.Kind == yaml.MappingNode {
			if err := loadAllocation(&record, &node); err != nil {
				return record, err
			}
			continue
		}
		value, err := scalarValue(name, &node)
		if err != nil {
			return record, err
		}
		if err := record.Set(FieldName(name), value); err != nil {
			return record, fmt.Errorf("%w: %v", ErrInvalidRecordFile, err)
		}
	}
	return record, nil
}

// Sets returns the record's values as ordered (name, value) pairs, skipping
// empty values. Callers replay these through a session to reproduce a form
// fill.
func (r Record) Sets() []FieldValue {
	var out []FieldValue
	for _, name := range Fields() {
		value, _ := r.Get(name)
		if value == "" {
			continue
		}
		out = append(out, FieldValue{Name: name, Value: value})
	}
	return out
}

// FieldValue pairs a field name with its raw value.
type FieldValue struct {
	Name  FieldName
	Value string
}

func loadAllocation(record *Record, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := strings.TrimSpace(node.Content[i].Value)
		if !IsAllocationField(FieldName(key)) {
			return fmt.Errorf("%w: %q is not a funding source", ErrInvalidRecordFile, key)
		}
		value, err := scalarValue(key, node.Content[i+1])
		if err != nil {
			return err
		}
		record.Allocation[FieldName(key)] = value
	}
	return nil
}

func scalarValue(name string, node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: %q must be a scalar", ErrInvalidRecordFile, name)
	}
	if node.Tag == "!!null" {
		return "", nil
	}
	return node.Value, nil
}
