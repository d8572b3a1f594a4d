package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList accepts either a single YAML scalar or a sequence of scalars.
// Sample sheets use both forms interchangeably (e.g. one fusion caller as a
// bare string, several as a list).
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
		} else {
			*l = StringList{s}
		}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = StringList(items)
		return nil
	default:
		return fmt.Errorf("line %d: expected string or sequence of strings", value.Line)
	}
}

// MarshalYAML keeps single-element lists in the compact scalar form
func (l StringList) MarshalYAML() (interface{}, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []string(l), nil
}

// Contains reports whether the list includes the given value
func (l StringList) Contains(v string) bool {
	for _, item := range l {
		if item == v {
			return true
		}
	}
	return false
}

// Aligner is a tool selection that may be explicitly disabled. Sheets write
// either a tool name or the boolean false to skip alignment entirely.
type Aligner struct {
	Name     string
	Disabled bool
}

// UnmarshalYAML implements yaml.Unmarshaler
func (a *Aligner) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: aligner must be a tool name or false", value.Line)
	}

	if value.Tag == "!!bool" {
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		if b {
			return fmt.Errorf("line %d: aligner: true is not a tool selection", value.Line)
		}
		*a = Aligner{Disabled: true}
		return nil
	}

	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	*a = Aligner{Name: name}
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (a Aligner) MarshalYAML() (interface{}, error) {
	if a.Disabled {
		return false, nil
	}
	return a.Name, nil
}

// MarshalJSON keeps the JSON output in the sheet's native scalar form,
// matching MarshalYAML.
func (a Aligner) MarshalJSON() ([]byte, error) {
	if a.Disabled {
		return json.Marshal(false)
	}
	return json.Marshal(a.Name)
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Aligner) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*a = Aligner{Name: name}
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("aligner must be a tool name or false")
	}
	if b {
		return fmt.Errorf("aligner: true is not a tool selection")
	}
	*a = Aligner{Disabled: true}
	return nil
}

// IsZero reports whether no aligner was configured at all
func (a Aligner) IsZero() bool {
	return !a.Disabled && a.Name == ""
}

// String returns the configured tool name, or "false" when disabled
func (a Aligner) String() string {
	if a.Disabled {
		return "false"
	}
	return a.Name
}
