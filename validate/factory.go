package validate

import (
	"fmt"
	"math"
	"regexp"
)

// Definition is a declarative validator description as it appears in a
// spec document's validators section.
type Definition struct {
	Type      string   `yaml:"type" json:"type"`
	MinLength int      `yaml:"min_length" json:"min_length,omitempty"`
	MaxLength int      `yaml:"max_length" json:"max_length,omitempty"`
	MinValue  *float64 `yaml:"min_value" json:"min_value,omitempty"`
	MaxValue  *float64 `yaml:"max_value" json:"max_value,omitempty"`
	Format    string   `yaml:"format" json:"format,omitempty"`
	Options   []string `yaml:"options" json:"options,omitempty"`
	Pattern   string   `yaml:"pattern" json:"pattern,omitempty"`
	Reason    string   `yaml:"reason" json:"reason,omitempty"`
}

// FromDefinition builds a validator from its declarative description.
func FromDefinition(def Definition) (Validator, error) {
	switch def.Type {
	case "text":
		return Text(def.MinLength, def.MaxLength), nil
	case "integer":
		minBound, err := intBound(def.MinValue)
		if err != nil {
			return nil, err
		}
		maxBound, err := intBound(def.MaxValue)
		if err != nil {
			return nil, err
		}
		return Integer(minBound, maxBound), nil
	case "float":
		return Float(def.MinValue, def.MaxValue), nil
	case "number":
		return Number(), nil
	case "date":
		format := def.Format
		if format == "" {
			format = DefaultDateFormat
		}
		if _, ok := dateLayouts[format]; !ok {
			return nil, fmt.Errorf("unsupported date format: %q", format)
		}
		return Date(format), nil
	case "email":
		return Email(), nil
	case "phone":
		return Phone(), nil
	case "choice":
		if len(def.Options) == 0 {
			return nil, fmt.Errorf("choice validator requires at least one option")
		}
		return Choice(def.Options...), nil
	case "regex":
		if def.Pattern == "" {
			return nil, fmt.Errorf("regex validator requires a pattern")
		}
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern: %w", err)
		}
		return Regex(re, def.Reason), nil
	default:
		return nil, fmt.Errorf("unknown validator type: %q", def.Type)
	}
}

func intBound(f *float64) (*int64, error) {
	if f == nil {
		return nil, nil
	}
	if *f != math.Trunc(*f) {
		return nil, fmt.Errorf("integer bound must be a whole number, got %g", *f)
	}
	n := int64(*f)
	return &n, nil
}
