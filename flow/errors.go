package flow

import "fmt"

// ErrorCode identifies a class of structural defect found during compilation.
type ErrorCode string

const (
	ErrDuplicateIdentifier ErrorCode = "duplicate_identifier"
	ErrInvalidIdentifier   ErrorCode = "invalid_identifier"
	ErrUnknownEntry        ErrorCode = "unknown_entry"
	ErrDanglingTarget      ErrorCode = "dangling_target"
	ErrUnknownValidator    ErrorCode = "unknown_validator"
	ErrUnknownGroup        ErrorCode = "unknown_group"
	ErrMultipleDefaults    ErrorCode = "multiple_default_transitions"
	ErrMissingDefault      ErrorCode = "missing_default_transition"
	ErrNoTerminalStep      ErrorCode = "no_terminal_step"

	// WarnUnreachableStep marks a step no path from the entry reaches.
	// Dead steps cannot corrupt runtime behavior, so they do not block
	// compilation, but they almost always indicate an authoring mistake.
	WarnUnreachableStep ErrorCode = "unreachable_step"
)

// CompileError is one structural defect in a spec. The compiler collects
// every defect in a single pass so an author can fix them together.
type CompileError struct {
	Code    ErrorCode `json:"code"`
	Step    StepID    `json:"step,omitempty"`
	Detail  string    `json:"detail"`
	Warning bool      `json:"warning,omitempty"`
}

func (e CompileError) Error() string {
	severity := "error"
	if e.Warning {
		severity = "warning"
	}
	if e.Step != "" {
		return fmt.Sprintf("%s: step %q: %s (%s)", severity, e.Step, e.Detail, e.Code)
	}
	return fmt.Sprintf("%s: %s (%s)", severity, e.Detail, e.Code)
}

// HasErrors reports whether diags contains at least one hard error.
func HasErrors(diags []CompileError) bool {
	for _, d := range diags {
		if !d.Warning {
			return true
		}
	}
	return false
}
