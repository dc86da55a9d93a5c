package validate

import (
	"fmt"
	"sort"
)

// DuplicateValidatorError is returned when registering a name that is
// already taken without requesting an override.
type DuplicateValidatorError struct {
	Name string
}

func (e DuplicateValidatorError) Error() string {
	return fmt.Sprintf("validator already exists: %s", e.Name)
}

// UnknownValidatorError is returned when resolving a name that was
// never registered.
type UnknownValidatorError struct {
	Name string
}

func (e UnknownValidatorError) Error() string {
	return fmt.Sprintf("unknown validator: %s", e.Name)
}

// Registry maps validator names to validator functions. It is populated
// at startup (built-ins plus spec-declared extensions) and read-only
// thereafter; the compiler resolves step references against it.
type Registry struct {
	validators  map[string]Validator
	definitions map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		validators:  make(map[string]Validator),
		definitions: make(map[string]Definition),
	}
}

// Builtin creates a registry seeded with the default validator set.
func Builtin() *Registry {
	r := NewRegistry()
	r.validators["text"] = Text(0, 0)
	r.validators["integer"] = Integer(nil, nil)
	r.validators["float"] = Float(nil, nil)
	r.validators["number"] = Number()
	r.validators["date"] = Date(DefaultDateFormat)
	r.validators["email"] = Email()
	r.validators["phone"] = Phone()
	return r
}

// Register adds a validator under name. Names must be snake_case
// identifiers; registering an existing name fails with
// DuplicateValidatorError (use Replace to override).
func (r *Registry) Register(name string, v Validator) error {
	if !IsValidName(name) {
		return fmt.Errorf("invalid validator name: %q", name)
	}
	if _, exists := r.validators[name]; exists {
		return DuplicateValidatorError{Name: name}
	}
	r.validators[name] = v
	return nil
}

// Replace adds or overrides a validator under name.
func (r *Registry) Replace(name string, v Validator) error {
	if !IsValidName(name) {
		return fmt.Errorf("invalid validator name: %q", name)
	}
	r.validators[name] = v
	return nil
}

// RegisterDefinition builds a validator from its declarative description
// and registers it under name, keeping the definition for introspection
// (transports use choice options to render keyboards).
func (r *Registry) RegisterDefinition(name string, def Definition) error {
	v, err := FromDefinition(def)
	if err != nil {
		return fmt.Errorf("validator %q: %w", name, err)
	}
	if err := r.Register(name, v); err != nil {
		return err
	}
	r.definitions[name] = def
	return nil
}

// Definition returns the declarative description a validator was
// registered with, if any.
func (r *Registry) Definition(name string) (Definition, bool) {
	def, ok := r.definitions[name]
	return def, ok
}

// Resolve returns the validator registered under name.
func (r *Registry) Resolve(name string) (Validator, error) {
	v, ok := r.validators[name]
	if !ok {
		return nil, UnknownValidatorError{Name: name}
	}
	return v, nil
}

// Names lists registered validator names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
