package flow

// StepID is a unique identifier for a step within a conversation spec.
type StepID string

// Transition is a guarded edge to another step. An empty When is the
// unconditional (catch-all) transition; otherwise the edge matches when
// the accepted answer equals When.
type Transition struct {
	When string `yaml:"when" json:"when,omitempty"`
	To   StepID `yaml:"to" json:"to"`
}

// Step is one question node in a conversation: a prompt, the validator
// applied to the participant's reply, and the outgoing transitions.
// Prompts may reference previously collected answers as {{step_id}}.
type Step struct {
	ID          StepID       `yaml:"id" json:"id"`
	Prompt      string       `yaml:"prompt" json:"prompt"`
	Group       string       `yaml:"group" json:"group,omitempty"`
	Validator   string       `yaml:"validator" json:"validator"`
	Transitions []Transition `yaml:"transitions" json:"transitions,omitempty"`
}

// Group collects related steps; grouped answers are nested under the
// group name in the answer record.
type Group struct {
	Name             string `yaml:"name" json:"name"`
	SeparateGraphics bool   `yaml:"separate_graphics" json:"separate_graphics,omitempty"`
}

// Spec is the authored conversation definition. It is a plain data
// holder: construction performs no validation, structural soundness is
// the compiler's job, so a Spec may hold duplicate or dangling entries
// without breaking anything before Compile.
type Spec struct {
	Name   string  `yaml:"name" json:"name"`
	Entry  StepID  `yaml:"entry" json:"entry"`
	Groups []Group `yaml:"groups" json:"groups,omitempty"`
	Steps  []Step  `yaml:"steps" json:"steps"`
}

// NewSpec creates a spec from its parts as-is.
func NewSpec(name string, entry StepID, groups []Group, steps []Step) *Spec {
	return &Spec{
		Name:   name,
		Entry:  entry,
		Groups: groups,
		Steps:  steps,
	}
}
