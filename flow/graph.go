package flow

import (
	"fmt"

	"tebogen/validate"
)

// Graph is the compiled, reference-resolved form of a Spec: every
// transition target points at its node and every validator is resolved
// to a registry entry, so the engine never re-checks structure at
// runtime. A Graph is immutable once produced.
type Graph struct {
	Name   string
	Entry  *Node
	Nodes  map[StepID]*Node
	Groups map[string]Group
}

// Node is one compiled step.
type Node struct {
	ID            StepID
	Prompt        string
	Group         string
	ValidatorName string
	Validator     validate.Validator
	Transitions   []Edge // normalized: conditionals in authored order, default last
	Terminal      bool

	choices []string
}

// Edge is a resolved transition. An empty When always matches.
type Edge struct {
	When string
	To   *Node
}

// Next selects the target of the first transition matching the accepted
// value, in normalized order. It returns nil only for terminal nodes:
// the compiler guarantees every non-terminal node carries a catch-all.
func (n *Node) Next(value any) *Node {
	text := ConditionValue(value)
	for _, e := range n.Transitions {
		if e.When == "" || e.When == text {
			return e.To
		}
	}
	return nil
}

// Choices returns the options a choice-validated node offers, so a
// transport can render them as buttons. Nil for other validators.
func (n *Node) Choices() []string {
	return n.choices
}

// ConditionValue renders an accepted answer for comparison against
// transition guards.
func ConditionValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
