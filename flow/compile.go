package flow

import (
	"fmt"

	"tebogen/validate"
)

// Compile validates a spec for structural soundness and lowers it into
// an executable Graph. It is a pure function: identical input yields an
// identical graph or an identical ordered list of diagnostics, and it
// performs no I/O.
//
// All defects are collected in one pass rather than aborting on the
// first. The graph is nil whenever a hard error is present; warnings
// (unreachable steps) are returned alongside a usable graph.
func Compile(spec *Spec, reg *validate.Registry) (*Graph, []CompileError) {
	var diags []CompileError

	// Identifier soundness and uniqueness.
	seen := make(map[StepID]bool, len(spec.Steps))
	for _, step := range spec.Steps {
		if !validate.IsValidName(string(step.ID)) {
			diags = append(diags, CompileError{
				Code:   ErrInvalidIdentifier,
				Step:   step.ID,
				Detail: fmt.Sprintf("step id %q is not a valid snake_case identifier", step.ID),
			})
			continue
		}
		if seen[step.ID] {
			diags = append(diags, CompileError{
				Code:   ErrDuplicateIdentifier,
				Step:   step.ID,
				Detail: fmt.Sprintf("step id %q is declared more than once", step.ID),
			})
			continue
		}
		seen[step.ID] = true
	}

	groups := make(map[string]Group, len(spec.Groups))
	for _, g := range spec.Groups {
		if !validate.IsValidName(g.Name) {
			diags = append(diags, CompileError{
				Code:   ErrInvalidIdentifier,
				Detail: fmt.Sprintf("group name %q is not a valid snake_case identifier", g.Name),
			})
			continue
		}
		if _, dup := groups[g.Name]; dup {
			diags = append(diags, CompileError{
				Code:   ErrDuplicateIdentifier,
				Detail: fmt.Sprintf("group %q is declared more than once", g.Name),
			})
			continue
		}
		groups[g.Name] = g
	}

	// Reference resolution: transition targets, validators, groups.
	// Everything unresolved is reported, nothing aborts early.
	for _, step := range spec.Steps {
		if len(step.Transitions) > 0 {
			if _, err := reg.Resolve(step.Validator); err != nil {
				diags = append(diags, CompileError{
					Code:   ErrUnknownValidator,
					Step:   step.ID,
					Detail: fmt.Sprintf("validator %q is not registered", step.Validator),
				})
			}
		}
		if step.Group != "" {
			if _, ok := groups[step.Group]; !ok {
				diags = append(diags, CompileError{
					Code:   ErrUnknownGroup,
					Step:   step.ID,
					Detail: fmt.Sprintf("group %q is not declared", step.Group),
				})
			}
		}

		defaults := 0
		for _, tr := range step.Transitions {
			if !seen[tr.To] {
				diags = append(diags, CompileError{
					Code:   ErrDanglingTarget,
					Step:   step.ID,
					Detail: fmt.Sprintf("transition target %q does not exist", tr.To),
				})
			}
			if tr.When == "" {
				defaults++
			}
		}
		switch {
		case defaults > 1:
			diags = append(diags, CompileError{
				Code:   ErrMultipleDefaults,
				Step:   step.ID,
				Detail: "a step may carry at most one unconditional transition",
			})
		case defaults == 0 && len(step.Transitions) > 0:
			// Without a catch-all a non-matching answer would strand the
			// session at runtime; that state must stay unreachable.
			diags = append(diags, CompileError{
				Code:   ErrMissingDefault,
				Step:   step.ID,
				Detail: "conditional transitions require an unconditional catch-all",
			})
		}
	}

	if !seen[spec.Entry] {
		diags = append(diags, CompileError{
			Code:   ErrUnknownEntry,
			Detail: fmt.Sprintf("entry step %q does not exist", spec.Entry),
		})
	}

	// Terminal detection: steps with no outgoing transitions end the
	// conversation. A spec that can never terminate is a design error.
	terminals := 0
	for _, step := range spec.Steps {
		if len(step.Transitions) == 0 {
			terminals++
		}
	}
	if terminals == 0 {
		diags = append(diags, CompileError{
			Code:   ErrNoTerminalStep,
			Detail: "spec has no terminal step, the conversation can never complete",
		})
	}

	// Reachability from the entry step, breadth-first. Only meaningful
	// once references resolve; warnings keep authored order.
	if !HasErrors(diags) {
		reachable := reachableFrom(spec)
		for _, step := range spec.Steps {
			if !reachable[step.ID] {
				diags = append(diags, CompileError{
					Code:    WarnUnreachableStep,
					Step:    step.ID,
					Detail:  fmt.Sprintf("step %q is not reachable from entry %q", step.ID, spec.Entry),
					Warning: true,
				})
			}
		}
	}

	if HasErrors(diags) {
		return nil, diags
	}

	return lower(spec, reg, groups), diags
}

func reachableFrom(spec *Spec) map[StepID]bool {
	steps := make(map[StepID][]Transition, len(spec.Steps))
	for _, step := range spec.Steps {
		steps[step.ID] = step.Transitions
	}

	reachable := map[StepID]bool{spec.Entry: true}
	queue := []StepID{spec.Entry}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, tr := range steps[id] {
			if !reachable[tr.To] {
				reachable[tr.To] = true
				queue = append(queue, tr.To)
			}
		}
	}
	return reachable
}

// lower builds the resolved graph from a structurally sound spec.
func lower(spec *Spec, reg *validate.Registry, groups map[string]Group) *Graph {
	g := &Graph{
		Name:   spec.Name,
		Nodes:  make(map[StepID]*Node, len(spec.Steps)),
		Groups: groups,
	}

	for _, step := range spec.Steps {
		node := &Node{
			ID:            step.ID,
			Prompt:        step.Prompt,
			Group:         step.Group,
			ValidatorName: step.Validator,
			Terminal:      len(step.Transitions) == 0,
		}
		if !node.Terminal {
			node.Validator, _ = reg.Resolve(step.Validator)
			if def, ok := reg.Definition(step.Validator); ok {
				node.choices = def.Options
			}
		}
		g.Nodes[step.ID] = node
	}

	// Transition normalization: conditionals keep authored order, the
	// unconditional edge moves last so first-match selection is
	// deterministic.
	for _, step := range spec.Steps {
		node := g.Nodes[step.ID]
		var def *Edge
		for _, tr := range step.Transitions {
			edge := Edge{When: tr.When, To: g.Nodes[tr.To]}
			if tr.When == "" {
				def = &edge
				continue
			}
			node.Transitions = append(node.Transitions, edge)
		}
		if def != nil {
			node.Transitions = append(node.Transitions, *def)
		}
	}

	g.Entry = g.Nodes[spec.Entry]
	return g
}
