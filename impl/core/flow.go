package core

import (
	"fmt"
	"sort"

	"tebogen/flow"
)

// FlowSummary describes the compiled flow for the admin API.
type FlowSummary struct {
	Name       string              `json:"name"`
	Entry      flow.StepID         `json:"entry"`
	Steps      []StepSummary       `json:"steps"`
	Validators []string            `json:"validators,omitempty"`
	Warnings   []flow.CompileError `json:"warnings,omitempty"`
}

type StepSummary struct {
	ID          flow.StepID         `json:"id"`
	Prompt      string              `json:"prompt"`
	Group       string              `json:"group,omitempty"`
	Validator   string              `json:"validator,omitempty"`
	Terminal    bool                `json:"terminal,omitempty"`
	Transitions []TransitionSummary `json:"transitions,omitempty"`
}

type TransitionSummary struct {
	When string      `json:"when,omitempty"`
	To   flow.StepID `json:"to"`
}

// FlowSummary reports the compiled flow with the entry first and the
// remaining steps in identifier order.
func (c *Core) FlowSummary() (FlowSummary, error) {
	if c.engine == nil {
		return FlowSummary{}, fmt.Errorf("engine not initialized")
	}
	g := c.engine.Graph()

	summary := FlowSummary{
		Name:       g.Name,
		Entry:      g.Entry.ID,
		Validators: c.validators,
		Warnings:   c.warnings,
	}
	for _, node := range g.Nodes {
		step := StepSummary{
			ID:        node.ID,
			Prompt:    node.Prompt,
			Group:     node.Group,
			Validator: node.ValidatorName,
			Terminal:  node.Terminal,
		}
		for _, e := range node.Transitions {
			step.Transitions = append(step.Transitions, TransitionSummary{When: e.When, To: e.To.ID})
		}
		summary.Steps = append(summary.Steps, step)
	}
	sort.Slice(summary.Steps, func(i, j int) bool {
		if summary.Steps[i].ID == summary.Entry {
			return true
		}
		if summary.Steps[j].ID == summary.Entry {
			return false
		}
		return summary.Steps[i].ID < summary.Steps[j].ID
	})

	return summary, nil
}
