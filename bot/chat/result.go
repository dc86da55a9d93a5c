package chat

import "tebogen/flow"

// ResultKind classifies the outcome of handling one inbound message.
type ResultKind string

const (
	// ResultAdvanced — answer accepted, session moved to the next step;
	// Prompt carries the next question.
	ResultAdvanced ResultKind = "advanced"

	// ResultValidationFailed — input rejected, session unchanged; Reason
	// carries the rejection text for re-prompting. Expected and frequent,
	// never a system fault.
	ResultValidationFailed ResultKind = "validation_failed"

	// ResultCompleted — session reached a terminal step; Record carries
	// the finalized answers.
	ResultCompleted ResultKind = "completed"

	// ResultAlreadyCompleted — the participant finished earlier; nothing
	// changed.
	ResultAlreadyCompleted ResultKind = "already_completed"
)

// EngineResult is what the transport collaborator delivers back to the
// participant.
type EngineResult struct {
	Kind    ResultKind   `json:"kind"`
	Step    flow.StepID  `json:"step,omitempty"`    // step awaiting input after handling
	Prompt  string       `json:"prompt,omitempty"`  // next question or completion text
	Reason  string       `json:"reason,omitempty"`  // rejection reason
	Choices []string     `json:"choices,omitempty"` // options for choice steps
	Record  AnswerRecord `json:"record,omitempty"`
}
