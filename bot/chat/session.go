package chat

import (
	"time"

	"github.com/google/uuid"

	"tebogen/flow"
)

// Status of a session's lifecycle.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// AnswerRecord is the finalized mapping of collected values for a
// completed session. Grouped answers are nested under the group name.
type AnswerRecord map[string]any

// Session is one participant's progress through a flow. Version is the
// optimistic-concurrency stamp checked and bumped by the store on every
// write.
type Session struct {
	ID            string         `bson:"_id" json:"id"`
	ParticipantID string         `bson:"participant_id" json:"participant_id"`
	CurrentStep   flow.StepID    `bson:"current_step" json:"current_step"`
	Answers       map[string]any `bson:"answers" json:"answers"`
	Order         []string       `bson:"order" json:"order"`
	Status        Status         `bson:"status" json:"status"`
	Version       int64          `bson:"version" json:"version"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// NewSession creates an active session positioned at the entry step.
// Version 0 marks a session the store has never seen.
func NewSession(participantID string, entry flow.StepID) *Session {
	return &Session{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		CurrentStep:   entry,
		Answers:       make(map[string]any),
		Order:         make([]string, 0),
		Status:        StatusActive,
		UpdatedAt:     time.Now(),
	}
}

// SetAnswer records a validated value for a step. Re-answering after a
// reset overwrites the value but keeps the step's original position in
// the collection order.
func (s *Session) SetAnswer(step flow.StepID, value any) {
	key := string(step)
	if _, seen := s.Answers[key]; !seen {
		s.Order = append(s.Order, key)
	}
	s.Answers[key] = value
}

// Answer returns the collected value for a step, if any.
func (s *Session) Answer(step flow.StepID) (any, bool) {
	v, ok := s.Answers[string(step)]
	return v, ok
}

// Clone returns a deep copy, so stored sessions cannot be mutated
// through a caller's reference.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Answers = make(map[string]any, len(s.Answers))
	for k, v := range s.Answers {
		cp.Answers[k] = v
	}
	cp.Order = append([]string(nil), s.Order...)
	return &cp
}

// Record builds the answer record in collection order. Answers whose
// step belongs to a declared group are nested under the group name.
func (s *Session) Record(graph *flow.Graph) AnswerRecord {
	record := make(AnswerRecord)
	for _, key := range s.Order {
		value := s.Answers[key]

		group := ""
		if node := graph.Nodes[flow.StepID(key)]; node != nil {
			group = node.Group
		}
		if group == "" {
			record[key] = value
			continue
		}

		nested, ok := record[group].(map[string]any)
		if !ok {
			nested = make(map[string]any)
			record[group] = nested
		}
		nested[key] = value
	}
	return record
}
