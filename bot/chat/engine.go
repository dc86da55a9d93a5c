package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tebogen/flow"
	"tebogen/internal/lib/sl"
)

// ErrNoMatchingTransition reports an invariant violation: the compiler
// guarantees every non-terminal step carries a catch-all transition, so
// the engine must never fail to pick one. Fatal, not retried.
var ErrNoMatchingTransition = errors.New("no matching transition")

// How many times a lost compare-and-swap is retried against a freshly
// loaded session before the failure is surfaced.
const maxConflictRetries = 3

// Engine drives sessions through a compiled flow graph. It holds no
// per-session state across calls: everything it knows about a
// participant it reads from and writes back to the store.
type Engine struct {
	graph    *flow.Graph
	store    SessionStore
	log      *slog.Logger
	exporter Exporter
}

// NewEngine creates an engine for one compiled flow.
func NewEngine(graph *flow.Graph, store SessionStore, log *slog.Logger) *Engine {
	return &Engine{
		graph: graph,
		store: store,
		log:   log.With(sl.Module("chat.engine")),
	}
}

// SetExporter sets the answer-record consumer (may stay nil).
func (e *Engine) SetExporter(x Exporter) {
	e.exporter = x
}

// Graph returns the flow this engine executes.
func (e *Engine) Graph() *flow.Graph {
	return e.graph
}

// Start returns the prompt the participant should see: the entry
// question for a new session, the current question for an active one.
// Completed sessions stay completed. Two near-simultaneous starts race
// on session creation; the loser retries against the created session.
func (e *Engine) Start(ctx context.Context, participantID string) (EngineResult, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		result, err := e.start(ctx, participantID)
		if errors.Is(err, ErrConflict) {
			e.log.Debug("session write conflict, retrying",
				slog.String("participant_id", participantID),
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		return result, err
	}
	return EngineResult{}, fmt.Errorf("session for %s kept changing underneath: %w", participantID, ErrConflict)
}

func (e *Engine) start(ctx context.Context, participantID string) (EngineResult, error) {
	s, err := e.store.Load(ctx, participantID)
	switch {
	case errors.Is(err, ErrNotFound):
		return e.begin(ctx, participantID)
	case err != nil:
		return EngineResult{}, fmt.Errorf("loading session: %w", err)
	}

	if s.Status == StatusCompleted {
		return EngineResult{Kind: ResultAlreadyCompleted}, nil
	}

	node := e.graph.Nodes[s.CurrentStep]
	if node == nil {
		return EngineResult{}, fmt.Errorf("invariant violation: session %s at unknown step %q", s.ID, s.CurrentStep)
	}
	return EngineResult{
		Kind:    ResultAdvanced,
		Step:    node.ID,
		Prompt:  RenderPrompt(node.Prompt, s.Answers),
		Choices: node.Choices(),
	}, nil
}

// HandleMessage processes one inbound message from a participant. No
// session mutation is observable unless the durable write succeeded, so
// the caller may retry the identical message on a persistence error. A
// lost compare-and-swap is retried here against the reloaded session.
func (e *Engine) HandleMessage(ctx context.Context, participantID, text string) (EngineResult, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		result, err := e.handle(ctx, participantID, text)
		if errors.Is(err, ErrConflict) {
			e.log.Debug("session write conflict, retrying",
				slog.String("participant_id", participantID),
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		return result, err
	}
	return EngineResult{}, fmt.Errorf("session for %s kept changing underneath: %w", participantID, ErrConflict)
}

// Reset removes the participant's live session; archived completions
// are kept.
func (e *Engine) Reset(ctx context.Context, participantID string) error {
	if err := e.store.Delete(ctx, participantID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	e.log.Info("session reset", slog.String("participant_id", participantID))
	return nil
}

func (e *Engine) handle(ctx context.Context, participantID, text string) (EngineResult, error) {
	s, err := e.store.Load(ctx, participantID)
	switch {
	case errors.Is(err, ErrNotFound):
		// First contact: create the session and ask the entry question.
		// The message itself is not an answer, nothing prompted it.
		return e.begin(ctx, participantID)
	case err != nil:
		return EngineResult{}, fmt.Errorf("loading session: %w", err)
	}

	if s.Status == StatusCompleted {
		return EngineResult{Kind: ResultAlreadyCompleted}, nil
	}

	node := e.graph.Nodes[s.CurrentStep]
	if node == nil || node.Terminal {
		return EngineResult{}, fmt.Errorf("invariant violation: active session %s at step %q", s.ID, s.CurrentStep)
	}

	verdict := node.Validator(text)
	if !verdict.Accepted {
		// Rejection is side-effect-free: nothing is written, the session
		// stays exactly where it was.
		return EngineResult{
			Kind:    ResultValidationFailed,
			Step:    node.ID,
			Reason:  verdict.Reason,
			Choices: node.Choices(),
		}, nil
	}

	s.SetAnswer(node.ID, verdict.Value)

	next := node.Next(verdict.Value)
	if next == nil {
		e.log.Error("no transition matched an accepted answer",
			slog.String("participant_id", participantID),
			slog.String("step", string(node.ID)),
		)
		return EngineResult{}, fmt.Errorf("step %q: %w", node.ID, ErrNoMatchingTransition)
	}
	s.CurrentStep = next.ID

	if next.Terminal {
		s.Status = StatusCompleted
		if err := e.store.Archive(ctx, s); err != nil {
			if errors.Is(err, ErrConflict) {
				return EngineResult{}, err
			}
			return EngineResult{}, fmt.Errorf("persisting completed session: %w", err)
		}

		record := s.Record(e.graph)
		e.export(ctx, participantID, record)
		e.log.Info("conversation completed",
			slog.String("participant_id", participantID),
			slog.String("flow", e.graph.Name),
		)
		return EngineResult{
			Kind:   ResultCompleted,
			Step:   next.ID,
			Prompt: RenderPrompt(next.Prompt, s.Answers),
			Record: record,
		}, nil
	}

	if err := e.store.Save(ctx, s); err != nil {
		if errors.Is(err, ErrConflict) {
			return EngineResult{}, err
		}
		return EngineResult{}, fmt.Errorf("persisting session: %w", err)
	}

	return EngineResult{
		Kind:    ResultAdvanced,
		Step:    next.ID,
		Prompt:  RenderPrompt(next.Prompt, s.Answers),
		Choices: next.Choices(),
	}, nil
}

// begin creates a session at the entry step and persists it before the
// entry prompt becomes observable.
func (e *Engine) begin(ctx context.Context, participantID string) (EngineResult, error) {
	s := NewSession(participantID, e.graph.Entry.ID)

	// Degenerate flow with a terminal entry: complete on first contact.
	if e.graph.Entry.Terminal {
		s.Status = StatusCompleted
		if err := e.store.Archive(ctx, s); err != nil {
			return EngineResult{}, fmt.Errorf("persisting completed session: %w", err)
		}
		record := s.Record(e.graph)
		e.export(ctx, participantID, record)
		return EngineResult{
			Kind:   ResultCompleted,
			Step:   e.graph.Entry.ID,
			Prompt: e.graph.Entry.Prompt,
			Record: record,
		}, nil
	}

	if err := e.store.Save(ctx, s); err != nil {
		if errors.Is(err, ErrConflict) {
			return EngineResult{}, err
		}
		return EngineResult{}, fmt.Errorf("persisting new session: %w", err)
	}

	e.log.Info("session started",
		slog.String("participant_id", participantID),
		slog.String("flow", e.graph.Name),
	)
	return EngineResult{
		Kind:    ResultAdvanced,
		Step:    e.graph.Entry.ID,
		Prompt:  e.graph.Entry.Prompt,
		Choices: e.graph.Entry.Choices(),
	}, nil
}

func (e *Engine) export(ctx context.Context, participantID string, record AnswerRecord) {
	if e.exporter == nil {
		return
	}
	if err := e.exporter.ExportRecord(ctx, participantID, record); err != nil {
		e.log.Warn("answer record export failed",
			slog.String("participant_id", participantID),
			sl.Err(err),
		)
	}
}
