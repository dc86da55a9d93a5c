package core

import (
	"context"
	"fmt"
	"log/slog"

	"tebogen/bot/chat"
	"tebogen/flow"
	"tebogen/internal/lib/sl"
)

// Repository defines the database operations the core needs beyond
// session storage.
type Repository interface {
	CheckApiKey(key string) (string, error)
	GenerateApiKey(username string) (string, error)
}

// Core wires the conversation engine to the HTTP surface.
type Core struct {
	log        *slog.Logger
	engine     *chat.Engine
	archive    chat.ArchiveReader
	repo       Repository
	authKey    string
	validators []string
	warnings   []flow.CompileError
}

func New(log *slog.Logger) *Core {
	return &Core{
		log: log.With(sl.Module("core")),
	}
}

func (c *Core) SetEngine(engine *chat.Engine) {
	c.engine = engine
}

func (c *Core) SetArchiveReader(archive chat.ArchiveReader) {
	c.archive = archive
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

func (c *Core) SetCompileWarnings(warnings []flow.CompileError) {
	c.warnings = warnings
}

// SetValidatorNames records the registered validator names reported in
// the flow summary.
func (c *Core) SetValidatorNames(names []string) {
	c.validators = names
}

// AuthenticateByToken resolves a bearer token to a username: the
// configured service key, or a key stored in the database.
func (c *Core) AuthenticateByToken(token string) (string, error) {
	if c.authKey != "" && token == c.authKey {
		return "service", nil
	}
	if c.repo != nil {
		username, err := c.repo.CheckApiKey(token)
		if err == nil {
			return username, nil
		}
	}
	return "", fmt.Errorf("token not recognized")
}

// GenerateApiKey issues (or returns the existing) API key for a username.
func (c *Core) GenerateApiKey(username string) (string, error) {
	if c.repo == nil {
		return "", fmt.Errorf("api keys not available without a database")
	}
	return c.repo.GenerateApiKey(username)
}

// HandleMessage feeds one inbound message into the engine.
func (c *Core) HandleMessage(ctx context.Context, participantID, text string) (chat.EngineResult, error) {
	if c.engine == nil {
		return chat.EngineResult{}, fmt.Errorf("engine not initialized")
	}
	return c.engine.HandleMessage(ctx, participantID, text)
}

// ResetSession removes a participant's live session.
func (c *Core) ResetSession(ctx context.Context, participantID string) error {
	if c.engine == nil {
		return fmt.Errorf("engine not initialized")
	}
	return c.engine.Reset(ctx, participantID)
}

// AnswerRecord returns the finalized answers of a completed session.
func (c *Core) AnswerRecord(ctx context.Context, participantID string) (chat.AnswerRecord, error) {
	if c.engine == nil || c.archive == nil {
		return nil, fmt.Errorf("engine not initialized")
	}
	s, err := c.archive.LoadArchived(ctx, participantID)
	if err != nil {
		return nil, err
	}
	return s.Record(c.engine.Graph()), nil
}
