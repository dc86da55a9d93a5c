package chat

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Load for unknown participants.
	ErrNotFound = errors.New("session not found")

	// ErrConflict is returned when a write lost the compare-and-swap on
	// the session's version stamp. The caller retries against a freshly
	// loaded session; the stale write is never applied.
	ErrConflict = errors.New("session version conflict")
)

// SessionStore persists per-participant sessions. Save and Archive
// compare the session's Version against the stored one and fail with
// ErrConflict on mismatch, so two near-simultaneous messages from the
// same participant cannot both advance from the same prior state. On
// success the store bumps session.Version.
type SessionStore interface {
	// Load returns the participant's live session or ErrNotFound.
	Load(ctx context.Context, participantID string) (*Session, error)

	// Save persists the session under its participant identifier.
	Save(ctx context.Context, s *Session) error

	// Archive durably persists a completed session and copies it to the
	// archive, where it survives a later reset of the live session.
	Archive(ctx context.Context, s *Session) error

	// Delete removes the live session so the participant starts over.
	// Archived copies are untouched.
	Delete(ctx context.Context, participantID string) error
}

// ArchiveReader exposes completed sessions to downstream consumers
// (answer export, admin API).
type ArchiveReader interface {
	LoadArchived(ctx context.Context, participantID string) (*Session, error)
}
