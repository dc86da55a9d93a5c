package chat

import "context"

// SessionRepository defines the database operations for sessions.
// ArchiveSession writes only the archive copy; it must be idempotent
// so the adapter can repeat it after a partial failure.
type SessionRepository interface {
	SaveSession(ctx context.Context, s *Session) error
	LoadSession(ctx context.Context, participantID string) (*Session, error)
	ArchiveSession(ctx context.Context, s *Session) error
	DeleteSession(ctx context.Context, participantID string) error
	LoadArchivedSession(ctx context.Context, participantID string) (*Session, error)
}

// MongoSessionStorage adapts the database repository to the
// SessionStore and ArchiveReader interfaces.
type MongoSessionStorage struct {
	repo SessionRepository
}

// NewMongoSessionStorage creates a new MongoDB session storage.
func NewMongoSessionStorage(repo SessionRepository) *MongoSessionStorage {
	return &MongoSessionStorage{repo: repo}
}

func (s *MongoSessionStorage) Load(ctx context.Context, participantID string) (*Session, error) {
	return s.repo.LoadSession(ctx, participantID)
}

func (s *MongoSessionStorage) Save(ctx context.Context, sess *Session) error {
	return s.repo.SaveSession(ctx, sess)
}

// Archive writes the archive copy before the live compare-and-swap, so
// a failure anywhere leaves the completion unobservable: the live
// session stays active and the caller can retry the same message. The
// archive upsert is keyed by session id and repeats harmlessly.
func (s *MongoSessionStorage) Archive(ctx context.Context, sess *Session) error {
	if err := s.repo.ArchiveSession(ctx, sess); err != nil {
		return err
	}
	return s.repo.SaveSession(ctx, sess)
}

func (s *MongoSessionStorage) Delete(ctx context.Context, participantID string) error {
	return s.repo.DeleteSession(ctx, participantID)
}

func (s *MongoSessionStorage) LoadArchived(ctx context.Context, participantID string) (*Session, error) {
	return s.repo.LoadArchivedSession(ctx, participantID)
}
