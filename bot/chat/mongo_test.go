package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tebogen/flow"
)

// fakeSessionRepo mimics the database repository: version-checked saves
// keyed by participant, id-keyed archive upserts, injectable failures.
type fakeSessionRepo struct {
	sessions    map[string]*Session
	archived    map[string]*Session
	saveErr     error
	archiveErr  error
	archiveCall int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[string]*Session),
		archived: make(map[string]*Session),
	}
}

func (f *fakeSessionRepo) SaveSession(ctx context.Context, s *Session) error {
	if f.saveErr != nil {
		err := f.saveErr
		f.saveErr = nil
		return err
	}
	stored, exists := f.sessions[s.ParticipantID]
	if exists && stored.Version != s.Version {
		return ErrConflict
	}
	if !exists && s.Version != 0 {
		return ErrConflict
	}
	s.Version++
	s.UpdatedAt = time.Now()
	f.sessions[s.ParticipantID] = s.Clone()
	return nil
}

func (f *fakeSessionRepo) LoadSession(ctx context.Context, participantID string) (*Session, error) {
	s, ok := f.sessions[participantID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (f *fakeSessionRepo) ArchiveSession(ctx context.Context, s *Session) error {
	f.archiveCall++
	if f.archiveErr != nil {
		err := f.archiveErr
		f.archiveErr = nil
		return err
	}
	f.archived[s.ID] = s.Clone()
	return nil
}

func (f *fakeSessionRepo) DeleteSession(ctx context.Context, participantID string) error {
	delete(f.sessions, participantID)
	return nil
}

func (f *fakeSessionRepo) LoadArchivedSession(ctx context.Context, participantID string) (*Session, error) {
	for _, s := range f.archived {
		if s.ParticipantID == participantID {
			return s.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

// A failed archive write must leave the completion unobservable: the
// live session stays active so retrying the same message completes the
// conversation and fires the exporter.
func TestMongoStorageCompletionRetriesAfterArchiveFailure(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessionRepo()
	store := NewMongoSessionStorage(repo)
	engine := NewEngine(compileFlow(t, surveySpec()), store, testLogger())
	exporter := &recordingExporter{}
	engine.SetExporter(exporter)

	_, err := engine.Start(ctx, "42")
	require.NoError(t, err)
	_, err = engine.HandleMessage(ctx, "42", "Alice")
	require.NoError(t, err)

	repo.archiveErr = errors.New("archive collection unavailable")
	_, err = engine.HandleMessage(ctx, "42", "30")
	require.Error(t, err)

	// Nothing committed: no archived record, live session still active.
	_, err = store.LoadArchived(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)
	live, err := store.Load(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, live.Status)
	assert.Equal(t, flow.StepID("age"), live.CurrentStep)
	assert.Zero(t, exporter.calls)

	// Retrying the identical message completes normally.
	res, err := engine.HandleMessage(ctx, "42", "30")
	require.NoError(t, err)
	assert.Equal(t, ResultCompleted, res.Kind)
	assert.Equal(t, 1, exporter.calls)

	archived, err := store.LoadArchived(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, archived.Status)
}

// The same contract when the live compare-and-swap fails after the
// archive copy was written: the duplicate upsert on retry is harmless.
func TestMongoStorageCompletionRetriesAfterSaveFailure(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessionRepo()
	store := NewMongoSessionStorage(repo)
	engine := NewEngine(compileFlow(t, surveySpec()), store, testLogger())
	exporter := &recordingExporter{}
	engine.SetExporter(exporter)

	_, err := engine.Start(ctx, "42")
	require.NoError(t, err)
	_, err = engine.HandleMessage(ctx, "42", "Alice")
	require.NoError(t, err)

	repo.saveErr = errors.New("primary stepped down")
	_, err = engine.HandleMessage(ctx, "42", "30")
	require.Error(t, err)

	live, err := store.Load(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, live.Status)
	assert.Zero(t, exporter.calls)

	res, err := engine.HandleMessage(ctx, "42", "30")
	require.NoError(t, err)
	assert.Equal(t, ResultCompleted, res.Kind)
	assert.Equal(t, 1, exporter.calls)
	assert.Equal(t, 2, repo.archiveCall, "archive upsert repeats on retry")
}

func TestMongoStorageArchiveWritesArchiveCopyFirst(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessionRepo()
	store := NewMongoSessionStorage(repo)

	s := NewSession("7", "done")
	s.Status = StatusCompleted

	repo.saveErr = errors.New("primary stepped down")
	require.Error(t, store.Archive(ctx, s))
	assert.Equal(t, 1, repo.archiveCall, "archive copy precedes the live write")
}
