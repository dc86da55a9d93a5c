package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tebogen/bot/chat"
)

// SaveSession persists a session keyed by participant_id with a
// compare-and-swap on the version stamp. A write against a stale
// version fails with chat.ErrConflict and changes nothing.
func (m *MongoDB) SaveSession(ctx context.Context, s *chat.Session) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	stored := s.Clone()
	stored.Version = s.Version + 1
	stored.UpdatedAt = time.Now()

	if s.Version == 0 {
		_, err = collection.InsertOne(ctx, stored)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return chat.ErrConflict
			}
			return fmt.Errorf("mongodb insert error: %w", err)
		}
	} else {
		filter := bson.D{{Key: "participant_id", Value: s.ParticipantID}, {Key: "version", Value: s.Version}}
		res, err := collection.ReplaceOne(ctx, filter, stored)
		if err != nil {
			return fmt.Errorf("mongodb replace error: %w", err)
		}
		if res.MatchedCount == 0 {
			return chat.ErrConflict
		}
	}

	s.Version = stored.Version
	s.UpdatedAt = stored.UpdatedAt
	return nil
}

// LoadSession retrieves a participant's live session.
func (m *MongoDB) LoadSession(ctx context.Context, participantID string) (*chat.Session, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)
	filter := bson.D{{Key: "participant_id", Value: participantID}}

	var s chat.Session
	err = collection.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, chat.ErrNotFound
		}
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}

	return &s, nil
}

// ArchiveSession upserts a session into the archive collection, where
// it survives a later reset. Keyed by session id, so repeating the
// write after a partial failure is harmless.
func (m *MongoDB) ArchiveSession(ctx context.Context, s *chat.Session) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(archivedCollection)

	filter := bson.D{{Key: "_id", Value: s.ID}}
	opts := options.Replace().SetUpsert(true)

	_, err = collection.ReplaceOne(ctx, filter, s, opts)
	if err != nil {
		return fmt.Errorf("mongodb archive error: %w", err)
	}
	return nil
}

// DeleteSession removes a participant's live session.
func (m *MongoDB) DeleteSession(ctx context.Context, participantID string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)
	filter := bson.D{{Key: "participant_id", Value: participantID}}

	_, err = collection.DeleteOne(ctx, filter)
	return err
}

// LoadArchivedSession retrieves a participant's most recent completed
// session from the archive.
func (m *MongoDB) LoadArchivedSession(ctx context.Context, participantID string) (*chat.Session, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(archivedCollection)
	filter := bson.D{{Key: "participant_id", Value: participantID}}
	opts := options.FindOne().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	var s chat.Session
	err = collection.FindOne(ctx, filter, opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, chat.ErrNotFound
		}
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}

	return &s, nil
}
