package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"tebogen/bot/chat"
	"tebogen/internal/lib/sl"
)

// FileExporter appends completed answer records to a JSON-lines file,
// one record per line.
type FileExporter struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
}

type exportLine struct {
	ParticipantID string            `json:"participant_id"`
	ExportedAt    time.Time         `json:"exported_at"`
	Record        chat.AnswerRecord `json:"record"`
}

func NewFileExporter(path string, log *slog.Logger) *FileExporter {
	return &FileExporter{
		path: path,
		log:  log.With(sl.Module("export.file")),
	}
}

func (e *FileExporter) ExportRecord(ctx context.Context, participantID string, record chat.AnswerRecord) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	file, err := os.OpenFile(e.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening export file: %w", err)
	}
	defer file.Close()

	line, err := json.Marshal(exportLine{
		ParticipantID: participantID,
		ExportedAt:    time.Now(),
		Record:        record,
	})
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}

	e.log.Debug("answer record exported", slog.String("participant_id", participantID))
	return nil
}
