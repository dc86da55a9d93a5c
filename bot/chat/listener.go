package chat

import "context"

// Exporter receives the answer record of a completed session. Delivery
// to storage, webhook or file is the collaborator's responsibility;
// export failures are logged and never undo a completion.
type Exporter interface {
	ExportRecord(ctx context.Context, participantID string, record AnswerRecord) error
}
