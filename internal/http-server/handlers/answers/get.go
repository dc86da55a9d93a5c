package answers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"tebogen/bot/chat"
	"tebogen/internal/lib/api/response"
	"tebogen/internal/lib/sl"
)

// Core defines the operations the answers handler needs.
type Core interface {
	AnswerRecord(ctx context.Context, participantID string) (chat.AnswerRecord, error)
}

// Get exports the answer record of a completed conversation.
func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantID := r.URL.Query().Get("participant_id")
		if participantID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Missing participant_id parameter"))
			return
		}

		record, err := handler.AnswerRecord(r.Context(), participantID)
		if err != nil {
			if errors.Is(err, chat.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("No completed conversation for participant"))
				return
			}
			log.Error("answer record", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to load answer record"))
			return
		}

		render.JSON(w, r, response.Ok(record))
	}
}
