package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"tebogen/internal/lib/api/response"
	"tebogen/internal/lib/sl"
)

// Core defines the operations the session handler needs.
type Core interface {
	ResetSession(ctx context.Context, participantID string) error
}

// Reset removes a participant's live session so the conversation starts
// over on their next message. Archived completions are kept.
func Reset(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantID := r.URL.Query().Get("participant_id")
		if participantID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Missing participant_id parameter"))
			return
		}

		if err := handler.ResetSession(r.Context(), participantID); err != nil {
			log.Error("reset session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Reset failed: "+err.Error()))
			return
		}

		render.JSON(w, r, response.Ok("Session reset successfully"))
	}
}
