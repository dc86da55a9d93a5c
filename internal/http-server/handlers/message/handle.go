package message

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"tebogen/bot/chat"
	"tebogen/internal/lib/api/response"
	"tebogen/internal/lib/sl"
)

// Core defines the engine operations the message handler needs.
type Core interface {
	HandleMessage(ctx context.Context, participantID, text string) (chat.EngineResult, error)
}

type Request struct {
	ParticipantID string `json:"participant_id"`
	Text          string `json:"text"`
}

// Handle feeds an inbound message from an HTTP transport into the
// engine and returns the engine result for delivery.
func Handle(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.message"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if req.ParticipantID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("No participant_id provided"))
			return
		}

		result, err := handler.HandleMessage(r.Context(), req.ParticipantID, req.Text)
		if err != nil {
			logger.Error("handle message", sl.Err(err))
			if errors.Is(err, chat.ErrConflict) {
				// Transient by contract: the caller retries the same message.
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("Session busy, retry the message"))
				return
			}
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Message handling failed"))
			return
		}

		logger.Debug("message handled",
			slog.String("participant_id", req.ParticipantID),
			slog.String("result", string(result.Kind)),
		)
		render.JSON(w, r, response.Ok(result))
	}
}
