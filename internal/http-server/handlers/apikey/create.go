package apikey

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"tebogen/internal/lib/api/response"
	"tebogen/internal/lib/sl"
)

// Core defines the operations the api-key handler needs.
type Core interface {
	GenerateApiKey(username string) (string, error)
}

// Create issues (or returns the existing) API key for a username.
func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")
		if username == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Missing username parameter"))
			return
		}

		key, err := handler.GenerateApiKey(username)
		if err != nil {
			log.Error("generate api key", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to generate API key"))
			return
		}

		render.JSON(w, r, response.Ok(key))
	}
}
