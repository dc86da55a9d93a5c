package flowinfo

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"tebogen/impl/core"
	"tebogen/internal/lib/api/response"
	"tebogen/internal/lib/sl"
)

// Core defines the operations the flow-info handler needs.
type Core interface {
	FlowSummary() (core.FlowSummary, error)
}

// Get reports the compiled flow graph: steps, transitions, terminals
// and any compile warnings.
func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := handler.FlowSummary()
		if err != nil {
			log.Error("flow summary", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("Flow not available"))
			return
		}
		render.JSON(w, r, response.Ok(summary))
	}
}
