package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"tebogen/internal/config"
	"tebogen/internal/http-server/handlers/answers"
	"tebogen/internal/http-server/handlers/apikey"
	"tebogen/internal/http-server/handlers/errors"
	"tebogen/internal/http-server/handlers/flowinfo"
	"tebogen/internal/http-server/handlers/message"
	"tebogen/internal/http-server/handlers/session"
	"tebogen/internal/http-server/middleware/authenticate"
	"tebogen/internal/lib/sl"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	message.Core
	flowinfo.Core
	answers.Core
	session.Core
	apikey.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.Timeout(5 * time.Second))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))
	router.Use(authenticate.New(log, handler))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/message", func(r chi.Router) {
			r.Post("/", message.Handle(log, handler))
		})
		v1.Route("/flow", func(r chi.Router) {
			r.Get("/", flowinfo.Get(log, handler))
		})
		v1.Route("/answers", func(r chi.Router) {
			r.Get("/", answers.Get(log, handler))
		})
		v1.Route("/session", func(r chi.Router) {
			r.Post("/reset", session.Reset(log, handler))
		})
		v1.Route("/apikey", func(r chi.Router) {
			r.Post("/", apikey.Create(log, handler))
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
