// file:artkv/servs/s_art/art_api/rest.go
package art_api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rskv-p/artkv/pkg/x_log"
	"github.com/rskv-p/artkv/servs/s_art/art_serv"
)

// API serves the store over HTTP and websocket.
type API struct {
	svc  *art_serv.Service
	auth *Auth
	log  zerolog.Logger
}

// New builds the API for svc using its auth settings.
func New(svc *art_serv.Service, log zerolog.Logger) *API {
	cfg := svc.Config()
	return &API{
		svc:  svc,
		auth: NewAuth(cfg.JwtSecret, cfg.TokenTTL, cfg.AuthEnabled),
		log:  log,
	}
}

// Auth returns the token issuer.
func (a *API) Auth() *Auth { return a.auth }

// Router returns every route.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(a.requestLogger)

	// Public endpoints
	r.Post("/auth/login", a.auth.HandleLogin(a.svc.DB()))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Protected API endpoints
	r.Group(func(r chi.Router) {
		r.Use(a.auth.Middleware(""))

		r.Route("/api", func(r chi.Router) {
			r.Get("/keys", handleList(a.svc.Store()))
			r.Get("/keys/*", handleGet(a.svc.Store()))
			r.Get("/stats", handleStats(a.svc.Store()))
			r.Get("/dump", handleDump(a.svc.Store()))

			r.Group(func(r chi.Router) {
				r.Use(a.auth.Middleware(art_serv.RoleAdmin))
				r.Put("/keys/*", handlePut(a.svc.Store()))
				r.Delete("/keys/*", handleDelete(a.svc.Store()))
				r.Post("/snapshot", handleSave(a.svc))
				r.Post("/restore", handleRestore(a.svc))
			})
		})

		r.Get("/ws", a.handleWS)
	})

	return r
}

// Serve listens on addr until ctx is done.
func (a *API) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Msg("REST API listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		l := a.log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		next.ServeHTTP(ww, r.WithContext(x_log.WithLogger(r.Context(), &l)))
		l.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
