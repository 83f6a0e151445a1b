// Package server assembles the tableau HTTP API into a runnable server: it
// owns persistence connection setup and the chi route table, and leaves
// request handling itself to package api.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kestrel-labs/tableau/internal/engine"
	"github.com/kestrel-labs/tableau/server/api"
	"github.com/kestrel-labs/tableau/server/dao"
	"github.com/kestrel-labs/tableau/server/middle"
	"github.com/kestrel-labs/tableau/server/tunas"
)

// Server holds the running state of a tableau HTTP server: the persistence
// connection, the service layer built on top of it, and the chi router that
// dispatches to package api's handlers.
type Server struct {
	Router chi.Router

	db  dao.Store
	api api.API
}

// New connects to the database described by cfg, builds the service layer
// and route table, and returns a Server ready to accept connections via
// ServeForever. The caller is responsible for eventually calling Close.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}

	backend := tunas.Service{
		DB: db,
		Engine: engine.Config{
			MaxConstants:  cfg.Engine.MaxConstants,
			MaxIterations: cfg.Engine.MaxIterations,
		},
	}

	srv := &Server{
		db: db,
		api: api.API{
			Backend:     backend,
			UnauthDelay: cfg.UnauthDelay(),
			Secret:      cfg.TokenSecret,
		},
	}

	srv.Router = srv.routes()

	return srv, nil
}

func (srv *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	required := middle.RequireAuth(srv.db.Users(), srv.api.Secret, srv.api.UnauthDelay, dao.User{})
	optional := middle.OptionalAuth(srv.db.Users(), srv.api.Secret, srv.api.UnauthDelay, dao.User{})

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.With(optional).Get("/info", srv.api.HTTPGetInfo())

		r.Post("/login", srv.api.HTTPCreateLogin())
		r.With(required).Delete("/login/{id}", srv.api.HTTPDeleteLogin())

		r.With(required).Post("/token", srv.api.HTTPCreateToken())

		r.With(required).Get("/users", srv.api.HTTPGetAllUsers())
		r.With(required).Post("/users", srv.api.HTTPCreateUser())
		r.With(required).Get("/users/{id}", srv.api.HTTPGetUser())
		r.With(required).Patch("/users/{id}", srv.api.HTTPUpdateUser())
		r.With(required).Put("/users/{id}", srv.api.HTTPReplaceUser())
		r.With(required).Delete("/users/{id}", srv.api.HTTPDeleteUser())

		r.With(required).Post("/classify", srv.api.HTTPClassify())
		r.With(required).Post("/decide", srv.api.HTTPDecide())

		r.With(required).Get("/submissions", srv.api.HTTPGetOwnSubmissions())
		r.With(required).Get("/submissions/{id}", srv.api.HTTPGetSubmission())
		r.With(required).Delete("/submissions/{id}", srv.api.HTTPDeleteSubmission())
	})

	return r
}

// CreateUser is a convenience wrapper for seeding an initial user (such as an
// admin account) directly, bypassing the HTTP layer.
func (srv *Server) CreateUser(ctx context.Context, username, password, email string, role dao.Role) (dao.User, error) {
	return srv.api.Backend.CreateUser(ctx, username, password, email, role)
}

// ServeForever starts listening on addr:port and blocks until the server
// exits or an error occurs.
func (srv *Server) ServeForever(addr string, port int) error {
	bind := fmt.Sprintf("%s:%d", addr, port)
	return http.ListenAndServe(bind, srv.Router)
}

// Close releases the server's persistence connection.
func (srv *Server) Close() error {
	return srv.db.Close()
}
