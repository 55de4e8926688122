// Package web serves the tracker's HTML pages.
package web

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"

	"github.com/utakatalp/nba-tracker/internal/auth"
	"github.com/utakatalp/nba-tracker/internal/store"
)

var tracer = otel.Tracer("github.com/utakatalp/nba-tracker/internal/web")

// Server renders the tracker pages on top of a Store.
type Server struct {
	store    *store.Store
	auth     *auth.Service
	sessions *auth.Sessions
	pages    map[string]*template.Template
}

// New parses the embedded templates and returns a Server.
func New(st *store.Store, authSvc *auth.Service, sessions *auth.Sessions) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{
		store:    st,
		auth:     authSvc,
		sessions: sessions,
		pages:    pages,
	}, nil
}

// Handler returns the root handler with every route and middleware wired.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(s.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowed)
	r.Use(traceRoute)

	get := []string{http.MethodGet}
	form := []string{http.MethodGet, http.MethodPost}

	r.HandleFunc("/", s.dashboard).Methods(get...)

	r.HandleFunc("/register", s.register).Methods(form...)
	r.HandleFunc("/login", s.login).Methods(form...)
	r.Handle("/logout", s.requireSession(s.logout)).Methods(form...)

	r.HandleFunc("/teams", s.listTeams).Methods(get...)
	r.Handle("/teams/add", s.requireSession(s.addTeam)).Methods(form...)
	r.HandleFunc("/teams/{id:[0-9]+}", s.teamDetail).Methods(get...)

	r.HandleFunc("/players", s.listPlayers).Methods(get...)
	r.Handle("/players/add", s.requireSession(s.addPlayer)).Methods(form...)
	r.HandleFunc("/players/{id:[0-9]+}", s.playerDetail).Methods(get...)
	r.Handle("/players/{id:[0-9]+}/history", s.requireSession(s.playerHistory)).Methods(form...)

	r.HandleFunc("/games", s.listGames).Methods(get...)
	r.Handle("/games/add", s.requireSession(s.addGame)).Methods(form...)
	r.HandleFunc("/games/{id:[0-9]+}", s.gameDetail).Methods(get...)
	r.Handle("/games/{id:[0-9]+}/stats", s.requireSession(s.addGameStats)).Methods(form...)

	r.HandleFunc("/init-db", s.initDB).Methods(get...)
	r.HandleFunc("/seed-db", s.seedDB).Methods(get...)

	r.HandleFunc("/todos", s.todos).Methods(form...)
	r.HandleFunc("/todos/{id:[0-9]+}/delete", s.deleteTodo).Methods(http.MethodPost)

	return s.recoverPanics(logRequests(s.loadSession(r)))
}
