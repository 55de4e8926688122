package web

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/utakatalp/nba-tracker/internal/apperrors"
)

const (
	flashSuccess = "success"
	flashInfo    = "info"
)

// pathID reads the numeric {id} route variable.
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NotFound("route", raw)
	}
	return id, nil
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := s.store.DashboardSummary(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "dashboard", view{Title: "Dashboard", Data: sum})
}

func (s *Server) initDB(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Migrate(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	setFlash(w, flashSuccess, "Database initialized successfully!")
	redirect(w, r, "/")
}

func (s *Server) seedDB(w http.ResponseWriter, r *http.Request) {
	seeded, err := s.store.Seed(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if seeded {
		setFlash(w, flashSuccess, "Sample data added successfully!")
	} else {
		setFlash(w, flashInfo, "The database already contains data.")
	}
	redirect(w, r, "/")
}
