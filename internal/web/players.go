package web

import (
	"fmt"
	"net/http"

	"github.com/utakatalp/nba-tracker/internal/league"
)

// positions offered by the add-player form.
var positions = []string{"PG", "SG", "SF", "PF", "C"}

type playerFormPage struct {
	Form      league.PlayerForm
	Teams     []league.Team
	Positions []string
}

type historyPage struct {
	Player  league.Player
	Teams   []league.Team
	History []league.Tenure
	Form    league.TeamHistoryForm
}

func (s *Server) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.store.ListPlayers(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "players", view{Title: "Players", Data: players})
}

func (s *Server) addPlayer(w http.ResponseWriter, r *http.Request) {
	teams, err := s.store.ListTeams(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page := &playerFormPage{Teams: teams, Positions: positions}
	v := view{Title: "Add player", Data: page}
	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "player_form", v)
		return
	}

	page.Form = league.PlayerForm{
		Name:          r.PostFormValue("name"),
		Position:      r.PostFormValue("position"),
		BirthDate:     r.PostFormValue("birth_date"),
		CurrentTeamID: r.PostFormValue("current_team_id"),
	}
	if err := page.Form.Validate(); err != nil {
		s.invalid(w, r, "player_form", v, err)
		return
	}
	p, err := page.Form.Player()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.store.CreatePlayer(r.Context(), p); err != nil {
		s.fail(w, r, err)
		return
	}
	setFlash(w, flashSuccess, "Player added successfully!")
	redirect(w, r, "/players")
}

func (s *Server) playerDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	detail, err := s.store.PlayerDetail(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "player_detail", view{Title: detail.Player.Name, Data: detail})
}

func (s *Server) playerHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ctx := r.Context()
	player, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	teams, err := s.store.ListTeams(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	history, err := s.store.TeamHistory(ctx, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	page := &historyPage{Player: player, Teams: teams, History: history}
	v := view{Title: "Team history of " + player.Name, Data: page}
	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "history_form", v)
		return
	}

	page.Form = league.TeamHistoryForm{
		TeamID:    r.PostFormValue("team_id"),
		StartDate: r.PostFormValue("start_date"),
		EndDate:   r.PostFormValue("end_date"),
	}
	if err := page.Form.Validate(); err != nil {
		s.invalid(w, r, "history_form", v, err)
		return
	}
	h, err := page.Form.TeamHistory(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.store.AddTeamHistory(ctx, h); err != nil {
		s.fail(w, r, err)
		return
	}
	setFlash(w, flashSuccess, "Team history added successfully!")
	redirect(w, r, fmt.Sprintf("/players/%d", id))
}
