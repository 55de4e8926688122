package web

import (
	"fmt"
	"net/http"

	"github.com/utakatalp/nba-tracker/internal/league"
)

type gameFormPage struct {
	Form  league.GameForm
	Teams []league.Team
}

type statsFormPage struct {
	Game    league.Game
	Players []league.Player
	Form    league.StatLineForm
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.ListGames(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "games", view{Title: "Games", Data: games})
}

func (s *Server) addGame(w http.ResponseWriter, r *http.Request) {
	teams, err := s.store.ListTeams(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page := &gameFormPage{Teams: teams}
	v := view{Title: "Add game", Data: page}
	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "game_form", v)
		return
	}

	page.Form = league.GameForm{
		Date:       r.PostFormValue("date"),
		HomeTeamID: r.PostFormValue("home_team_id"),
		AwayTeamID: r.PostFormValue("away_team_id"),
		HomeScore:  r.PostFormValue("home_score"),
		AwayScore:  r.PostFormValue("away_score"),
	}
	if err := page.Form.Validate(); err != nil {
		s.invalid(w, r, "game_form", v, err)
		return
	}
	g, err := page.Form.Game()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.store.CreateGame(r.Context(), g); err != nil {
		s.invalid(w, r, "game_form", v, err)
		return
	}
	setFlash(w, flashSuccess, "Game added successfully!")
	redirect(w, r, "/games")
}

func (s *Server) gameDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	detail, err := s.store.GameDetail(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "game_detail", view{Title: detail.Game.ScoreLine(), Data: detail})
}

func (s *Server) addGameStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ctx := r.Context()
	game, err := s.store.GetGame(ctx, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	players, err := s.store.GamePlayers(ctx, game)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	page := &statsFormPage{Game: game, Players: players}
	v := view{Title: "Add statistics", Data: page}
	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "stats_form", v)
		return
	}

	page.Form = league.StatLineForm{
		PlayerID:  r.PostFormValue("player_id"),
		Points:    r.PostFormValue("points"),
		Rebounds:  r.PostFormValue("rebounds"),
		Assists:   r.PostFormValue("assists"),
		Minutes:   r.PostFormValue("minutes"),
		Steals:    r.PostFormValue("steals"),
		Blocks:    r.PostFormValue("blocks"),
		Turnovers: r.PostFormValue("turnovers"),
	}
	if err := page.Form.Validate(); err != nil {
		s.invalid(w, r, "stats_form", v, err)
		return
	}
	st, err := page.Form.Statistics(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.store.CreateStatistics(ctx, st); err != nil {
		s.fail(w, r, err)
		return
	}
	setFlash(w, flashSuccess, "Player statistics added successfully!")
	redirect(w, r, fmt.Sprintf("/games/%d", id))
}
