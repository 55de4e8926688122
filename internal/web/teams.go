package web

import (
	"net/http"

	"github.com/utakatalp/nba-tracker/internal/league"
)

type teamsPage struct {
	Teams     []league.Team
	Records   map[int64]*league.StandingsEntry
	Standings []*league.StandingsEntry
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.store.ListTeams(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	games, err := s.store.ListGames(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	standings := league.CalculateStandings(teams, games)
	records := make(map[int64]*league.StandingsEntry, len(standings))
	for _, e := range standings {
		records[e.Team.ID] = e
	}
	s.render(w, r, http.StatusOK, "teams", view{
		Title: "Teams",
		Data:  teamsPage{Teams: teams, Records: records, Standings: standings},
	})
}

func (s *Server) addTeam(w http.ResponseWriter, r *http.Request) {
	v := view{Title: "Add team", Data: league.TeamForm{}}
	if r.Method == http.MethodGet {
		s.render(w, r, http.StatusOK, "team_form", v)
		return
	}

	form := league.TeamForm{
		Name:       r.PostFormValue("name"),
		City:       r.PostFormValue("city"),
		Conference: r.PostFormValue("conference"),
	}
	v.Data = form
	if err := form.Validate(); err != nil {
		s.invalid(w, r, "team_form", v, err)
		return
	}
	if _, err := s.store.CreateTeam(r.Context(), form.Team()); err != nil {
		s.fail(w, r, err)
		return
	}
	setFlash(w, flashSuccess, "Team added successfully!")
	redirect(w, r, "/teams")
}

func (s *Server) teamDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	roster, err := s.store.TeamRoster(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "team_detail", view{Title: roster.Team.FullName(), Data: roster})
}
