package league

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/utakatalp/nba-tracker/internal/apperrors"
)

// Messages shown next to a rejected form.
const (
	MsgFillAllFields    = "Please fill in all fields."
	MsgNameAndPosition  = "Please enter a name and a position."
	MsgTeamAndStart     = "Please choose a team and a start date."
	MsgRequiredStats    = "Please fill in all required fields."
	MsgDistinctTeams    = "Home and away team must be different."
	MsgUsernamePassword = "Please enter a username and a password."
	MsgTodoTextRequired = "Please enter a to-do."
)

// present reports whether every value is a non-empty string once trimmed.
func present(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	return id, nil
}

// parseCount parses an integer form field where an empty value means 0.
func parseCount(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	return n, nil
}

// TeamForm is the raw add-team submission.
type TeamForm struct {
	Name       string
	City       string
	Conference string
}

// Validate checks presence of every field.
func (f TeamForm) Validate() error {
	if !present(f.Name, f.City, f.Conference) {
		return apperrors.Validation(MsgFillAllFields)
	}
	return nil
}

// Team converts a validated form.
func (f TeamForm) Team() Team {
	return Team{
		Name:       strings.TrimSpace(f.Name),
		City:       strings.TrimSpace(f.City),
		Conference: Conference(f.Conference),
	}
}

// PlayerForm is the raw add-player submission. BirthDate and CurrentTeamID
// are optional.
type PlayerForm struct {
	Name          string
	Position      string
	BirthDate     string
	CurrentTeamID string
}

// Validate checks presence of name and position.
func (f PlayerForm) Validate() error {
	if !present(f.Name, f.Position) {
		return apperrors.Validation(MsgNameAndPosition)
	}
	return nil
}

// Player converts a validated form.
func (f PlayerForm) Player() (Player, error) {
	birth, err := ParseNullDate(f.BirthDate)
	if err != nil {
		return Player{}, err
	}
	p := Player{
		Name:      strings.TrimSpace(f.Name),
		Position:  f.Position,
		BirthDate: birth,
	}
	if strings.TrimSpace(f.CurrentTeamID) != "" {
		id, err := parseID("current_team_id", f.CurrentTeamID)
		if err != nil {
			return Player{}, err
		}
		p.CurrentTeamID = &id
	}
	return p, nil
}

// GameForm is the raw add-game submission.
type GameForm struct {
	Date       string
	HomeTeamID string
	AwayTeamID string
	HomeScore  string
	AwayScore  string
}

// Validate checks presence of every field and that the teams differ.
func (f GameForm) Validate() error {
	if !present(f.Date, f.HomeTeamID, f.AwayTeamID, f.HomeScore, f.AwayScore) {
		return apperrors.Validation(MsgFillAllFields)
	}
	if strings.TrimSpace(f.HomeTeamID) == strings.TrimSpace(f.AwayTeamID) {
		return apperrors.Validation(MsgDistinctTeams)
	}
	return nil
}

// Game converts a validated form.
func (f GameForm) Game() (Game, error) {
	date, err := ParseDate(f.Date)
	if err != nil {
		return Game{}, err
	}
	home, err := parseID("home_team_id", f.HomeTeamID)
	if err != nil {
		return Game{}, err
	}
	away, err := parseID("away_team_id", f.AwayTeamID)
	if err != nil {
		return Game{}, err
	}
	homeScore, err := parseCount("home_score", f.HomeScore)
	if err != nil {
		return Game{}, err
	}
	awayScore, err := parseCount("away_score", f.AwayScore)
	if err != nil {
		return Game{}, err
	}
	return Game{
		Date:       date,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
	}, nil
}

// Validate enforces the distinct-teams invariant on a typed game.
func (g Game) Validate() error {
	if g.HomeTeamID == g.AwayTeamID {
		return apperrors.Validation(MsgDistinctTeams)
	}
	return nil
}

// StatLineForm is the raw add-statistics submission. Only player and points
// are required; every other count defaults to 0.
type StatLineForm struct {
	PlayerID  string
	Points    string
	Rebounds  string
	Assists   string
	Minutes   string
	Steals    string
	Blocks    string
	Turnovers string
}

// Validate checks presence of player and points.
func (f StatLineForm) Validate() error {
	if !present(f.PlayerID, f.Points) {
		return apperrors.Validation(MsgRequiredStats)
	}
	return nil
}

// Statistics converts a validated form for the given game.
func (f StatLineForm) Statistics(gameID int64) (PlayerStatistics, error) {
	playerID, err := parseID("player_id", f.PlayerID)
	if err != nil {
		return PlayerStatistics{}, err
	}
	s := PlayerStatistics{PlayerID: playerID, GameID: gameID}
	counts := []struct {
		field string
		raw   string
		dst   *int
	}{
		{"points", f.Points, &s.Points},
		{"rebounds", f.Rebounds, &s.Rebounds},
		{"assists", f.Assists, &s.Assists},
		{"minutes", f.Minutes, &s.MinutesPlayed},
		{"steals", f.Steals, &s.Steals},
		{"blocks", f.Blocks, &s.Blocks},
		{"turnovers", f.Turnovers, &s.Turnovers},
	}
	for _, c := range counts {
		n, err := parseCount(c.field, c.raw)
		if err != nil {
			return PlayerStatistics{}, err
		}
		*c.dst = n
	}
	return s, nil
}

// TeamHistoryForm is the raw add-tenure submission. EndDate is optional.
type TeamHistoryForm struct {
	TeamID    string
	StartDate string
	EndDate   string
}

// Validate checks presence of team and start date.
func (f TeamHistoryForm) Validate() error {
	if !present(f.TeamID, f.StartDate) {
		return apperrors.Validation(MsgTeamAndStart)
	}
	return nil
}

// TeamHistory converts a validated form for the given player.
func (f TeamHistoryForm) TeamHistory(playerID int64) (TeamHistory, error) {
	teamID, err := parseID("team_id", f.TeamID)
	if err != nil {
		return TeamHistory{}, err
	}
	start, err := ParseDate(f.StartDate)
	if err != nil {
		return TeamHistory{}, err
	}
	end, err := ParseNullDate(f.EndDate)
	if err != nil {
		return TeamHistory{}, err
	}
	return TeamHistory{
		PlayerID:  playerID,
		TeamID:    teamID,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// CredentialsForm is the raw login or registration submission.
type CredentialsForm struct {
	Username string
	Password string
}

// Validate checks presence of both fields.
func (f CredentialsForm) Validate() error {
	if strings.TrimSpace(f.Username) == "" || f.Password == "" {
		return apperrors.Validation(MsgUsernamePassword)
	}
	return nil
}

// TodoForm is the raw add-todo submission.
type TodoForm struct {
	Text string
}

// Validate checks the trimmed text is not empty.
func (f TodoForm) Validate() error {
	if !present(f.Text) {
		return apperrors.Validation(MsgTodoTextRequired)
	}
	return nil
}
