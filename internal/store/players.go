package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/utakatalp/nba-tracker/internal/apperrors"
	"github.com/utakatalp/nba-tracker/internal/league"
)

const playerWithTeamSelect = `
    SELECT p.id, p.name, p.position, p.birth_date, p.current_team_id,
           t.id, t.name, t.city, t.conference
    FROM players p
    LEFT JOIN teams t ON p.current_team_id = t.id`

const playerSelect = `
    SELECT id, name, position, birth_date, current_team_id
    FROM players`

func scanPlayer(row scanner) (league.Player, error) {
	var p league.Player
	var teamID sql.NullInt64
	if err := row.Scan(&p.ID, &p.Name, &p.Position, &p.BirthDate, &teamID); err != nil {
		return league.Player{}, err
	}
	if teamID.Valid {
		p.CurrentTeamID = &teamID.Int64
	}
	return p, nil
}

func scanPlayerWithTeam(row scanner) (league.Player, error) {
	var p league.Player
	var (
		currentTeamID sql.NullInt64
		teamID        sql.NullInt64
		teamName      sql.NullString
		teamCity      sql.NullString
		conference    sql.NullString
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Position,
		&p.BirthDate,
		&currentTeamID,
		&teamID,
		&teamName,
		&teamCity,
		&conference,
	); err != nil {
		return league.Player{}, err
	}
	if currentTeamID.Valid {
		p.CurrentTeamID = &currentTeamID.Int64
	}
	if teamID.Valid {
		p.Team = &league.Team{
			ID:         teamID.Int64,
			Name:       teamName.String,
			City:       teamCity.String,
			Conference: league.Conference(conference.String),
		}
	}
	return p, nil
}

// ListPlayers returns every player with their current team, ordered by name.
func (s *Store) ListPlayers(ctx context.Context) ([]league.Player, error) {
	players, err := list(ctx, s, "ListPlayers", playerWithTeamSelect+` ORDER BY p.name, p.id`, nil, scanPlayerWithTeam)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return players, nil
}

// GetPlayer loads a player and their current team.
func (s *Store) GetPlayer(ctx context.Context, id int64) (league.Player, error) {
	p, found, err := get(ctx, s, "GetPlayer", playerWithTeamSelect+` WHERE p.id = ?`, []any{id}, scanPlayerWithTeam)
	if err != nil {
		return league.Player{}, fmt.Errorf("getting player %d: %w", id, err)
	}
	if !found {
		return league.Player{}, apperrors.NotFound("player", strconv.FormatInt(id, 10))
	}
	return p, nil
}

// PlayersByTeam returns the players whose current team is teamID.
func (s *Store) PlayersByTeam(ctx context.Context, teamID int64) ([]league.Player, error) {
	players, err := list(ctx, s, "PlayersByTeam", playerSelect+` WHERE current_team_id = ? ORDER BY id`, []any{teamID}, scanPlayer)
	if err != nil {
		return nil, fmt.Errorf("listing players of team %d: %w", teamID, err)
	}
	return players, nil
}

// CreatePlayer inserts a player and returns its id. A nil CurrentTeamID is
// stored as NULL.
func (s *Store) CreatePlayer(ctx context.Context, p league.Player) (int64, error) {
	id, err := s.Insert(ctx,
		`INSERT INTO players (name, position, birth_date, current_team_id) VALUES (?, ?, ?, ?)`,
		p.Name, p.Position, p.BirthDate, p.CurrentTeamID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting player %s: %w", p.Name, err)
	}
	return id, nil
}

// CountPlayers returns the number of players.
func (s *Store) CountPlayers(ctx context.Context) (int, error) {
	n, err := s.count(ctx, "CountPlayers", `SELECT COUNT(*) FROM players`)
	if err != nil {
		return 0, fmt.Errorf("counting players: %w", err)
	}
	return n, nil
}
