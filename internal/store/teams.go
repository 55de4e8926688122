package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/utakatalp/nba-tracker/internal/apperrors"
	"github.com/utakatalp/nba-tracker/internal/league"
)

const teamColumns = `id, name, city, conference`

func scanTeam(row scanner) (league.Team, error) {
	var t league.Team
	var conference string
	if err := row.Scan(&t.ID, &t.Name, &t.City, &conference); err != nil {
		return league.Team{}, err
	}
	t.Conference = league.Conference(conference)
	return t, nil
}

// ListTeams returns every team ordered by name.
func (s *Store) ListTeams(ctx context.Context) ([]league.Team, error) {
	teams, err := list(ctx, s, "ListTeams", `SELECT `+teamColumns+` FROM teams ORDER BY name, id`, nil, scanTeam)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return teams, nil
}

// GetTeam loads a team by id.
func (s *Store) GetTeam(ctx context.Context, id int64) (league.Team, error) {
	t, found, err := get(ctx, s, "GetTeam", `SELECT `+teamColumns+` FROM teams WHERE id = ?`, []any{id}, scanTeam)
	if err != nil {
		return league.Team{}, fmt.Errorf("getting team %d: %w", id, err)
	}
	if !found {
		return league.Team{}, apperrors.NotFound("team", strconv.FormatInt(id, 10))
	}
	return t, nil
}

// CreateTeam inserts a team and returns its id.
func (s *Store) CreateTeam(ctx context.Context, t league.Team) (int64, error) {
	id, err := s.Insert(ctx,
		`INSERT INTO teams (name, city, conference) VALUES (?, ?, ?)`,
		t.Name, t.City, string(t.Conference),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting team %s: %w", t.Name, err)
	}
	return id, nil
}

// CountTeams returns the number of teams.
func (s *Store) CountTeams(ctx context.Context) (int, error) {
	n, err := s.count(ctx, "CountTeams", `SELECT COUNT(*) FROM teams`)
	if err != nil {
		return 0, fmt.Errorf("counting teams: %w", err)
	}
	return n, nil
}
