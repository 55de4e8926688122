package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/utakatalp/nba-tracker/internal/apperrors"
	"github.com/utakatalp/nba-tracker/internal/league"
)

// Ties on date fall back to insertion order, newest first.
const gameSelect = `
    SELECT g.id, g.date, g.home_team_id, g.away_team_id, g.home_score, g.away_score,
           ht.name, ht.city, ht.conference,
           at.name, at.city, at.conference
    FROM games g
    JOIN teams ht ON g.home_team_id = ht.id
    JOIN teams at ON g.away_team_id = at.id`

const gameOrder = ` ORDER BY g.date DESC, g.id DESC`

func scanGame(row scanner) (league.Game, error) {
	var g league.Game
	var homeConf, awayConf string
	if err := row.Scan(
		&g.ID,
		&g.Date,
		&g.HomeTeamID,
		&g.AwayTeamID,
		&g.HomeScore,
		&g.AwayScore,
		&g.Home.Name,
		&g.Home.City,
		&homeConf,
		&g.Away.Name,
		&g.Away.City,
		&awayConf,
	); err != nil {
		return league.Game{}, err
	}
	g.Home.ID = g.HomeTeamID
	g.Home.Conference = league.Conference(homeConf)
	g.Away.ID = g.AwayTeamID
	g.Away.Conference = league.Conference(awayConf)
	return g, nil
}

// ListGames returns every game, most recent first.
func (s *Store) ListGames(ctx context.Context) ([]league.Game, error) {
	games, err := list(ctx, s, "ListGames", gameSelect+gameOrder, nil, scanGame)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

// RecentGames returns at most limit games, most recent first.
func (s *Store) RecentGames(ctx context.Context, limit int) ([]league.Game, error) {
	games, err := list(ctx, s, "RecentGames", gameSelect+gameOrder+` LIMIT ?`, []any{limit}, scanGame)
	if err != nil {
		return nil, fmt.Errorf("listing recent games: %w", err)
	}
	return games, nil
}

// GetGame loads a game with both teams.
func (s *Store) GetGame(ctx context.Context, id int64) (league.Game, error) {
	g, found, err := get(ctx, s, "GetGame", gameSelect+` WHERE g.id = ?`, []any{id}, scanGame)
	if err != nil {
		return league.Game{}, fmt.Errorf("getting game %d: %w", id, err)
	}
	if !found {
		return league.Game{}, apperrors.NotFound("game", strconv.FormatInt(id, 10))
	}
	return g, nil
}

// CreateGame inserts a game and returns its id. A game naming the same team
// twice is rejected before any write.
func (s *Store) CreateGame(ctx context.Context, g league.Game) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	id, err := s.Insert(ctx, `
		INSERT INTO games (date, home_team_id, away_team_id, home_score, away_score)
		VALUES (?, ?, ?, ?, ?)`,
		g.Date, g.HomeTeamID, g.AwayTeamID, g.HomeScore, g.AwayScore,
	)
	if err != nil {
		return 0, fmt.Errorf("saving game: %w", err)
	}
	return id, nil
}

// CountGames returns the number of games.
func (s *Store) CountGames(ctx context.Context) (int, error) {
	n, err := s.count(ctx, "CountGames", `SELECT COUNT(*) FROM games`)
	if err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}
	return n, nil
}
