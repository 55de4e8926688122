package store

import (
	"context"
	"fmt"

	"github.com/utakatalp/nba-tracker/internal/league"
)

// RecentGamesLimit is how many games the dashboard lists.
const RecentGamesLimit = 10

// TeamRoster loads a team and the players currently assigned to it.
func (s *Store) TeamRoster(ctx context.Context, teamID int64) (league.TeamRoster, error) {
	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return league.TeamRoster{}, err
	}
	players, err := s.PlayersByTeam(ctx, teamID)
	if err != nil {
		return league.TeamRoster{}, err
	}
	return league.TeamRoster{Team: team, Players: players}, nil
}

// PlayerDetail assembles a player with their game lines, tenures and career
// averages.
func (s *Store) PlayerDetail(ctx context.Context, playerID int64) (league.PlayerDetail, error) {
	player, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return league.PlayerDetail{}, err
	}
	stats, err := s.PlayerStatistics(ctx, playerID)
	if err != nil {
		return league.PlayerDetail{}, err
	}
	history, err := s.TeamHistory(ctx, playerID)
	if err != nil {
		return league.PlayerDetail{}, err
	}
	averages, err := s.PlayerAverages(ctx, playerID)
	if err != nil {
		return league.PlayerDetail{}, err
	}
	return league.PlayerDetail{
		Player:     player,
		Statistics: stats,
		History:    history,
		Averages:   averages,
	}, nil
}

// GameDetail assembles a game with every statistics line recorded for it.
func (s *Store) GameDetail(ctx context.Context, gameID int64) (league.GameDetail, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return league.GameDetail{}, err
	}
	stats, err := s.GameStatistics(ctx, gameID)
	if err != nil {
		return league.GameDetail{}, err
	}
	return league.GameDetail{Game: game, Statistics: stats}, nil
}

// GamePlayers returns the current rosters of both teams of a game, home
// first.
func (s *Store) GamePlayers(ctx context.Context, g league.Game) ([]league.Player, error) {
	home, err := s.PlayersByTeam(ctx, g.HomeTeamID)
	if err != nil {
		return nil, err
	}
	away, err := s.PlayersByTeam(ctx, g.AwayTeamID)
	if err != nil {
		return nil, err
	}
	return append(home, away...), nil
}

// DashboardSummary counts teams, players and games and lists the most
// recent games.
func (s *Store) DashboardSummary(ctx context.Context) (league.DashboardSummary, error) {
	var (
		sum league.DashboardSummary
		err error
	)
	if sum.Teams, err = s.ListTeams(ctx); err != nil {
		return league.DashboardSummary{}, err
	}
	sum.TotalTeams = len(sum.Teams)
	if sum.TotalPlayers, err = s.CountPlayers(ctx); err != nil {
		return league.DashboardSummary{}, err
	}
	if sum.TotalGames, err = s.CountGames(ctx); err != nil {
		return league.DashboardSummary{}, err
	}
	if sum.RecentGames, err = s.RecentGames(ctx, RecentGamesLimit); err != nil {
		return league.DashboardSummary{}, err
	}
	return sum, nil
}

// Standings computes every team's win/loss record from the recorded games.
func (s *Store) Standings(ctx context.Context) ([]*league.StandingsEntry, error) {
	teams, err := s.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	games, err := s.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading games for standings: %w", err)
	}
	return league.CalculateStandings(teams, games), nil
}
