package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/utakatalp/nba-tracker/internal/league"
)

// CreateStatistics inserts a box-score line and returns its id. Repeated
// lines for the same player and game are stored as separate rows.
func (s *Store) CreateStatistics(ctx context.Context, st league.PlayerStatistics) (int64, error) {
	id, err := s.Insert(ctx, `
		INSERT INTO player_statistics
		(player_id, game_id, points, rebounds, assists, minutes_played, steals, blocks, turnovers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.PlayerID, st.GameID, st.Points, st.Rebounds, st.Assists,
		st.MinutesPlayed, st.Steals, st.Blocks, st.Turnovers,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting statistics for player %d game %d: %w", st.PlayerID, st.GameID, err)
	}
	return id, nil
}

func statisticsDest(st *league.PlayerStatistics) []any {
	return []any{
		&st.ID,
		&st.PlayerID,
		&st.GameID,
		&st.Points,
		&st.Rebounds,
		&st.Assists,
		&st.MinutesPlayed,
		&st.Steals,
		&st.Blocks,
		&st.Turnovers,
	}
}

const statisticsColumns = `ps.id, ps.player_id, ps.game_id, ps.points, ps.rebounds, ps.assists,
           ps.minutes_played, ps.steals, ps.blocks, ps.turnovers`

// PlayerStatistics returns a player's lines joined with their games, most
// recent game first.
func (s *Store) PlayerStatistics(ctx context.Context, playerID int64) ([]league.PlayerGameLine, error) {
	const q = `
    SELECT ` + statisticsColumns + `,
           g.id, g.date, g.home_team_id, g.away_team_id, g.home_score, g.away_score,
           ht.name, ht.city, at.name, at.city
    FROM player_statistics ps
    JOIN games g ON ps.game_id = g.id
    JOIN teams ht ON g.home_team_id = ht.id
    JOIN teams at ON g.away_team_id = at.id
    WHERE ps.player_id = ?
    ORDER BY g.date DESC, g.id DESC, ps.id`

	lines, err := list(ctx, s, "PlayerStatistics", q, []any{playerID}, func(row scanner) (league.PlayerGameLine, error) {
		var l league.PlayerGameLine
		dest := append(statisticsDest(&l.PlayerStatistics),
			&l.Game.ID,
			&l.Game.Date,
			&l.Game.HomeTeamID,
			&l.Game.AwayTeamID,
			&l.Game.HomeScore,
			&l.Game.AwayScore,
			&l.Game.Home.Name,
			&l.Game.Home.City,
			&l.Game.Away.Name,
			&l.Game.Away.City,
		)
		if err := row.Scan(dest...); err != nil {
			return league.PlayerGameLine{}, err
		}
		l.Game.Home.ID = l.Game.HomeTeamID
		l.Game.Away.ID = l.Game.AwayTeamID
		return l, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing statistics of player %d: %w", playerID, err)
	}
	return lines, nil
}

// GameStatistics returns every line recorded for a game with the player's
// name, position and current team.
func (s *Store) GameStatistics(ctx context.Context, gameID int64) ([]league.GameStatLine, error) {
	const q = `
    SELECT ` + statisticsColumns + `,
           p.name, p.position, t.id, t.name, t.city, t.conference
    FROM player_statistics ps
    JOIN players p ON ps.player_id = p.id
    LEFT JOIN teams t ON p.current_team_id = t.id
    WHERE ps.game_id = ?
    ORDER BY ps.id`

	lines, err := list(ctx, s, "GameStatistics", q, []any{gameID}, func(row scanner) (league.GameStatLine, error) {
		var l league.GameStatLine
		var (
			teamID     sql.NullInt64
			teamName   sql.NullString
			teamCity   sql.NullString
			conference sql.NullString
		)
		dest := append(statisticsDest(&l.PlayerStatistics),
			&l.PlayerName,
			&l.Position,
			&teamID,
			&teamName,
			&teamCity,
			&conference,
		)
		if err := row.Scan(dest...); err != nil {
			return league.GameStatLine{}, err
		}
		if teamID.Valid {
			l.Team = &league.Team{
				ID:         teamID.Int64,
				Name:       teamName.String,
				City:       teamCity.String,
				Conference: league.Conference(conference.String),
			}
		}
		return l, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing statistics of game %d: %w", gameID, err)
	}
	return lines, nil
}

// PlayerAverages computes career per-game means in a single aggregate query.
// AVG over no rows is NULL, which leaves the means nil.
func (s *Store) PlayerAverages(ctx context.Context, playerID int64) (league.Averages, error) {
	const q = `
    SELECT AVG(points), AVG(rebounds), AVG(assists), COUNT(*)
    FROM player_statistics WHERE player_id = ?`

	avg, _, err := get(ctx, s, "PlayerAverages", q, []any{playerID}, func(row scanner) (league.Averages, error) {
		var a league.Averages
		var points, rebounds, assists sql.NullFloat64
		if err := row.Scan(&points, &rebounds, &assists, &a.GamesPlayed); err != nil {
			return league.Averages{}, err
		}
		a.Points = nullFloat(points)
		a.Rebounds = nullFloat(rebounds)
		a.Assists = nullFloat(assists)
		return a, nil
	})
	if err != nil {
		return league.Averages{}, fmt.Errorf("averaging statistics of player %d: %w", playerID, err)
	}
	return avg, nil
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
