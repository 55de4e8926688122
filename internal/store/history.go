package store

import (
	"context"
	"fmt"

	"github.com/utakatalp/nba-tracker/internal/league"
)

// TeamHistory returns a player's tenures joined with their teams, latest
// start first.
func (s *Store) TeamHistory(ctx context.Context, playerID int64) ([]league.Tenure, error) {
	const q = `
    SELECT th.id, th.player_id, th.team_id, th.start_date, th.end_date,
           t.name, t.city, t.conference
    FROM team_history th
    JOIN teams t ON th.team_id = t.id
    WHERE th.player_id = ?
    ORDER BY th.start_date DESC, th.id DESC`

	tenures, err := list(ctx, s, "TeamHistory", q, []any{playerID}, func(row scanner) (league.Tenure, error) {
		var t league.Tenure
		var conference string
		if err := row.Scan(
			&t.ID,
			&t.PlayerID,
			&t.TeamID,
			&t.StartDate,
			&t.EndDate,
			&t.Team.Name,
			&t.Team.City,
			&conference,
		); err != nil {
			return league.Tenure{}, err
		}
		t.Team.ID = t.TeamID
		t.Team.Conference = league.Conference(conference)
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing team history of player %d: %w", playerID, err)
	}
	return tenures, nil
}

// AddTeamHistory records a tenure. When the tenure has no end date the
// player's current team is moved to it in the same transaction, so either
// both rows change or neither does.
func (s *Store) AddTeamHistory(ctx context.Context, h league.TeamHistory) (int64, error) {
	var id int64
	err := s.WithTx(ctx, func(ctx context.Context, tx *Tx) error {
		var err error
		id, err = tx.Insert(ctx,
			`INSERT INTO team_history (player_id, team_id, start_date, end_date) VALUES (?, ?, ?, ?)`,
			h.PlayerID, h.TeamID, h.StartDate, h.EndDate,
		)
		if err != nil {
			return fmt.Errorf("inserting team history: %w", err)
		}
		if !h.Current() {
			return nil
		}
		if _, err := tx.Exec(ctx,
			`UPDATE players SET current_team_id = ? WHERE id = ?`,
			h.TeamID, h.PlayerID,
		); err != nil {
			return fmt.Errorf("updating current team of player %d: %w", h.PlayerID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
