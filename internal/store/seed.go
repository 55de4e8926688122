package store

import (
	"context"
	"fmt"
	"log"

	"github.com/utakatalp/nba-tracker/internal/league"
)

type seedPlayer struct {
	name, position, birthDate string
	team                      int // index into SampleTeams
}

// SampleTeams are the teams inserted by Seed.
var SampleTeams = []league.Team{
	{Name: "Lakers", City: "Los Angeles", Conference: league.West},
	{Name: "Celtics", City: "Boston", Conference: league.East},
	{Name: "Warriors", City: "Golden State", Conference: league.West},
	{Name: "Bulls", City: "Chicago", Conference: league.East},
	{Name: "Heat", City: "Miami", Conference: league.East},
}

var samplePlayers = []seedPlayer{
	{"LeBron James", "SF", "1990-12-30", 0},
	{"Anthony Davis", "PF", "1993-03-11", 0},
	{"Jayson Tatum", "SF", "1998-03-03", 1},
	{"Jaylen Brown", "SG", "1996-10-24", 1},
	{"Stephen Curry", "PG", "1988-03-14", 2},
	{"Klay Thompson", "SG", "1990-02-08", 2},
	{"Michael Jordan", "SG", "1963-02-17", 3},
	{"Scottie Pippen", "SF", "1965-09-25", 3},
	{"Jimmy Butler", "SF", "1989-09-14", 4},
	{"Bam Adebayo", "C", "1997-07-18", 4},
}

// Seed fills an empty database with sample teams, players, one game and a
// statistics line for the first five players. It returns false without
// writing anything when the teams table already has rows.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	seeded := false
	err := s.WithTx(ctx, func(ctx context.Context, tx *Tx) error {
		recs, err := tx.Read(ctx, `SELECT COUNT(*) AS count FROM teams`)
		if err != nil {
			return fmt.Errorf("counting teams: %w", err)
		}
		if n, _ := recs[0].Int64("count"); n > 0 {
			return nil
		}

		teamIDs := make([]int64, len(SampleTeams))
		for i, t := range SampleTeams {
			teamIDs[i], err = tx.Insert(ctx,
				`INSERT INTO teams (name, city, conference) VALUES (?, ?, ?)`,
				t.Name, t.City, string(t.Conference),
			)
			if err != nil {
				return fmt.Errorf("inserting team %s: %w", t.Name, err)
			}
		}

		playerIDs := make([]int64, len(samplePlayers))
		for i, p := range samplePlayers {
			birth, err := league.ParseDate(p.birthDate)
			if err != nil {
				return err
			}
			playerIDs[i], err = tx.Insert(ctx,
				`INSERT INTO players (name, position, birth_date, current_team_id) VALUES (?, ?, ?, ?)`,
				p.name, p.position, birth, teamIDs[p.team],
			)
			if err != nil {
				return fmt.Errorf("inserting player %s: %w", p.name, err)
			}
		}

		gameID, err := tx.Insert(ctx,
			`INSERT INTO games (date, home_team_id, away_team_id, home_score, away_score) VALUES (?, ?, ?, ?, ?)`,
			league.NewDate(2025, 1, 15), teamIDs[0], teamIDs[1], 118, 112,
		)
		if err != nil {
			return fmt.Errorf("inserting sample game: %w", err)
		}

		for _, playerID := range playerIDs[:5] {
			if _, err := tx.Insert(ctx, `
				INSERT INTO player_statistics
				(player_id, game_id, points, rebounds, assists, minutes_played, steals, blocks, turnovers)
				VALUES (?, ?, 20, 5, 5, 30, 1, 1, 2)`,
				playerID, gameID,
			); err != nil {
				return fmt.Errorf("inserting sample statistics: %w", err)
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seeding: %w", err)
	}
	if seeded {
		log.Printf("store: seeded %d teams and %d players", len(SampleTeams), len(samplePlayers))
	}
	return seeded, nil
}
