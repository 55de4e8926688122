// internal/league/logic.go
package league

import (
	"fmt"
	"sort"
)

// ScoreLine renders a finished game as "Lakers 118 - 112 Celtics".
func (g Game) ScoreLine() string {
	return fmt.Sprintf("%s %d - %d %s",
		g.Home.Name, g.HomeScore,
		g.AwayScore, g.Away.Name,
	)
}

// Winner returns the winning team id, or 0 when the recorded score is level.
func (g Game) Winner() int64 {
	switch {
	case g.HomeScore > g.AwayScore:
		return g.HomeTeamID
	case g.AwayScore > g.HomeScore:
		return g.AwayTeamID
	default:
		return 0
	}
}

// StandingsEntry holds the win/loss record of one team.
type StandingsEntry struct {
	Team                     Team
	Played, Wins, Losses     int
	PointsFor, PointsAgainst int
	PointDiff                int
}

// WinPct is wins over games played, 0 before the first game.
func (e *StandingsEntry) WinPct() float64 {
	if e.Played == 0 {
		return 0
	}
	return float64(e.Wins) / float64(e.Played)
}

// CalculateStandings builds one entry per team from the recorded games.
// Games referencing unknown teams are ignored. Level scores count as played
// without a decision since the tracker does not validate scores.
func CalculateStandings(teams []Team, games []Game) []*StandingsEntry {
	entriesMap := make(map[int64]*StandingsEntry, len(teams))
	for _, t := range teams {
		entriesMap[t.ID] = &StandingsEntry{Team: t}
	}

	for _, g := range games {
		home, okHome := entriesMap[g.HomeTeamID]
		away, okAway := entriesMap[g.AwayTeamID]
		if !okHome || !okAway {
			continue
		}

		home.Played++
		away.Played++

		home.PointsFor += g.HomeScore
		home.PointsAgainst += g.AwayScore
		away.PointsFor += g.AwayScore
		away.PointsAgainst += g.HomeScore

		switch g.Winner() {
		case g.HomeTeamID:
			home.Wins++
			away.Losses++
		case g.AwayTeamID:
			away.Wins++
			home.Losses++
		}
	}

	entries := make([]*StandingsEntry, 0, len(entriesMap))
	for _, e := range entriesMap {
		e.PointDiff = e.PointsFor - e.PointsAgainst
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.PointDiff != b.PointDiff {
			return a.PointDiff > b.PointDiff
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		return a.Team.Name < b.Team.Name
	})

	return entries
}
