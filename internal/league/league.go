package league

// Conference is the league half a team plays in.
type Conference string

const (
	East Conference = "East"
	West Conference = "West"
)

// Team represents a franchise in the league.
type Team struct {
	ID         int64
	Name       string
	City       string
	Conference Conference
}

// FullName joins city and name, e.g. "Los Angeles Lakers".
func (t Team) FullName() string {
	if t.City == "" {
		return t.Name
	}
	return t.City + " " + t.Name
}

// Player is a rostered athlete. CurrentTeamID is nil for free agents.
type Player struct {
	ID            int64
	Name          string
	Position      string
	BirthDate     NullDate
	CurrentTeamID *int64

	// Team is populated by queries that join the current team.
	Team *Team
}

// Game is a single finished fixture between two distinct teams.
type Game struct {
	ID         int64
	Date       Date
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  int
	AwayScore  int

	// Home and Away carry the joined team names when a query loads them.
	Home Team
	Away Team
}

// PlayerStatistics is one player's box-score line for one game.
type PlayerStatistics struct {
	ID            int64
	PlayerID      int64
	GameID        int64
	Points        int
	Rebounds      int
	Assists       int
	MinutesPlayed int
	Steals        int
	Blocks        int
	Turnovers     int
}

// TeamHistory is a tenure interval of a player at a team. An invalid EndDate
// marks the current team.
type TeamHistory struct {
	ID        int64
	PlayerID  int64
	TeamID    int64
	StartDate Date
	EndDate   NullDate
}

// Current reports whether the tenure is still open.
func (h TeamHistory) Current() bool {
	return !h.EndDate.Valid
}

// User is an account allowed to submit write forms.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Todo is an entry of the to-do list.
type Todo struct {
	ID   int64
	Text string
}

// PlayerGameLine is a statistics row joined with the game it belongs to.
type PlayerGameLine struct {
	PlayerStatistics
	Game Game
}

// GameStatLine is a statistics row joined with the player who produced it.
type GameStatLine struct {
	PlayerStatistics
	PlayerName string
	Position   string
	Team       *Team
}

// Tenure is a team-history row joined with its team.
type Tenure struct {
	TeamHistory
	Team Team
}

// Averages holds career per-game means. The means are nil when the player has
// no statistics rows.
type Averages struct {
	Points      *float64
	Rebounds    *float64
	Assists     *float64
	GamesPlayed int
}

// PlayerDetail is the read model behind the player page.
type PlayerDetail struct {
	Player     Player
	Statistics []PlayerGameLine
	History    []Tenure
	Averages   Averages
}

// GameDetail is the read model behind the game page.
type GameDetail struct {
	Game       Game
	Statistics []GameStatLine
}

// TeamRoster is a team with the players currently assigned to it.
type TeamRoster struct {
	Team    Team
	Players []Player
}

// DashboardSummary is the read model behind the index page.
type DashboardSummary struct {
	TotalTeams   int
	TotalPlayers int
	TotalGames   int
	Teams        []Team
	RecentGames  []Game
}
