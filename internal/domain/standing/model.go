package standing

import "github.com/riskibarqy/league-standings/internal/domain/league"

// Standing is a team's computed row in its category table. It is derived on
// every read and never persisted.
type Standing struct {
	Position       int
	TeamID         string
	TeamName       string
	Manager        string
	Category       league.Category
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	YellowCards    int
	RedCards       int
	Points         int
}

// RosterEntry is one player line in a team detail view.
type RosterEntry struct {
	PlayerID    string
	Name        string
	Goals       int
	YellowCards int
	RedCards    int
}

// TeamDetail is a team's standing plus its roster.
type TeamDetail struct {
	Standing Standing
	Roster   []RosterEntry
}

// Scorer is a row of the top scorers table.
type Scorer struct {
	Rank     int
	PlayerID string
	Name     string
	TeamID   string
	TeamName string
	Goals    int
}
