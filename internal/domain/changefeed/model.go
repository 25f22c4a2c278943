package changefeed

import "fmt"

type Table string

const (
	TableTeams   Table = "teams"
	TableMatches Table = "matches"
	TablePlayers Table = "players"
)

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
	// OpResync means notifications may have been lost and every consumer
	// should reload from scratch.
	OpResync Op = "RESYNC"
)

// Event signals that a row changed. Consumers treat it as a hint to re-fetch;
// the payload carries no column values.
type Event struct {
	Table Table  `json:"table"`
	Op    Op     `json:"op"`
	ID    string `json:"id,omitempty"`
}

func (e Event) String() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s", e.Op, e.Table)
	}
	return fmt.Sprintf("%s %s/%s", e.Op, e.Table, e.ID)
}

func (t Table) Valid() bool {
	switch t {
	case TableTeams, TableMatches, TablePlayers:
		return true
	default:
		return false
	}
}

func (o Op) Valid() bool {
	switch o {
	case OpInsert, OpUpdate, OpDelete, OpResync:
		return true
	default:
		return false
	}
}

// Resync is published when a source cannot vouch for the events it missed.
func Resync() Event {
	return Event{Op: OpResync}
}
