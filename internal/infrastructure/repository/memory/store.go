package memory

import (
	"sync"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

// Store keeps the three league tables in one place so that deleting a team
// can remove its matches and players atomically. Every write is announced on
// the publisher when one is set.
type Store struct {
	mu        sync.RWMutex
	teams     map[string]team.Team
	matches   map[string]match.Match
	players   map[string]player.Player
	publisher changefeed.Publisher
}

func NewStore(publisher changefeed.Publisher) *Store {
	return &Store{
		teams:     make(map[string]team.Team),
		matches:   make(map[string]match.Match),
		players:   make(map[string]player.Player),
		publisher: publisher,
	}
}

// NewSeededStore returns a store pre-filled with the demo league.
func NewSeededStore(publisher changefeed.Publisher) *Store {
	s := NewStore(publisher)
	for _, t := range SeedTeams() {
		s.teams[t.ID] = t
	}
	for _, m := range SeedMatches() {
		s.matches[m.ID] = m
	}
	for _, p := range SeedPlayers() {
		s.players[p.ID] = p
	}
	return s
}

func (s *Store) Teams() *TeamRepository {
	return &TeamRepository{store: s}
}

func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{store: s}
}

func (s *Store) Players() *PlayerRepository {
	return &PlayerRepository{store: s}
}

func (s *Store) publish(table changefeed.Table, op changefeed.Op, id string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(changefeed.Event{Table: table, Op: op, ID: id})
}
