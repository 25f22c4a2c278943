package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	"github.com/riskibarqy/league-standings/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

var _ player.Repository = (*PlayerRepository)(nil)

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	return r.filter(func(player.Player) bool { return true }), nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	return r.filter(func(p player.Player) bool { return p.TeamID == teamID }), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.players[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.store.mu.Lock()
	if _, exists := r.store.players[p.ID]; exists {
		r.store.mu.Unlock()
		return fmt.Errorf("player %s already exists", p.ID)
	}
	r.store.players[p.ID] = p
	r.store.mu.Unlock()

	r.store.publish(changefeed.TablePlayers, changefeed.OpInsert, p.ID)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.store.mu.Lock()
	if _, exists := r.store.players[p.ID]; !exists {
		r.store.mu.Unlock()
		return nil
	}
	r.store.players[p.ID] = p
	r.store.mu.Unlock()

	r.store.publish(changefeed.TablePlayers, changefeed.OpUpdate, p.ID)
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) (bool, error) {
	r.store.mu.Lock()
	if _, exists := r.store.players[playerID]; !exists {
		r.store.mu.Unlock()
		return false, nil
	}
	delete(r.store.players, playerID)
	r.store.mu.Unlock()

	r.store.publish(changefeed.TablePlayers, changefeed.OpDelete, playerID)
	return true, nil
}

func (r *PlayerRepository) filter(keep func(player.Player) bool) []player.Player {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, item := range r.store.players {
		if keep(item) {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b player.Player) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
