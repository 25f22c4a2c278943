package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

var _ team.Repository = (*TeamRepository)(nil)

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0, len(r.store.teams))
	for _, item := range r.store.teams {
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b team.Team) int {
		if c := strings.Compare(a.Category.String(), b.Category.String()); c != 0 {
			return c
		}
		return compareTeamName(a, b)
	})
	return out, nil
}

func (r *TeamRepository) ListByCategory(_ context.Context, category league.Category) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.store.teams {
		if item.Category == category {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, compareTeamName)
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.store.mu.Lock()
	if _, exists := r.store.teams[t.ID]; exists {
		r.store.mu.Unlock()
		return fmt.Errorf("team %s already exists", t.ID)
	}
	r.store.teams[t.ID] = t
	r.store.mu.Unlock()

	r.store.publish(changefeed.TableTeams, changefeed.OpInsert, t.ID)
	return nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	r.store.mu.Lock()
	if _, exists := r.store.teams[t.ID]; !exists {
		r.store.mu.Unlock()
		return nil
	}
	r.store.teams[t.ID] = t
	r.store.mu.Unlock()

	r.store.publish(changefeed.TableTeams, changefeed.OpUpdate, t.ID)
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) (bool, error) {
	r.store.mu.Lock()
	if _, exists := r.store.teams[teamID]; !exists {
		r.store.mu.Unlock()
		return false, nil
	}
	delete(r.store.teams, teamID)

	var removedMatches, removedPlayers []string
	for id, m := range r.store.matches {
		if m.Involves(teamID) {
			delete(r.store.matches, id)
			removedMatches = append(removedMatches, id)
		}
	}
	for id, p := range r.store.players {
		if p.TeamID == teamID {
			delete(r.store.players, id)
			removedPlayers = append(removedPlayers, id)
		}
	}
	r.store.mu.Unlock()

	r.store.publish(changefeed.TableTeams, changefeed.OpDelete, teamID)
	for _, id := range removedMatches {
		r.store.publish(changefeed.TableMatches, changefeed.OpDelete, id)
	}
	for _, id := range removedPlayers {
		r.store.publish(changefeed.TablePlayers, changefeed.OpDelete, id)
	}
	return true, nil
}

func compareTeamName(a, b team.Team) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
