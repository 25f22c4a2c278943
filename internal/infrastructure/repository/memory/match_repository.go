package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/changefeed"
	"github.com/riskibarqy/league-standings/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

var _ match.Repository = (*MatchRepository)(nil)

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.Match, 0, len(r.store.matches))
	for _, item := range r.store.matches {
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b match.Match) int {
		if c := b.PlayedAt.Compare(a.PlayedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.store.mu.Lock()
	if _, exists := r.store.matches[m.ID]; exists {
		r.store.mu.Unlock()
		return fmt.Errorf("match %s already exists", m.ID)
	}
	r.store.matches[m.ID] = m
	r.store.mu.Unlock()

	r.store.publish(changefeed.TableMatches, changefeed.OpInsert, m.ID)
	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	r.store.mu.Lock()
	if _, exists := r.store.matches[m.ID]; !exists {
		r.store.mu.Unlock()
		return nil
	}
	r.store.matches[m.ID] = m
	r.store.mu.Unlock()

	r.store.publish(changefeed.TableMatches, changefeed.OpUpdate, m.ID)
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, matchID string) (bool, error) {
	r.store.mu.Lock()
	if _, exists := r.store.matches[matchID]; !exists {
		r.store.mu.Unlock()
		return false, nil
	}
	delete(r.store.matches, matchID)
	r.store.mu.Unlock()

	r.store.publish(changefeed.TableMatches, changefeed.OpDelete, matchID)
	return true, nil
}
