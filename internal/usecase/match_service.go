package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/platform/id"
)

type MatchInput struct {
	HomeTeamID string
	AwayTeamID string
	HomeGoals  int
	AwayGoals  int
	// PlayedAt defaults to the current time when zero.
	PlayedAt time.Time
}

type MatchService struct {
	repo     match.Repository
	teamRepo team.Repository
	idGen    id.Generator
	now      func() time.Time
}

func NewMatchService(repo match.Repository, teamRepo team.Repository, idGen id.Generator) *MatchService {
	return &MatchService{
		repo:     repo,
		teamRepo: teamRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *MatchService) List(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get", attribute.String("match_id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func (s *MatchService) Create(ctx context.Context, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	item, err := s.build(ctx, matchID, input)
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, err
	}
	item.CreatedAt = item.UpdatedAt

	if err := s.repo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	return item, nil
}

func (s *MatchService) Update(ctx context.Context, matchID string, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update", attribute.String("match_id", matchID))
	defer span.End()

	current, err := s.Get(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if input.PlayedAt.IsZero() {
		input.PlayedAt = current.PlayedAt
	}

	item, err := s.build(ctx, current.ID, input)
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, err
	}
	item.CreatedAt = current.CreatedAt

	if err := s.repo.Update(ctx, item); err != nil {
		recordSpanError(span, err)
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	return item, nil
}

func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete", attribute.String("match_id", matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, matchID)
	if err != nil {
		recordSpanError(span, err)
		return fmt.Errorf("delete match: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return nil
}

func (s *MatchService) build(ctx context.Context, matchID string, input MatchInput) (match.Match, error) {
	now := s.now().UTC()
	playedAt := input.PlayedAt
	if playedAt.IsZero() {
		playedAt = now
	}

	item, err := match.New(matchID, strings.TrimSpace(input.HomeTeamID), strings.TrimSpace(input.AwayTeamID), input.HomeGoals, input.AwayGoals, playedAt.UTC())
	if err != nil {
		return match.Match{}, invalidInput(err)
	}

	for _, ref := range []struct {
		field  league.Field
		teamID string
	}{
		{field: league.FieldHomeTeamID, teamID: item.HomeTeamID},
		{field: league.FieldAwayTeamID, teamID: item.AwayTeamID},
	} {
		_, exists, err := s.teamRepo.GetByID(ctx, ref.teamID)
		if err != nil {
			return match.Match{}, fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return match.Match{}, invalidInput(league.NewValidationError(ref.field, "references an unknown team"))
		}
	}

	item.UpdatedAt = now
	return item, nil
}
