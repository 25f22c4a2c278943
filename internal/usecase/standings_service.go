package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
)

const DefaultTopScorersLimit = 10

// StandingsService computes category tables from the current record sets.
type StandingsService struct {
	teamRepo   team.Repository
	matchRepo  match.Repository
	playerRepo player.Repository
	breaker    *resilience.CircuitBreaker
}

// NewStandingsService accepts a nil breaker, which disables the guard.
func NewStandingsService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	breaker *resilience.CircuitBreaker,
) *StandingsService {
	return &StandingsService{
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		breaker:    breaker,
	}
}

type leagueData struct {
	teams   []team.Team
	matches []match.Match
	players []player.Player
}

func (s *StandingsService) ListByCategory(ctx context.Context, category league.Category) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListByCategory", attribute.String("category", category.String()))
	defer span.End()

	if err := category.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	data, err := s.load(ctx, category, true)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	return standing.Compute(category, data.teams, data.matches, data.players), nil
}

func (s *StandingsService) GetTeamDetail(ctx context.Context, category league.Category, teamID string) (standing.TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GetTeamDetail",
		attribute.String("category", category.String()),
		attribute.String("team_id", teamID),
	)
	defer span.End()

	if err := category.Validate(); err != nil {
		return standing.TeamDetail{}, invalidInput(err)
	}
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return standing.TeamDetail{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	data, err := s.load(ctx, category, true)
	if err != nil {
		recordSpanError(span, err)
		return standing.TeamDetail{}, err
	}

	standings := standing.Compute(category, data.teams, data.matches, data.players)
	detail, ok := standing.BuildTeamDetail(standings, teamID, data.players)
	if !ok {
		return standing.TeamDetail{}, fmt.Errorf("%w: team=%s category=%s", ErrNotFound, teamID, category)
	}

	return detail, nil
}

func (s *StandingsService) ListTopScorers(ctx context.Context, category league.Category, limit int) ([]standing.Scorer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListTopScorers", attribute.String("category", category.String()))
	defer span.End()

	if err := category.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	if limit == 0 {
		limit = DefaultTopScorersLimit
	}

	data, err := s.load(ctx, category, false)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	return standing.TopScorers(category, data.teams, data.players, limit), nil
}

// load fetches the record sets concurrently. The first failure cancels the
// remaining fetches and nothing is computed.
func (s *StandingsService) load(ctx context.Context, category league.Category, withMatches bool) (leagueData, error) {
	var data leagueData

	err := s.breaker.Do(func() error {
		p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
		p.Go(func(ctx context.Context) error {
			items, err := s.teamRepo.ListByCategory(ctx, category)
			if err != nil {
				return fmt.Errorf("list teams: %w", err)
			}
			data.teams = items
			return nil
		})
		if withMatches {
			p.Go(func(ctx context.Context) error {
				items, err := s.matchRepo.List(ctx)
				if err != nil {
					return fmt.Errorf("list matches: %w", err)
				}
				data.matches = items
				return nil
			})
		}
		p.Go(func(ctx context.Context) error {
			items, err := s.playerRepo.List(ctx)
			if err != nil {
				return fmt.Errorf("list players: %w", err)
			}
			data.players = items
			return nil
		})
		return p.Wait()
	})
	if err != nil {
		return leagueData{}, dependencyError("load league data", err)
	}

	return data, nil
}
