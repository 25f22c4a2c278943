package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/platform/id"
)

type TeamInput struct {
	Name     string
	Category league.Category
	Manager  string
}

type TeamService struct {
	repo  team.Repository
	idGen id.Generator
	now   func() time.Time
}

func NewTeamService(repo team.Repository, idGen id.Generator) *TeamService {
	return &TeamService{
		repo:  repo,
		idGen: idGen,
		now:   time.Now,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) ListByCategory(ctx context.Context, category league.Category) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByCategory", attribute.String("category", category.String()))
	defer span.End()

	if err := category.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	items, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list teams by category: %w", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get", attribute.String("team_id", teamID))
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		recordSpanError(span, err)
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *TeamService) Create(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item, err := team.New(teamID, input.Name, input.Category, input.Manager)
	if err != nil {
		return team.Team{}, invalidInput(err)
	}
	now := s.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return item, nil
}

func (s *TeamService) Update(ctx context.Context, teamID string, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update", attribute.String("team_id", teamID))
	defer span.End()

	current, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	item, err := team.New(current.ID, input.Name, input.Category, input.Manager)
	if err != nil {
		return team.Team{}, invalidInput(err)
	}
	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		recordSpanError(span, err)
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}
	return item, nil
}

// Delete removes the team together with its matches and players.
func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete", attribute.String("team_id", teamID))
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, teamID)
	if err != nil {
		recordSpanError(span, err)
		return fmt.Errorf("delete team: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return nil
}
