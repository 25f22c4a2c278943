package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/platform/id"
)

type PlayerInput struct {
	Name        string
	TeamID      string
	Goals       int
	YellowCards int
	RedCards    int
}

type PlayerService struct {
	repo     player.Repository
	teamRepo team.Repository
	idGen    id.Generator
	now      func() time.Time
}

func NewPlayerService(repo player.Repository, teamRepo team.Repository, idGen id.Generator) *PlayerService {
	return &PlayerService{
		repo:     repo,
		teamRepo: teamRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

// List returns all players, or only those of teamID when it is not blank.
func (s *PlayerService) List(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List", attribute.String("team_id", teamID))
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	var (
		items []player.Player
		err   error
	)
	if teamID == "" {
		items, err = s.repo.List(ctx)
	} else {
		items, err = s.repo.ListByTeam(ctx, teamID)
	}
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get", attribute.String("player_id", playerID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		recordSpanError(span, err)
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *PlayerService) Create(ctx context.Context, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	item, err := s.build(ctx, playerID, input)
	if err != nil {
		recordSpanError(span, err)
		return player.Player{}, err
	}
	item.CreatedAt = item.UpdatedAt

	if err := s.repo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return item, nil
}

func (s *PlayerService) Update(ctx context.Context, playerID string, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update", attribute.String("player_id", playerID))
	defer span.End()

	current, err := s.Get(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	item, err := s.build(ctx, current.ID, input)
	if err != nil {
		recordSpanError(span, err)
		return player.Player{}, err
	}
	item.CreatedAt = current.CreatedAt

	if err := s.repo.Update(ctx, item); err != nil {
		recordSpanError(span, err)
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	return item, nil
}

func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete", attribute.String("player_id", playerID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, playerID)
	if err != nil {
		recordSpanError(span, err)
		return fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return nil
}

func (s *PlayerService) build(ctx context.Context, playerID string, input PlayerInput) (player.Player, error) {
	item, err := player.New(playerID, input.Name, strings.TrimSpace(input.TeamID), input.Goals, input.YellowCards, input.RedCards)
	if err != nil {
		return player.Player{}, invalidInput(err)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, item.TeamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return player.Player{}, invalidInput(league.NewValidationError(league.FieldTeamID, "references an unknown team"))
	}

	item.UpdatedAt = s.now().UTC()
	return item, nil
}
