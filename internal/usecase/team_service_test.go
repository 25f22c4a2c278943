package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	teammock "github.com/riskibarqy/league-standings/internal/mocks/domain/team"
)

func TestTeamService_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, &sequenceIDGenerator{prefix: "team"})
	fixed := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	repo.
		On("Create", ctx, mock.MatchedBy(func(v team.Team) bool {
			return v.ID == "team-1" && v.Name == "Condors" && v.Manager == "Marta" && v.CreatedAt.Equal(fixed)
		})).
		Return(nil).
		Once()

	got, err := service.Create(ctx, TeamInput{Name: " Condors ", Category: league.CategoryWomen, Manager: "Marta"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if got.Category != league.CategoryWomen {
		t.Fatalf("unexpected category: %v", got.Category)
	}
}

func TestTeamService_Create_InvalidInput(t *testing.T) {
	t.Parallel()

	service := NewTeamService(teammock.NewRepository(t), &sequenceIDGenerator{prefix: "team"})

	_, err := service.Create(context.Background(), TeamInput{Name: "", Category: league.CategoryMen, Manager: "x"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	verr, ok := league.AsValidationError(err)
	if !ok || verr.Field != league.FieldName {
		t.Fatalf("expected name validation error, got %v", err)
	}
}

func TestTeamService_Update_KeepsCreatedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, &sequenceIDGenerator{prefix: "team"})
	created := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	repo.On("GetByID", ctx, "t1").
		Return(team.Team{ID: "t1", Name: "Old", Category: league.CategoryMen, Manager: "M", CreatedAt: created}, true, nil).
		Once()
	repo.On("Update", ctx, mock.MatchedBy(func(v team.Team) bool {
		return v.ID == "t1" && v.Name == "New" && v.CreatedAt.Equal(created)
	})).Return(nil).Once()

	if _, err := service.Update(ctx, "t1", TeamInput{Name: "New", Category: league.CategoryMen, Manager: "M"}); err != nil {
		t.Fatalf("update team: %v", err)
	}
}

func TestTeamService_Update_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, &sequenceIDGenerator{prefix: "team"})

	repo.On("GetByID", ctx, "missing").Return(team.Team{}, false, nil).Once()

	_, err := service.Update(ctx, "missing", TeamInput{Name: "A", Category: league.CategoryMen, Manager: "M"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, &sequenceIDGenerator{prefix: "team"})

	repo.On("Delete", ctx, "t1").Return(true, nil).Once()
	repo.On("Delete", ctx, "t2").Return(false, nil).Once()

	if err := service.Delete(ctx, "t1"); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	if err := service.Delete(ctx, "t2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := service.Delete(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_ListByCategory_WrapsRepositoryError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := teammock.NewRepository(t)
	service := NewTeamService(repo, &sequenceIDGenerator{prefix: "team"})
	storeErr := errors.New("timeout")

	repo.On("ListByCategory", ctx, league.CategoryMen).Return(nil, storeErr).Once()

	if _, err := service.ListByCategory(ctx, league.CategoryMen); !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
