package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	standingsService *usecase.StandingsService
	liveService      *usecase.LiveStandingsService
	teamService      *usecase.TeamService
	matchService     *usecase.MatchService
	playerService    *usecase.PlayerService
	logger           *logging.Logger
	validator        *validator.Validate
	wsAccept         wsAcceptConfig
}

func NewHandler(
	standingsService *usecase.StandingsService,
	liveService *usecase.LiveStandingsService,
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	playerService *usecase.PlayerService,
	allowedOrigins []string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService: standingsService,
		liveService:      liveService,
		teamService:      teamService,
		matchService:     matchService,
		playerService:    playerService,
		logger:           logger,
		validator:        newValidator(),
		wsAccept:         newWSAcceptConfig(allowedOrigins),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	categories := league.Categories()
	items := make([]string, 0, len(categories))
	for _, c := range categories {
		items = append(items, c.String())
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields,
// and runs struct validation.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, w http.ResponseWriter, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return fmt.Errorf("%w: %w", usecase.ErrInvalidInput,
			league.NewValidationError(league.Field(first.Field()), validationReason(first)))
	}
	return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "uuid4", "uuid":
		return "must be a UUID"
	default:
		return "is invalid"
	}
}

func parseCategory(raw string) (league.Category, error) {
	category, err := league.ParseCategory(raw)
	if err != nil {
		return league.Category{}, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err)
	}
	return category, nil
}
