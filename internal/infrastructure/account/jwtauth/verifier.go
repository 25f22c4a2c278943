package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/riskibarqy/league-standings/internal/domain/user"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

const DefaultLeeway = 30 * time.Second

type Config struct {
	Secret   string
	Issuer   string
	Audience string
	Leeway   time.Duration
	// Now overrides the clock used for exp/nbf checks.
	Now func() time.Time
}

// Verifier checks HS256 access tokens minted by the external auth provider.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
	logger *logging.Logger
}

type claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func NewVerifier(cfg Config, logger *logging.Logger) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, crerr.New("jwt secret is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Leeway <= 0 {
		cfg.Leeway = DefaultLeeway
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(cfg.Now))
	}
	if issuer := strings.TrimSpace(cfg.Issuer); issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience := strings.TrimSpace(cfg.Audience); audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
		logger: logger,
	}, nil
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	var parsed claims
	if _, err := v.parser.ParseWithClaims(token, &parsed, v.key); err != nil {
		v.logger.DebugContext(ctx, "reject access token", "error", err)
		return user.Principal{}, fmt.Errorf("%w: %s", usecase.ErrUnauthorized, reason(err))
	}

	subject := strings.TrimSpace(parsed.Subject)
	if subject == "" {
		return user.Principal{}, fmt.Errorf("%w: token subject is empty", usecase.ErrUnauthorized)
	}

	return user.Principal{
		Subject: subject,
		Email:   strings.TrimSpace(parsed.Email),
		Role:    strings.TrimSpace(parsed.Role),
	}, nil
}

func (v *Verifier) key(*jwt.Token) (any, error) {
	return v.secret, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "token is missing a required claim"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "token issuer mismatch"
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return "token audience mismatch"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "token signature invalid"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "token not valid yet"
	default:
		return "invalid token"
	}
}
