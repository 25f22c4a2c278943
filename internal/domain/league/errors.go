package league

import (
	"fmt"
	"strings"
	"unicode/utf8"

	crerr "github.com/cockroachdb/errors"
)

// Field names the attribute a ValidationError is about.
type Field string

const (
	FieldID          Field = "id"
	FieldName        Field = "name"
	FieldCategory    Field = "category"
	FieldManager     Field = "manager"
	FieldHomeTeamID  Field = "home_team_id"
	FieldAwayTeamID  Field = "away_team_id"
	FieldHomeGoals   Field = "home_goals"
	FieldAwayGoals   Field = "away_goals"
	FieldPlayedAt    Field = "played_at"
	FieldTeamID      Field = "team_id"
	FieldGoals       Field = "goals"
	FieldYellowCards Field = "yellow_cards"
	FieldRedCards    Field = "red_cards"
)

const MaxNameLength = 100

type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NewValidationError returns a *ValidationError carrying a stack trace.
// Use errors.As to recover the field.
func NewValidationError(field Field, reason string) error {
	return crerr.WithStack(&ValidationError{Field: field, Reason: reason})
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if crerr.As(err, &target) {
		return target, true
	}
	return nil, false
}

// NormalizeName trims raw and checks it holds 1..MaxNameLength characters.
func NormalizeName(field Field, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", NewValidationError(field, "is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", NewValidationError(field, fmt.Sprintf("must be at most %d characters", MaxNameLength))
	}
	return name, nil
}

// RequireNonNegative rejects counts below zero.
func RequireNonNegative(field Field, value int) error {
	if value < 0 {
		return NewValidationError(field, "must be zero or greater")
	}
	return nil
}

// RequireID rejects blank identifiers.
func RequireID(field Field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, "is required")
	}
	return nil
}
