package team

import (
	"testing"

	"github.com/riskibarqy/league-standings/internal/domain/league"
)

func TestNew(t *testing.T) {
	t.Parallel()

	got, err := New("t1", "  Tigres ", league.CategoryMen, " Ana ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Tigres" || got.Manager != "Ana" {
		t.Fatalf("expected trimmed fields, got %+v", got)
	}
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		id        string
		teamName  string
		category  league.Category
		manager   string
		wantField league.Field
	}{
		{name: "missing id", id: "", teamName: "A", category: league.CategoryMen, manager: "M", wantField: league.FieldID},
		{name: "blank name", id: "t1", teamName: "  ", category: league.CategoryMen, manager: "M", wantField: league.FieldName},
		{name: "zero category", id: "t1", teamName: "A", manager: "M", wantField: league.FieldCategory},
		{name: "blank manager", id: "t1", teamName: "A", category: league.CategoryWomen, manager: "", wantField: league.FieldManager},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.id, tc.teamName, tc.category, tc.manager)
			verr, ok := league.AsValidationError(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tc.wantField {
				t.Fatalf("expected field %s, got %s", tc.wantField, verr.Field)
			}
		})
	}
}
