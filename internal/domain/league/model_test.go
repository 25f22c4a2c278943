package league

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Category
		wantErr bool
	}{
		{raw: "men", want: CategoryMen},
		{raw: " Women ", want: CategoryWomen},
		{raw: "MEN", want: CategoryMen},
		{raw: "mixed", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseCategory(tc.raw)
		if tc.wantErr {
			verr, ok := AsValidationError(err)
			if !ok || verr.Field != FieldCategory {
				t.Fatalf("ParseCategory(%q): expected category validation error, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCategory(%q): unexpected error %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseCategory(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestCategory_ZeroValueIsInvalid(t *testing.T) {
	t.Parallel()

	var c Category
	if err := c.Validate(); err == nil {
		t.Fatalf("expected zero category to be invalid")
	}
	if err := CategoryWomen.Validate(); err != nil {
		t.Fatalf("expected women category to be valid: %v", err)
	}
}

func TestCategory_TextRoundTrip(t *testing.T) {
	t.Parallel()

	text, err := CategoryWomen.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var c Category
	if err := c.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c != CategoryWomen {
		t.Fatalf("expected women, got %v", c)
	}
	if err := c.UnmarshalText([]byte("junior")); err == nil {
		t.Fatalf("expected unknown category to fail")
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	got, err := NormalizeName(FieldName, "  Tigres  ")
	if err != nil || got != "Tigres" {
		t.Fatalf("expected trimmed name, got %q err=%v", got, err)
	}

	_, err = NormalizeName(FieldManager, "   ")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != FieldManager {
		t.Fatalf("expected manager validation error, got %v", err)
	}

	if _, err := NormalizeName(FieldName, strings.Repeat("ñ", MaxNameLength)); err != nil {
		t.Fatalf("expected %d multi-byte runes to be accepted: %v", MaxNameLength, err)
	}
	if _, err := NormalizeName(FieldName, strings.Repeat("a", MaxNameLength+1)); err == nil {
		t.Fatalf("expected overlong name to fail")
	}
}
