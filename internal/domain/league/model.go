package league

import (
	"strings"
)

// Category partitions teams into independent league tables. Values only come
// from the package-level variables or ParseCategory; the zero value is invalid.
type Category struct {
	slug string
}

var (
	CategoryMen   = Category{slug: "men"}
	CategoryWomen = Category{slug: "women"}
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryMen, CategoryWomen}
}

func ParseCategory(raw string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case CategoryMen.slug:
		return CategoryMen, nil
	case CategoryWomen.slug:
		return CategoryWomen, nil
	default:
		return Category{}, NewValidationError(FieldCategory, "must be one of men, women")
	}
}

func (c Category) String() string {
	return c.slug
}

func (c Category) IsZero() bool {
	return c.slug == ""
}

func (c Category) Validate() error {
	if c.IsZero() {
		return NewValidationError(FieldCategory, "is required")
	}
	return nil
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.slug), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
