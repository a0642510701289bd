package model

import (
	"fmt"
	"strings"
)

// Category is the closed set of expense categories.
type Category int

// Expense categories in display order. The zero value is not a valid
// category and is treated as Other during aggregation.
const (
	CategoryHousing Category = iota + 1
	CategoryFood
	CategoryTransportation
	CategoryUtilities
	CategoryEntertainment
	CategoryEducation
	CategoryHealthcare
	CategoryPersonal
	CategoryDebt
	CategorySavings
	CategoryOther
)

var categoryNames = map[Category]string{
	CategoryHousing:        "Housing",
	CategoryFood:           "Food",
	CategoryTransportation: "Transportation",
	CategoryUtilities:      "Utilities",
	CategoryEntertainment:  "Entertainment",
	CategoryEducation:      "Education",
	CategoryHealthcare:     "Healthcare",
	CategoryPersonal:       "Personal",
	CategoryDebt:           "Debt",
	CategorySavings:        "Savings",
	CategoryOther:          "Other",
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryHousing, CategoryFood, CategoryTransportation, CategoryUtilities,
		CategoryEntertainment, CategoryEducation, CategoryHealthcare,
		CategoryPersonal, CategoryDebt, CategorySavings, CategoryOther,
	}
}

// String returns the display name. Unknown values render as "Other".
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryOther]
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// OrOther maps the zero value (and any unknown value) to CategoryOther.
func (c Category) OrOther() Category {
	if !c.Valid() {
		return CategoryOther
	}
	return c
}

// ParseCategory resolves a case-insensitive category name.
// An empty string maps to Other.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOther, nil
	}
	for c, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// MarshalText implements encoding.TextMarshaler so categories serialize by
// name in JSON bodies, JSON map keys and TOML files.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
