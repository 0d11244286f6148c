package models

import (
	"fmt"
	"slices"
	"strings"
)

// CategorySetting controls whether a category is shown and where it sorts.
type CategorySetting struct {
	IsEnabled bool `json:"isEnabled"`
	Order     int  `json:"order"`
}

// defaultCategories builds the initial category map: enum order starting at 0, all enabled.
func defaultCategories[T comparable](all []T) map[T]CategorySetting {
	categories := make(map[T]CategorySetting, len(all))
	for i, c := range all {
		categories[c] = CategorySetting{IsEnabled: true, Order: i}
	}
	return categories
}

func parseEnum[T ~string](kind, value string, all []T) (T, error) {
	normalized := T(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_"))
	if slices.Contains(all, normalized) {
		return normalized, nil
	}
	names := make([]string, len(all))
	for i, v := range all {
		names[i] = string(v)
	}
	return "", fmt.Errorf("invalid %s %q (expected one of: %s)", kind, value, strings.Join(names, ", "))
}
