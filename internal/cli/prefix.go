package cli

import (
	"fmt"
	"strings"

	"github.com/jacksmith/menu/internal/model"
)

// MatchPrefix finds the unique choice that s names. An exact match wins,
// ignoring case; otherwise s must be the prefix of exactly one choice.
// kind names the thing being matched in error messages.
func MatchPrefix(kind, s string, choices []string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "" {
		return "", fmt.Errorf("empty %s", kind)
	}

	var matches []string
	for _, c := range choices {
		lc := strings.ToLower(c)
		if lc == needle {
			return c, nil
		}
		if strings.HasPrefix(lc, needle) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown %s %q (expected one of %s)", kind, s, strings.Join(choices, ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous %s %q matches: %s", kind, s, strings.Join(matches, ", "))
	}
}

// MatchCategory resolves a category name or unique prefix, so "burg" and
// "Hot" both work on the command line.
func MatchCategory(s string) (model.Category, error) {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}
	name, err := MatchPrefix("category", s, names)
	if err != nil {
		return "", err
	}
	return model.Category(name), nil
}
