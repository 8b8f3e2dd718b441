package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ErrInvalidID is returned when an ID cannot be parsed.
var ErrInvalidID = errors.New("invalid ID format")

// NewID returns a fresh product ID. IDs are ULIDs, so creation order and
// lexical order agree.
func NewID() string {
	return ulid.Make().String()
}

// ParseID parses a full product ID in any letter case and returns its
// canonical uppercase form.
func ParseID(s string) (string, error) {
	id, err := ulid.ParseStrict(strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a product ID", ErrInvalidID, s)
	}
	return id.String(), nil
}

// NormalizeID returns the canonical form of s. IDs that are not ULIDs
// (for example catalogs imported from elsewhere) are only trimmed.
func NormalizeID(s string) string {
	if id, err := ParseID(s); err == nil {
		return id
	}
	return strings.TrimSpace(s)
}
