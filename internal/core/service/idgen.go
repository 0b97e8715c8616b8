package service

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces a prefixed identifier such as "SO-1A2B3C4D".
// Injectable so tests can supply a deterministic sequence.
type IDGenerator func(prefix string) string

// RandomID takes the first 8 hex characters of a random UUID, upper-cased.
// Uniqueness is probabilistic; no existence check-and-retry is performed.
func RandomID(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
