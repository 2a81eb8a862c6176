package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// ParseUUIDList parses a comma separated list of UUIDs, skipping blanks.
// Duplicates are dropped, first occurrence wins.
func ParseUUIDList(s string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	seen := map[uuid.UUID]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
