// Package identity generates collision-resistant job identifiers.
package identity

import (
	"fmt"

	"github.com/google/uuid"
)

// NewJobID produces a random 128-bit job identifier in UUIDv4 textual form
// (lowercase hex, hyphenated 8-4-4-4-12). The scheduler relies on the
// cryptographically negligible collision probability rather than checking
// uniqueness up front; an error here means the entropy source failed.
func NewJobID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate job id: %w", err)
	}
	return id.String(), nil
}
