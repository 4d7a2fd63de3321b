package store

import (
	"strings"

	"github.com/google/uuid"
)

// newEntryID returns e-<8 hex chars>, taken from a random uuid.
func newEntryID() string {
	u := uuid.New()
	return "e-" + strings.ReplaceAll(u.String(), "-", "")[:8]
}
