package repository

import (
	"github.com/google/uuid"

	"antisocial-agent/internal/domain"
)

// ErrNotFound is returned when a session does not exist in the store.
var ErrNotFound = domain.ErrSessionNotFound

// validSessionID reports whether id has the shape of a generated session id.
// Anything else cannot name a stored session, and is never used to build a
// file path or key.
func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
