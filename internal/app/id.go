package app

import "github.com/google/uuid"

// generateID returns a random UUIDv4 string for a new record.
func generateID() string {
	return uuid.NewString()
}
