package tool

import "github.com/google/uuid"

// GenerateUUIDV7 returns a time-ordered UUID, used for trace ids and payment
// reference numbers.
func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}
