package logging

import "github.com/google/uuid"

// GenerateRequestID generates a unique request ID (a random UUID).
func GenerateRequestID() string {
	return uuid.NewString()
}
