package utils

import "github.com/google/uuid"

// GenerateID создает уникальный ID (UUIDv4 в строковом виде).
func GenerateID() string {
	return uuid.NewString()
}
