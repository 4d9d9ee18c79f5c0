package model

import "github.com/google/uuid"

const MaxSelectedGenres = 3

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	AvatarURL    string
	PasswordHash []byte

	// Genre labels picked during onboarding. Overwritten as a whole,
	// never merged.
	SelectedGenres []string
}

// Placeholder returned for member ids whose profile document is gone.
func UnknownUser(id uuid.UUID) User {
	return User{
		ID:        id,
		Name:      "Unknown User",
		AvatarURL: "/default-avatar.jpg",
	}
}
