package model

import (
	"time"

	"github.com/google/uuid"
)

const InviteCodeLen = 6

type House struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedBy   uuid.UUID
	InviteCode  string
	Members     []uuid.UUID
	CreatedAt   time.Time
}

// LibraryMovie is a movie placed into a house's shared library, together
// with who added it and when.
type LibraryMovie struct {
	MovieID     int64
	Title       string
	PosterPath  string
	Tagline     string
	ReleaseDate string
	Genres      []string

	AddedBy     uuid.UUID
	AddedByName string
	AddedAt     time.Time
}
