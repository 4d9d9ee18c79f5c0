package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID      uuid.UUID
	HouseID uuid.UUID
	UserID  uuid.UUID
	Text    string
	SentAt  time.Time
}
