package usecase_chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aspecthq/aspect/internal/model"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrEmptyMessage     = errors.New("message cannot be empty")
	ErrResourceNotFound = errors.New("no such resource")
)

//go:generate mockery --name=MessageRepository --output=./mocks/repository --filename=repository.go
type MessageRepository interface {
	Append(ctx context.Context, msg model.Message) error
	History(ctx context.Context, houseID uuid.UUID) ([]model.Message, error)
}

// Broadcaster pushes an accepted message to the house's live listeners.
// Delivery order is whatever the store accepted; no client-side reorder.
//
//go:generate mockery --name=Broadcaster --output=./mocks/broadcaster --filename=broadcaster.go
type Broadcaster interface {
	BroadcastMessage(houseID uuid.UUID, msg model.Message)
}

type Usecase struct {
	messageRepository MessageRepository
	broadcaster       Broadcaster
}

func New(
	messageRepository MessageRepository,
	broadcaster Broadcaster,
) *Usecase {
	return &Usecase{
		messageRepository: messageRepository,
		broadcaster:       broadcaster,
	}
}

// Send appends the message and fans it out to connected housemates.
func (u *Usecase) Send(ctx context.Context, houseID, userID uuid.UUID, text string) (model.Message, error) {
	if strings.TrimSpace(text) == "" {
		return model.Message{}, ErrEmptyMessage
	}

	msg := model.Message{
		ID:      uuid.New(),
		HouseID: houseID,
		UserID:  userID,
		Text:    text,
		SentAt:  time.Now().UTC(),
	}

	if err := u.messageRepository.Append(ctx, msg); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Message{}, ErrResourceNotFound
		}
		return model.Message{}, errors.Join(ErrInternal, err)
	}

	u.broadcaster.BroadcastMessage(houseID, msg)
	return msg, nil
}

func (u *Usecase) History(ctx context.Context, houseID uuid.UUID) ([]model.Message, error) {
	msgs, err := u.messageRepository.History(ctx, houseID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return msgs, nil
}
