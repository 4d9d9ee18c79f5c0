package usecase_chat

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aspecthq/aspect/internal/model"
	broadcaster_mocks "github.com/aspecthq/aspect/internal/usecase/chat/mocks/broadcaster"
	repo_mocks "github.com/aspecthq/aspect/internal/usecase/chat/mocks/repository"
)

type UsecaseChatUnitSuite struct {
	suite.Suite

	usecase *Usecase

	messageRepo *repo_mocks.MessageRepository
	broadcaster *broadcaster_mocks.Broadcaster

	ctx context.Context
}

func (s *UsecaseChatUnitSuite) BeforeEach(t provider.T) {
	s.messageRepo = repo_mocks.NewMessageRepository(t)
	s.broadcaster = broadcaster_mocks.NewBroadcaster(t)
	s.usecase = New(s.messageRepo, s.broadcaster)
	s.ctx = context.Background()
}

func (s *UsecaseChatUnitSuite) TestSend(t provider.T) {
	t.Run("Should persist then broadcast", func(t provider.T) {
		houseID := uuid.New()
		userID := uuid.New()

		s.messageRepo.On("Append", s.ctx, mock.AnythingOfType("model.Message")).Return(nil).Once()
		s.broadcaster.On("BroadcastMessage", houseID, mock.AnythingOfType("model.Message")).Once()

		msg, err := s.usecase.Send(s.ctx, houseID, userID, "movie night at 8?")

		assert.NoError(t, err)
		assert.Equal(t, houseID, msg.HouseID)
		assert.Equal(t, userID, msg.UserID)
		assert.Equal(t, "movie night at 8?", msg.Text)
		s.messageRepo.AssertExpectations(t)
		s.broadcaster.AssertExpectations(t)
	})

	t.Run("Should reject blank messages without touching the store", func(t provider.T) {
		s.BeforeEach(t)
		_, err := s.usecase.Send(s.ctx, uuid.New(), uuid.New(), "   ")

		assert.ErrorIs(t, err, ErrEmptyMessage)
		s.messageRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		s.broadcaster.AssertNotCalled(t, "BroadcastMessage", mock.Anything, mock.Anything)
	})

	t.Run("Should not broadcast when persistence fails", func(t provider.T) {
		s.BeforeEach(t)
		repoErr := errors.New("repository error")

		s.messageRepo.On("Append", s.ctx, mock.AnythingOfType("model.Message")).Return(repoErr).Once()

		_, err := s.usecase.Send(s.ctx, uuid.New(), uuid.New(), "hello")

		assert.ErrorIs(t, err, ErrInternal)
		assert.ErrorContains(t, err, repoErr.Error())
		s.broadcaster.AssertNotCalled(t, "BroadcastMessage", mock.Anything, mock.Anything)
		s.messageRepo.AssertExpectations(t)
	})

	t.Run("Should report unknown house", func(t provider.T) {
		s.messageRepo.On("Append", s.ctx, mock.AnythingOfType("model.Message")).
			Return(ErrResourceNotFound).Once()

		_, err := s.usecase.Send(s.ctx, uuid.New(), uuid.New(), "hello")

		assert.ErrorIs(t, err, ErrResourceNotFound)
		s.messageRepo.AssertExpectations(t)
	})
}

func (s *UsecaseChatUnitSuite) TestHistory(t provider.T) {
	t.Run("Should return messages in stored order", func(t provider.T) {
		houseID := uuid.New()
		msgs := []model.Message{
			{ID: uuid.New(), Text: "first"},
			{ID: uuid.New(), Text: "second"},
		}

		s.messageRepo.On("History", s.ctx, houseID).Return(msgs, nil).Once()

		got, err := s.usecase.History(s.ctx, houseID)

		assert.NoError(t, err)
		assert.Equal(t, msgs, got)
		s.messageRepo.AssertExpectations(t)
	})

	t.Run("Should wrap repository failures", func(t provider.T) {
		repoErr := errors.New("repository error")

		s.messageRepo.On("History", s.ctx, mock.AnythingOfType("uuid.UUID")).
			Return(nil, repoErr).Once()

		_, err := s.usecase.History(s.ctx, uuid.New())

		assert.ErrorIs(t, err, ErrInternal)
		s.messageRepo.AssertExpectations(t)
	})
}

func TestChatUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseChatUnitSuite))
}
