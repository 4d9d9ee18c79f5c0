package service_auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/aspecthq/aspect/internal/model"
	cache_mocks "github.com/aspecthq/aspect/internal/service/auth/mocks/cache"
	repo_mocks "github.com/aspecthq/aspect/internal/service/auth/mocks/repository"
)

type ServiceAuthUnitSuite struct {
	suite.Suite

	service *Service

	userRepo *repo_mocks.UserRepository
	sessions *cache_mocks.SessionCache
	resets   *cache_mocks.SessionCache

	ctx context.Context
}

func (s *ServiceAuthUnitSuite) BeforeEach(t provider.T) {
	s.userRepo = repo_mocks.NewUserRepository(t)
	s.sessions = cache_mocks.NewSessionCache(t)
	s.resets = cache_mocks.NewSessionCache(t)
	s.service = New(s.userRepo, s.sessions, s.resets)
	s.ctx = context.Background()
}

func (s *ServiceAuthUnitSuite) TestSignUp(t provider.T) {
	t.Run("Should store a bcrypt hash and open a session", func(t provider.T) {
		var created model.User
		s.userRepo.On("Create", s.ctx, mock.AnythingOfType("model.User")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(model.User)
			}).
			Return(nil).Once()
		s.sessions.On("Set", mock.AnythingOfType("string"), mock.AnythingOfType("string"), 24*time.Hour).
			Return(nil).Once()

		user, token, err := s.service.SignUp(s.ctx, "Sam", "sam@example.com", "hunter2hunter2")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "sam@example.com", user.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword(created.PasswordHash, []byte("hunter2hunter2")))
		s.userRepo.AssertExpectations(t)
		s.sessions.AssertExpectations(t)
	})

	t.Run("Should report a taken email", func(t provider.T) {
		s.BeforeEach(t)
		s.userRepo.On("Create", s.ctx, mock.AnythingOfType("model.User")).
			Return(ErrEmailTaken).Once()

		_, _, err := s.service.SignUp(s.ctx, "Sam", "sam@example.com", "hunter2hunter2")

		assert.ErrorIs(t, err, ErrEmailTaken)
		s.sessions.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
		s.userRepo.AssertExpectations(t)
	})
}

func (s *ServiceAuthUnitSuite) TestSignIn(t provider.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.DefaultCost)
	stored := model.User{ID: uuid.New(), Email: "sam@example.com", PasswordHash: hash}

	t.Run("Should open a session for valid credentials", func(t provider.T) {
		s.userRepo.On("ByEmail", s.ctx, stored.Email).Return(stored, nil).Once()
		s.sessions.On("Set", mock.AnythingOfType("string"), stored.ID.String(), 24*time.Hour).
			Return(nil).Once()

		user, token, err := s.service.SignIn(s.ctx, stored.Email, "hunter2hunter2")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, stored.ID, user.ID)
		s.userRepo.AssertExpectations(t)
		s.sessions.AssertExpectations(t)
	})

	t.Run("Should reject a wrong password", func(t provider.T) {
		s.BeforeEach(t)
		s.userRepo.On("ByEmail", s.ctx, stored.Email).Return(stored, nil).Once()

		_, _, err := s.service.SignIn(s.ctx, stored.Email, "letmein")

		assert.ErrorIs(t, err, ErrWrongPassword)
		s.sessions.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
		s.userRepo.AssertExpectations(t)
	})

	t.Run("Should reject an unknown email", func(t provider.T) {
		s.userRepo.On("ByEmail", s.ctx, "nobody@example.com").
			Return(model.User{}, ErrUserNotFound).Once()

		_, _, err := s.service.SignIn(s.ctx, "nobody@example.com", "hunter2hunter2")

		assert.ErrorIs(t, err, ErrUserNotFound)
		s.userRepo.AssertExpectations(t)
	})
}

func (s *ServiceAuthUnitSuite) TestUserByToken(t provider.T) {
	t.Run("Should resolve a live session", func(t provider.T) {
		user := model.User{ID: uuid.New(), Name: "Sam"}

		s.sessions.On("Get", "token-1").Return(user.ID.String(), nil).Once()
		s.userRepo.On("ByID", s.ctx, user.ID).Return(user, nil).Once()

		got, err := s.service.UserByToken(s.ctx, "token-1")

		assert.NoError(t, err)
		assert.Equal(t, user, got)
		s.sessions.AssertExpectations(t)
		s.userRepo.AssertExpectations(t)
	})

	t.Run("Should reject an expired or unknown token", func(t provider.T) {
		s.sessions.On("Get", "stale").Return("", nil).Once()

		_, err := s.service.UserByToken(s.ctx, "stale")

		assert.ErrorIs(t, err, ErrInvalidToken)
		s.sessions.AssertExpectations(t)
	})

	t.Run("Should treat a vanished user as an invalid token", func(t provider.T) {
		id := uuid.New()

		s.sessions.On("Get", "token-2").Return(id.String(), nil).Once()
		s.userRepo.On("ByID", s.ctx, id).Return(model.User{}, ErrUserNotFound).Once()

		_, err := s.service.UserByToken(s.ctx, "token-2")

		assert.ErrorIs(t, err, ErrInvalidToken)
		s.sessions.AssertExpectations(t)
		s.userRepo.AssertExpectations(t)
	})
}

func (s *ServiceAuthUnitSuite) TestPasswordReset(t provider.T) {
	t.Run("Should not reveal unknown emails", func(t provider.T) {
		s.userRepo.On("ByEmail", s.ctx, "nobody@example.com").
			Return(model.User{}, ErrUserNotFound).Once()

		token, err := s.service.RequestPasswordReset(s.ctx, "nobody@example.com")

		assert.NoError(t, err)
		assert.Empty(t, token)
		s.resets.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
		s.userRepo.AssertExpectations(t)
	})

	t.Run("Should issue a short-lived token for known emails", func(t provider.T) {
		user := model.User{ID: uuid.New(), Email: "sam@example.com"}

		s.userRepo.On("ByEmail", s.ctx, user.Email).Return(user, nil).Once()
		s.resets.On("Set", mock.AnythingOfType("string"), user.ID.String(), 15*time.Minute).
			Return(nil).Once()

		token, err := s.service.RequestPasswordReset(s.ctx, user.Email)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		s.resets.AssertExpectations(t)
		s.userRepo.AssertExpectations(t)
	})

	t.Run("Should replace the password for a valid token", func(t provider.T) {
		id := uuid.New()

		s.resets.On("Get", "reset-1").Return(id.String(), nil).Once()
		s.userRepo.On("SetPasswordHash", s.ctx, id, mock.AnythingOfType("[]uint8")).
			Run(func(args mock.Arguments) {
				hash := args.Get(2).([]byte)
				assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("newpassword1")))
			}).
			Return(nil).Once()
		s.resets.On("Del", "reset-1").Return(nil).Once()

		err := s.service.ResetPassword(s.ctx, "reset-1", "newpassword1")

		assert.NoError(t, err)
		s.resets.AssertExpectations(t)
		s.userRepo.AssertExpectations(t)
	})

	t.Run("Should reject an expired reset token", func(t provider.T) {
		s.BeforeEach(t)
		s.resets.On("Get", "stale").Return("", nil).Once()

		err := s.service.ResetPassword(s.ctx, "stale", "newpassword1")

		assert.ErrorIs(t, err, ErrInvalidToken)
		s.userRepo.AssertNotCalled(t, "SetPasswordHash", mock.Anything, mock.Anything, mock.Anything)
		s.resets.AssertExpectations(t)
	})
}

func TestAuthUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ServiceAuthUnitSuite))
}
