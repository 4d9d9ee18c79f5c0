package usecase_user

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
	repo_mocks "github.com/aspecthq/aspect/internal/usecase/user/mocks/repository"
)

type UsecaseUserUnitSuite struct {
	suite.Suite

	usecase *Usecase

	userRepo *repo_mocks.UserRepository

	ctx context.Context
}

func (s *UsecaseUserUnitSuite) BeforeEach(t provider.T) {
	s.userRepo = repo_mocks.NewUserRepository(t)
	s.usecase = New(s.userRepo)
	s.ctx = context.Background()
}

func (s *UsecaseUserUnitSuite) TestProfile(t provider.T) {
	t.Run("Should return the stored profile", func(t provider.T) {
		user := model.User{ID: uuid.New(), Name: "Sam", SelectedGenres: []string{"Thriller", "Film Noir", "Art House"}}

		s.userRepo.On("ByID", s.ctx, user.ID).Return(user, nil).Once()

		got, err := s.usecase.Profile(s.ctx, user.ID)

		assert.NoError(t, err)
		assert.Equal(t, user, got)
		s.userRepo.AssertExpectations(t)
	})

	t.Run("Should report unknown users", func(t provider.T) {
		id := uuid.New()

		s.userRepo.On("ByID", s.ctx, id).Return(model.User{}, ErrUserNotFound).Once()

		_, err := s.usecase.Profile(s.ctx, id)

		assert.ErrorIs(t, err, ErrUserNotFound)
		s.userRepo.AssertExpectations(t)
	})
}

func (s *UsecaseUserUnitSuite) TestSaveGenres(t provider.T) {
	t.Run("Should persist exactly three distinct genres", func(t provider.T) {
		id := uuid.New()
		genres := []string{"Thriller", "Film Noir", "Art House"}

		s.userRepo.On("SaveGenres", s.ctx, id, genres).Return(nil).Once()

		err := s.usecase.SaveGenres(s.ctx, id, genres)

		assert.NoError(t, err)
		s.userRepo.AssertExpectations(t)
	})

	t.Run("Should reject wrong counts without writing", func(t provider.T) {
		s.BeforeEach(t)
		err := s.usecase.SaveGenres(s.ctx, uuid.New(), []string{"Thriller", "Film Noir"})

		assert.ErrorIs(t, err, ErrWrongGenreCount)
		s.userRepo.AssertNotCalled(t, "SaveGenres", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject duplicate labels", func(t provider.T) {
		s.BeforeEach(t)
		err := s.usecase.SaveGenres(s.ctx, uuid.New(), []string{"Thriller", "Thriller", "Art House"})

		assert.ErrorIs(t, err, ErrDuplicateGenres)
		s.userRepo.AssertNotCalled(t, "SaveGenres", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should surface write failures", func(t provider.T) {
		id := uuid.New()
		genres := []string{"Thriller", "Film Noir", "Art House"}
		repoErr := errors.New("repository error")

		s.userRepo.On("SaveGenres", s.ctx, id, genres).Return(repoErr).Once()

		err := s.usecase.SaveGenres(s.ctx, id, genres)

		assert.ErrorIs(t, err, ErrInternal)
		assert.ErrorContains(t, err, repoErr.Error())
		s.userRepo.AssertExpectations(t)
	})
}

func TestUserUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseUserUnitSuite))
}
