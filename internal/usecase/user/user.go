package usecase_user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aspecthq/aspect/internal/model"
)

var (
	ErrInternal        = errors.New("internal error")
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongGenreCount = errors.New("exactly 3 genres must be selected")
	ErrDuplicateGenres = errors.New("genre labels must be distinct")
)

//go:generate mockery --name=UserRepository --output=./mocks/repository --filename=repository.go
type UserRepository interface {
	ByID(ctx context.Context, id uuid.UUID) (model.User, error)
	ByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
	// SaveGenres overwrites the user's genre list as a whole.
	SaveGenres(ctx context.Context, id uuid.UUID, genres []string) error
}

type Usecase struct {
	userRepository UserRepository
}

func New(userRepository UserRepository) *Usecase {
	return &Usecase{userRepository: userRepository}
}

func (u *Usecase) Profile(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := u.userRepository.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, errors.Join(ErrInternal, err)
	}
	return user, nil
}

// SaveGenres persists exactly 3 distinct labels, replacing any prior
// selection. A failed write surfaces to the caller instead of being
// logged and swallowed.
func (u *Usecase) SaveGenres(ctx context.Context, id uuid.UUID, genres []string) error {
	if len(genres) != model.MaxSelectedGenres {
		return fmt.Errorf("%w: got %d", ErrWrongGenreCount, len(genres))
	}

	seen := make(map[string]bool, len(genres))
	for _, g := range genres {
		if seen[g] {
			return ErrDuplicateGenres
		}
		seen[g] = true
	}

	if err := u.userRepository.SaveGenres(ctx, id, genres); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}
