package service_auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aspecthq/aspect/internal/model"
)

var (
	ErrInternal      = errors.New("internal error")
	ErrEmailTaken    = errors.New("email already in use")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

//go:generate mockery --name=UserRepository --output=./mocks/repository --filename=repository.go
type UserRepository interface {
	Create(ctx context.Context, user model.User) error
	ByEmail(ctx context.Context, email string) (model.User, error)
	ByID(ctx context.Context, id uuid.UUID) (model.User, error)
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error
}

//go:generate mockery --name=SessionCache --output=./mocks/cache --filename=cache.go
type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Del(key string) error
}

type Service struct {
	userRepository UserRepository
	sessions       SessionCache
	resets         SessionCache
	sessionTTL     time.Duration
	resetTTL       time.Duration
}

func New(
	userRepository UserRepository,
	sessions SessionCache,
	resets SessionCache,
) *Service {
	return &Service{
		userRepository: userRepository,
		sessions:       sessions,
		resets:         resets,
		sessionTTL:     24 * time.Hour,
		resetTTL:       15 * time.Minute,
	}
}

// SignUp creates the profile document at first sign-in and opens a
// session for it.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (model.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", errors.Join(ErrInternal, err)
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		AvatarURL:    "/default-avatar.jpg",
		PasswordHash: hash,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return model.User{}, "", ErrEmailTaken
		}
		return model.User{}, "", errors.Join(ErrInternal, err)
	}

	token, err := s.openSession(user.ID)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (model.User, string, error) {
	user, err := s.userRepository.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.User{}, "", ErrUserNotFound
		}
		return model.User{}, "", errors.Join(ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.User{}, "", ErrWrongPassword
	}

	token, err := s.openSession(user.ID)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

func (s *Service) SignOut(token string) error {
	if err := s.sessions.Del(token); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// UserByToken resolves a session token back to its user.
func (s *Service) UserByToken(ctx context.Context, token string) (model.User, error) {
	raw, err := s.sessions.Get(token)
	if err != nil {
		return model.User{}, errors.Join(ErrInternal, err)
	}
	if raw == "" {
		return model.User{}, ErrInvalidToken
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return model.User{}, errors.Join(ErrInternal, err)
	}

	user, err := s.userRepository.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.User{}, ErrInvalidToken
		}
		return model.User{}, errors.Join(ErrInternal, err)
	}
	return user, nil
}

// RequestPasswordReset issues a short-lived reset token. Whether the
// email exists is not revealed to the caller; an unknown address just
// produces no token.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepository.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil
		}
		return "", errors.Join(ErrInternal, err)
	}

	token := uuid.New().String()
	if err := s.resets.Set(token, user.ID.String(), s.resetTTL); err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	raw, err := s.resets.Get(token)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if raw == "" {
		return ErrInvalidToken
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}

	if err := s.userRepository.SetPasswordHash(ctx, id, hash); err != nil {
		return errors.Join(ErrInternal, err)
	}

	_ = s.resets.Del(token)
	return nil
}

func (s *Service) openSession(userID uuid.UUID) (string, error) {
	token := uuid.New().String()
	if err := s.sessions.Set(token, userID.String(), s.sessionTTL); err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	return token, nil
}
