package usecase_house

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aspecthq/aspect/internal/model"
)

var (
	ErrInternal          = errors.New("internal error")
	ErrCodeConflict      = errors.New("invite code conflict")
	ErrCodesUnavailable  = errors.New("no available invite codes")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrAlreadyInHouse    = errors.New("user already belongs to a house")
	ErrResourceNotFound  = errors.New("no such resource")
	ErrEmptyLibrary      = errors.New("no films found in your house's library")
)

//go:generate mockery --name=HouseRepository --output=./mocks/repository --filename=repository.go
type HouseRepository interface {
	// Create inserts the house and its creator's membership atomically.
	Create(ctx context.Context, house model.House) error
	ByID(ctx context.Context, id uuid.UUID) (model.House, error)
	ByInviteCode(ctx context.Context, code string) (model.House, error)
	// AddMember links the user to the house and the house to the user in
	// one transaction.
	AddMember(ctx context.Context, houseID, userID uuid.UUID) error
	HouseOf(ctx context.Context, userID uuid.UUID) (model.House, error)

	// ToggleMovie atomically removes the movie if present, inserts it
	// otherwise. Reports whether the movie ended up in the library.
	ToggleMovie(ctx context.Context, houseID uuid.UUID, movie model.LibraryMovie) (bool, error)
	Library(ctx context.Context, houseID uuid.UUID) ([]model.LibraryMovie, error)
}

//go:generate mockery --name=UserDirectory --output=./mocks/directory --filename=directory.go
type UserDirectory interface {
	ByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
}

type Usecase struct {
	houseRepository HouseRepository
	userDirectory   UserDirectory
	rng             *rand.Rand
}

func New(
	houseRepository HouseRepository,
	userDirectory UserDirectory,
	rng *rand.Rand,
) *Usecase {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Usecase{
		houseRepository: houseRepository,
		userDirectory:   userDirectory,
		rng:             rng,
	}
}

// Create builds a house owned by creatorID. Invite codes can collide,
// so creation retries with a fresh code.
func (u *Usecase) Create(ctx context.Context, name, description string, creatorID uuid.UUID) (model.House, error) {
	var retries = 3
	for retries > 0 {
		house := model.House{
			ID:          uuid.New(),
			Name:        name,
			Description: description,
			CreatedBy:   creatorID,
			InviteCode:  u.buildInviteCode(),
			Members:     []uuid.UUID{creatorID},
			CreatedAt:   time.Now().UTC(),
		}

		err := u.houseRepository.Create(ctx, house)
		switch {
		case err == nil:
			return house, nil
		case errors.Is(err, ErrCodeConflict):
			retries--
		case errors.Is(err, ErrAlreadyInHouse):
			return model.House{}, ErrAlreadyInHouse
		default:
			return model.House{}, errors.Join(ErrInternal, err)
		}
	}
	return model.House{}, ErrCodesUnavailable
}

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func (u *Usecase) buildInviteCode() string {
	var builder strings.Builder
	builder.Grow(model.InviteCodeLen)

	for i := 0; i < model.InviteCodeLen; i++ {
		builder.WriteByte(inviteCodeAlphabet[u.rng.Intn(len(inviteCodeAlphabet))])
	}

	return builder.String()
}

// Join adds the user to the house behind the invite code. An unknown
// code is an application-level error, not a system fault, and performs
// no writes.
func (u *Usecase) Join(ctx context.Context, inviteCode string, userID uuid.UUID) (model.House, error) {
	house, err := u.houseRepository.ByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(inviteCode)))
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.House{}, ErrInvalidInviteCode
		}
		return model.House{}, errors.Join(ErrInternal, err)
	}

	if err := u.houseRepository.AddMember(ctx, house.ID, userID); err != nil {
		if errors.Is(err, ErrAlreadyInHouse) {
			return model.House{}, ErrAlreadyInHouse
		}
		return model.House{}, errors.Join(ErrInternal, err)
	}

	house.Members = append(house.Members, userID)
	return house, nil
}

// HouseOf returns the user's current house.
func (u *Usecase) HouseOf(ctx context.Context, userID uuid.UUID) (model.House, error) {
	house, err := u.houseRepository.HouseOf(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.House{}, ErrResourceNotFound
		}
		return model.House{}, errors.Join(ErrInternal, err)
	}
	return house, nil
}

// Members resolves member ids to profiles. Ids with no profile degrade
// to a placeholder instead of failing the whole screen.
func (u *Usecase) Members(ctx context.Context, houseID uuid.UUID) ([]model.User, error) {
	house, err := u.houseRepository.ByID(ctx, houseID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}

	found, err := u.userDirectory.ByIDs(ctx, house.Members)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	byID := make(map[uuid.UUID]model.User, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}

	members := make([]model.User, 0, len(house.Members))
	for _, id := range house.Members {
		if m, ok := byID[id]; ok {
			members = append(members, m)
		} else {
			members = append(members, model.UnknownUser(id))
		}
	}
	return members, nil
}

// ToggleMovie flips library membership for the movie: present means
// remove, absent means add with the adder's identity and a timestamp.
func (u *Usecase) ToggleMovie(ctx context.Context, houseID uuid.UUID, adder model.User, meta model.MovieMeta) (bool, error) {
	movie := model.LibraryMovie{
		MovieID:     meta.ID,
		Title:       meta.Title,
		PosterPath:  meta.PosterPath,
		Tagline:     meta.Tagline,
		ReleaseDate: meta.ReleaseDate,
		Genres:      meta.Genres,
		AddedBy:     adder.ID,
		AddedByName: adder.Name,
		AddedAt:     time.Now().UTC(),
	}

	added, err := u.houseRepository.ToggleMovie(ctx, houseID, movie)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, ErrResourceNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}
	return added, nil
}

func (u *Usecase) Library(ctx context.Context, houseID uuid.UUID) ([]model.LibraryMovie, error) {
	movies, err := u.houseRepository.Library(ctx, houseID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return movies, nil
}

// RandomPick chooses uniformly from the house library. An empty library
// is reported as such and triggers no further work.
func (u *Usecase) RandomPick(ctx context.Context, houseID uuid.UUID) (model.LibraryMovie, error) {
	movies, err := u.Library(ctx, houseID)
	if err != nil {
		return model.LibraryMovie{}, err
	}
	if len(movies) == 0 {
		return model.LibraryMovie{}, ErrEmptyLibrary
	}
	return movies[u.rng.Intn(len(movies))], nil
}
