package usecase_catalog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/aspecthq/aspect/internal/model"
)

var (
	ErrFailedToLoad    = errors.New("failed to load")
	ErrNoStreamingInfo = errors.New("no streaming information available in any region")
	ErrEmptyQuery      = errors.New("search query cannot be empty")
)

const (
	fallbackRegion = "US"
	maxOffers      = 5
)

//go:generate mockery --name=MetadataClient --output=./mocks/metadata --filename=metadata.go
type MetadataClient interface {
	Popular(ctx context.Context) ([]model.MovieMeta, error)
	Search(ctx context.Context, query string) ([]model.MovieMeta, error)
	Details(ctx context.Context, movieID int64) (model.MovieMeta, error)
	Credits(ctx context.Context, movieID int64) (model.Credits, error)
	Videos(ctx context.Context, movieID int64) ([]model.Video, error)
}

// AvailabilityClient returns provider offers keyed by region code.
//
//go:generate mockery --name=AvailabilityClient --output=./mocks/availability --filename=availability.go
type AvailabilityClient interface {
	Offers(ctx context.Context, movieID int64) (map[string][]model.StreamingOffer, error)
}

type Usecase struct {
	metadata     MetadataClient
	availability AvailabilityClient
}

func New(
	metadata MetadataClient,
	availability AvailabilityClient,
) *Usecase {
	return &Usecase{
		metadata:     metadata,
		availability: availability,
	}
}

func (u *Usecase) Popular(ctx context.Context) ([]model.MovieMeta, error) {
	movies, err := u.metadata.Popular(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}
	return movies, nil
}

func (u *Usecase) Search(ctx context.Context, query string) ([]model.MovieMeta, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	movies, err := u.metadata.Search(ctx, query)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}
	return movies, nil
}

func (u *Usecase) Details(ctx context.Context, movieID int64) (model.MovieMeta, error) {
	meta, err := u.metadata.Details(ctx, movieID)
	if err != nil {
		return model.MovieMeta{}, errors.Join(ErrFailedToLoad, err)
	}
	return meta, nil
}

func (u *Usecase) Credits(ctx context.Context, movieID int64) (model.Credits, error) {
	credits, err := u.metadata.Credits(ctx, movieID)
	if err != nil {
		return model.Credits{}, errors.Join(ErrFailedToLoad, err)
	}
	return credits, nil
}

func (u *Usecase) Videos(ctx context.Context, movieID int64) ([]model.Video, error) {
	videos, err := u.metadata.Videos(ctx, movieID)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}
	return videos, nil
}

// RegionFromLocale extracts the country part of a BCP 47 locale tag
// ("en-GB" → "GB"), falling back to US when there is none.
func RegionFromLocale(locale string) string {
	parts := strings.Split(locale, "-")
	if len(parts) < 2 || parts[1] == "" {
		return fallbackRegion
	}
	return strings.ToUpper(parts[1])
}

// Availability picks offers for the viewer's region, capped at 5. With
// nothing local it falls back to other regions' offers, deduplicated by
// provider name + region. Nothing anywhere is ErrNoStreamingInfo.
func (u *Usecase) Availability(ctx context.Context, movieID int64, locale string) ([]model.StreamingOffer, error) {
	byRegion, err := u.availability.Offers(ctx, movieID)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}

	region := RegionFromLocale(locale)
	if local := byRegion[region]; len(local) > 0 {
		if len(local) > maxOffers {
			local = local[:maxOffers]
		}
		return local, nil
	}

	// Deterministic fallback order across regions.
	regions := make([]string, 0, len(byRegion))
	for r := range byRegion {
		if r != region {
			regions = append(regions, r)
		}
	}
	sort.Strings(regions)

	seen := make(map[string]bool)
	fallback := make([]model.StreamingOffer, 0, maxOffers)
	for _, r := range regions {
		for _, offer := range byRegion[r] {
			key := offer.Provider + "-" + r
			if seen[key] {
				continue
			}
			seen[key] = true
			offer.Region = r
			fallback = append(fallback, offer)
			if len(fallback) == maxOffers {
				return fallback, nil
			}
		}
	}

	if len(fallback) == 0 {
		return nil, ErrNoStreamingInfo
	}
	return fallback, nil
}
