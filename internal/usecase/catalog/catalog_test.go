package usecase_catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/aspecthq/aspect/internal/model"
	availability_mocks "github.com/aspecthq/aspect/internal/usecase/catalog/mocks/availability"
	metadata_mocks "github.com/aspecthq/aspect/internal/usecase/catalog/mocks/metadata"
)

type UsecaseCatalogUnitSuite struct {
	suite.Suite

	usecase *Usecase

	metadata     *metadata_mocks.MetadataClient
	availability *availability_mocks.AvailabilityClient

	ctx context.Context
}

func (s *UsecaseCatalogUnitSuite) BeforeEach(t provider.T) {
	s.metadata = metadata_mocks.NewMetadataClient(t)
	s.availability = availability_mocks.NewAvailabilityClient(t)
	s.usecase = New(s.metadata, s.availability)
	s.ctx = context.Background()
}

func (s *UsecaseCatalogUnitSuite) TestRegionFromLocale(t provider.T) {
	testCases := []struct {
		locale   string
		expected string
	}{
		{"en-GB", "GB"},
		{"fr-FR", "FR"},
		{"pt-br", "BR"},
		{"en", "US"},
		{"", "US"},
		{"en-", "US"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Locale %q maps to %s", tc.locale, tc.expected), func(t provider.T) {
			assert.Equal(t, tc.expected, RegionFromLocale(tc.locale))
		})
	}
}

func (s *UsecaseCatalogUnitSuite) TestSearch(t provider.T) {
	t.Run("Should reject blank queries without calling the client", func(t provider.T) {
		_, err := s.usecase.Search(s.ctx, "  ")

		assert.ErrorIs(t, err, ErrEmptyQuery)
		s.metadata.AssertNotCalled(t, "Search", s.ctx, "  ")
	})

	t.Run("Should wrap client failures", func(t provider.T) {
		clientErr := errors.New("upstream down")

		s.metadata.On("Search", s.ctx, "matrix").Return(nil, clientErr).Once()

		_, err := s.usecase.Search(s.ctx, "matrix")

		assert.ErrorIs(t, err, ErrFailedToLoad)
		assert.ErrorContains(t, err, clientErr.Error())
		s.metadata.AssertExpectations(t)
	})
}

func (s *UsecaseCatalogUnitSuite) TestAvailability(t provider.T) {
	offer := func(provider, region string) model.StreamingOffer {
		return model.StreamingOffer{Provider: provider, Region: region, Link: "https://example.com"}
	}

	t.Run("Should prefer the viewer's region", func(t provider.T) {
		s.availability.On("Offers", s.ctx, int64(603)).Return(map[string][]model.StreamingOffer{
			"GB": {offer("netflix", "GB")},
			"US": {offer("hulu", "US")},
		}, nil).Once()

		offers, err := s.usecase.Availability(s.ctx, 603, "en-GB")

		assert.NoError(t, err)
		assert.Len(t, offers, 1)
		assert.Equal(t, "netflix", offers[0].Provider)
		s.availability.AssertExpectations(t)
	})

	t.Run("Should cap local offers at five", func(t provider.T) {
		local := make([]model.StreamingOffer, 0, 8)
		for i := 0; i < 8; i++ {
			local = append(local, offer(fmt.Sprintf("provider-%d", i), "US"))
		}

		s.availability.On("Offers", s.ctx, int64(603)).Return(map[string][]model.StreamingOffer{
			"US": local,
		}, nil).Once()

		offers, err := s.usecase.Availability(s.ctx, 603, "en-US")

		assert.NoError(t, err)
		assert.Len(t, offers, 5)
		s.availability.AssertExpectations(t)
	})

	t.Run("Should fall back across regions in deterministic order", func(t provider.T) {
		s.availability.On("Offers", s.ctx, int64(603)).Return(map[string][]model.StreamingOffer{
			"FR": {offer("netflix", "FR")},
			"DE": {offer("netflix", "DE")},
		}, nil).Once()

		offers, err := s.usecase.Availability(s.ctx, 603, "en-US")

		assert.NoError(t, err)
		assert.Len(t, offers, 2)
		assert.Equal(t, "DE", offers[0].Region)
		assert.Equal(t, "FR", offers[1].Region)
		s.availability.AssertExpectations(t)
	})

	t.Run("Should deduplicate fallback offers by provider and region", func(t provider.T) {
		s.availability.On("Offers", s.ctx, int64(603)).Return(map[string][]model.StreamingOffer{
			"DE": {offer("netflix", "DE"), offer("netflix", "DE"), offer("hulu", "DE")},
		}, nil).Once()

		offers, err := s.usecase.Availability(s.ctx, 603, "en-US")

		assert.NoError(t, err)
		assert.Len(t, offers, 2)
		s.availability.AssertExpectations(t)
	})

	t.Run("Should report when no region has offers", func(t provider.T) {
		s.availability.On("Offers", s.ctx, int64(603)).
			Return(map[string][]model.StreamingOffer{}, nil).Once()

		_, err := s.usecase.Availability(s.ctx, 603, "en-US")

		assert.ErrorIs(t, err, ErrNoStreamingInfo)
		s.availability.AssertExpectations(t)
	})

	t.Run("Should wrap client failures", func(t provider.T) {
		clientErr := errors.New("upstream down")

		s.availability.On("Offers", s.ctx, int64(603)).Return(nil, clientErr).Once()

		_, err := s.usecase.Availability(s.ctx, 603, "en-US")

		assert.ErrorIs(t, err, ErrFailedToLoad)
		s.availability.AssertExpectations(t)
	})
}

func TestCatalogUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseCatalogUnitSuite))
}
