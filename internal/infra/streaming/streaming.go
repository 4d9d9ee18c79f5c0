// Package infra_streaming wraps the rapidapi streaming-availability
// service: one endpoint, keyed by host + api key headers, returning a
// region-keyed map of provider offers.
package infra_streaming

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aspecthq/aspect/internal/config"
	"github.com/aspecthq/aspect/internal/model"
)

var ErrBadStatus = errors.New("streaming API returned non-OK status")

type Client struct {
	baseURL string
	host    string
	apiKey  string
	http    *http.Client
}

func New(cfg config.Streaming) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		host:    cfg.Host,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type showDTO struct {
	StreamingOptions map[string][]struct {
		Link    string `json:"link"`
		Service struct {
			Name string `json:"name"`
		} `json:"service"`
	} `json:"streamingOptions"`
}

func (c *Client) Offers(ctx context.Context, movieID int64) (map[string][]model.StreamingOffer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/shows/movie/%d", c.baseURL, movieID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var dto showDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, err
	}

	offers := make(map[string][]model.StreamingOffer, len(dto.StreamingOptions))
	for region, regionOffers := range dto.StreamingOptions {
		for _, offer := range regionOffers {
			offers[region] = append(offers[region], model.StreamingOffer{
				Provider: offer.Service.Name,
				Region:   region,
				Link:     offer.Link,
			})
		}
	}
	return offers, nil
}
