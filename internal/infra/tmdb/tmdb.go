// Package infra_tmdb is a thin client for the TMDB v3 REST API. Only
// the fields the app renders are decoded; everything else is ignored.
package infra_tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aspecthq/aspect/internal/config"
	"github.com/aspecthq/aspect/internal/model"
)

var ErrBadStatus = errors.New("metadata API returned non-OK status")

const language = "en-US"

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(cfg config.TMDB) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type movieDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	Tagline     string `json:"tagline"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	Budget      int64  `json:"budget"`
	Revenue     int64  `json:"revenue"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

func (dto movieDTO) toModel() model.MovieMeta {
	genres := make([]string, 0, len(dto.Genres))
	for _, g := range dto.Genres {
		genres = append(genres, g.Name)
	}
	return model.MovieMeta{
		ID:          dto.ID,
		Title:       dto.Title,
		PosterPath:  dto.PosterPath,
		Tagline:     dto.Tagline,
		ReleaseDate: dto.ReleaseDate,
		Overview:    dto.Overview,
		Genres:      genres,
		Budget:      dto.Budget,
		Revenue:     dto.Revenue,
	}
}

type listDTO struct {
	Results []movieDTO `json:"results"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Popular(ctx context.Context) ([]model.MovieMeta, error) {
	var list listDTO
	params := url.Values{}
	params.Set("page", "1")
	if err := c.get(ctx, "/movie/popular", params, &list); err != nil {
		return nil, err
	}

	movies := make([]model.MovieMeta, 0, len(list.Results))
	for _, dto := range list.Results {
		movies = append(movies, dto.toModel())
	}
	return movies, nil
}

func (c *Client) Search(ctx context.Context, query string) ([]model.MovieMeta, error) {
	var list listDTO
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	if err := c.get(ctx, "/search/movie", params, &list); err != nil {
		return nil, err
	}

	movies := make([]model.MovieMeta, 0, len(list.Results))
	for _, dto := range list.Results {
		movies = append(movies, dto.toModel())
	}
	return movies, nil
}

func (c *Client) Details(ctx context.Context, movieID int64) (model.MovieMeta, error) {
	var dto movieDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &dto); err != nil {
		return model.MovieMeta{}, err
	}
	return dto.toModel(), nil
}

type creditsDTO struct {
	Cast []struct {
		Name      string `json:"name"`
		Character string `json:"character"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

func (c *Client) Credits(ctx context.Context, movieID int64) (model.Credits, error) {
	var dto creditsDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, &dto); err != nil {
		return model.Credits{}, err
	}

	credits := model.Credits{
		Cast: make([]model.CastMember, 0, len(dto.Cast)),
	}
	for _, member := range dto.Cast {
		credits.Cast = append(credits.Cast, model.CastMember{
			Name:      member.Name,
			Character: member.Character,
		})
	}
	for _, member := range dto.Crew {
		if member.Job == "Director" {
			credits.Director = member.Name
			break
		}
	}
	return credits, nil
}

type videosDTO struct {
	Results []struct {
		Key  string `json:"key"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

func (c *Client) Videos(ctx context.Context, movieID int64) ([]model.Video, error) {
	var dto videosDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), nil, &dto); err != nil {
		return nil, err
	}

	videos := make([]model.Video, 0, len(dto.Results))
	for _, v := range dto.Results {
		videos = append(videos, model.Video{Key: v.Key, Site: v.Site, Type: v.Type})
	}
	return videos, nil
}
