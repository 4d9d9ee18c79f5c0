package http_catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	http_common "github.com/aspecthq/aspect/internal/delivery/http/common"
	"github.com/aspecthq/aspect/internal/model"
	usecase_catalog "github.com/aspecthq/aspect/internal/usecase/catalog"
)

type Controller struct {
	usecase *usecase_catalog.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_catalog.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	{
		movies.GET("/popular", c.popular)
		movies.GET("/search", c.search)
		movies.GET("/:movie_id", c.details)
		movies.GET("/:movie_id/credits", c.credits)
		movies.GET("/:movie_id/videos", c.videos)
		movies.GET("/:movie_id/availability", c.availability)
	}
}

type MovieResponseDTO struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path"`
	Tagline     string   `json:"tagline"`
	ReleaseDate string   `json:"release_date"`
	Overview    string   `json:"overview"`
	Genres      []string `json:"genres"`
	Budget      int64    `json:"budget"`
	Revenue     int64    `json:"revenue"`
}

func toMovieDTO(meta model.MovieMeta) MovieResponseDTO {
	return MovieResponseDTO{
		ID:          meta.ID,
		Title:       meta.Title,
		PosterPath:  meta.PosterPath,
		Tagline:     meta.Tagline,
		ReleaseDate: meta.ReleaseDate,
		Overview:    meta.Overview,
		Genres:      meta.Genres,
		Budget:      meta.Budget,
		Revenue:     meta.Revenue,
	}
}

func toMovieDTOs(metas []model.MovieMeta) []MovieResponseDTO {
	dto := make([]MovieResponseDTO, 0, len(metas))
	for _, m := range metas {
		dto = append(dto, toMovieDTO(m))
	}
	return dto
}

// Popular возвращает популярные фильмы
// @Summary Популярные фильмы
// @Tags Movies
// @Success 200 {array} MovieResponseDTO "Фильмы"
// @Failure 502 {object} http_common.ErrorResponse "Источник метаданных недоступен"
// @Router /movies/popular [get]
func (c *Controller) popular(ctx *gin.Context) {
	movies, err := c.usecase.Popular(ctx)
	if err != nil {
		c.logger.Error("failed to load popular movies", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "failed to load",
		})
		return
	}
	ctx.JSON(http.StatusOK, toMovieDTOs(movies))
}

// Search ищет фильмы по названию
// @Summary Поиск фильмов
// @Tags Movies
// @Param query query string true "Поисковый запрос"
// @Success 200 {array} MovieResponseDTO "Результаты"
// @Failure 502 {object} http_common.ErrorResponse "Источник метаданных недоступен"
// @Router /movies/search [get]
func (c *Controller) search(ctx *gin.Context) {
	movies, err := c.usecase.Search(ctx, ctx.Query("query"))
	if err != nil {
		if errors.Is(err, usecase_catalog.ErrEmptyQuery) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "search query cannot be empty",
			})
			return
		}
		c.logger.Error("failed to search movies", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "failed to load",
		})
		return
	}
	ctx.JSON(http.StatusOK, toMovieDTOs(movies))
}

func movieID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("movie_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid movie id",
		})
		return 0, false
	}
	return id, true
}

// Details возвращает карточку фильма
// @Summary Карточка фильма
// @Tags Movies
// @Param movie_id path int true "ID фильма"
// @Success 200 {object} MovieResponseDTO "Фильм"
// @Failure 502 {object} http_common.ErrorResponse "Источник метаданных недоступен"
// @Router /movies/{movie_id} [get]
func (c *Controller) details(ctx *gin.Context) {
	id, ok := movieID(ctx)
	if !ok {
		return
	}

	meta, err := c.usecase.Details(ctx, id)
	if err != nil {
		c.logger.Error("failed to load movie details", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "failed to load",
		})
		return
	}
	ctx.JSON(http.StatusOK, toMovieDTO(meta))
}

type CastMemberDTO struct {
	Name      string `json:"name"`
	Character string `json:"character"`
}

type CreditsResponseDTO struct {
	Director string          `json:"director"`
	Cast     []CastMemberDTO `json:"cast"`
}

// Credits возвращает режиссера и актерский состав
// @Summary Съемочная группа
// @Tags Movies
// @Param movie_id path int true "ID фильма"
// @Success 200 {object} CreditsResponseDTO "Состав"
// @Failure 502 {object} http_common.ErrorResponse "Источник метаданных недоступен"
// @Router /movies/{movie_id}/credits [get]
func (c *Controller) credits(ctx *gin.Context) {
	id, ok := movieID(ctx)
	if !ok {
		return
	}

	credits, err := c.usecase.Credits(ctx, id)
	if err != nil {
		c.logger.Error("failed to load credits", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "failed to load",
		})
		return
	}

	cast := make([]CastMemberDTO, 0, len(credits.Cast))
	for _, m := range credits.Cast {
		cast = append(cast, CastMemberDTO{Name: m.Name, Character: m.Character})
	}
	ctx.JSON(http.StatusOK, CreditsResponseDTO{
		Director: credits.Director,
		Cast:     cast,
	})
}

type VideoResponseDTO struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Videos возвращает трейлеры и тизеры
// @Summary Видео фильма
// @Tags Movies
// @Param movie_id path int true "ID фильма"
// @Success 200 {array} VideoResponseDTO "Видео"
// @Failure 502 {object} http_common.ErrorResponse "Источник метаданных недоступен"
// @Router /movies/{movie_id}/videos [get]
func (c *Controller) videos(ctx *gin.Context) {
	id, ok := movieID(ctx)
	if !ok {
		return
	}

	videos, err := c.usecase.Videos(ctx, id)
	if err != nil {
		c.logger.Error("failed to load videos", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "failed to load",
		})
		return
	}

	dto := make([]VideoResponseDTO, 0, len(videos))
	for _, v := range videos {
		dto = append(dto, VideoResponseDTO{Key: v.Key, Site: v.Site, Type: v.Type})
	}
	ctx.JSON(http.StatusOK, dto)
}

type OfferResponseDTO struct {
	Provider string `json:"provider"`
	Region   string `json:"region"`
	Link     string `json:"link"`
}

// Availability возвращает стриминговые предложения для региона зрителя
// @Summary Доступность в стримингах
// @Tags Movies
// @Param movie_id path int true "ID фильма"
// @Param locale query string false "Локаль зрителя, например en-GB"
// @Success 200 {array} OfferResponseDTO "Предложения"
// @Failure 404 {object} http_common.ErrorResponse "Нет информации ни в одном регионе"
// @Failure 502 {object} http_common.ErrorResponse "Источник недоступен"
// @Router /movies/{movie_id}/availability [get]
func (c *Controller) availability(ctx *gin.Context) {
	id, ok := movieID(ctx)
	if !ok {
		return
	}

	offers, err := c.usecase.Availability(ctx, id, ctx.Query("locale"))
	if err != nil {
		if errors.Is(err, usecase_catalog.ErrNoStreamingInfo) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "no streaming information available in any region",
			})
			return
		}
		c.logger.Error("failed to load availability", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "failed to load",
		})
		return
	}

	dto := make([]OfferResponseDTO, 0, len(offers))
	for _, o := range offers {
		dto = append(dto, OfferResponseDTO{
			Provider: o.Provider,
			Region:   o.Region,
			Link:     o.Link,
		})
	}
	ctx.JSON(http.StatusOK, dto)
}
