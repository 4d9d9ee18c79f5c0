package http_house

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/aspecthq/aspect/internal/delivery/http/common"
	http_auth_middleware "github.com/aspecthq/aspect/internal/delivery/http/middleware/auth"
	"github.com/aspecthq/aspect/internal/model"
	usecase_catalog "github.com/aspecthq/aspect/internal/usecase/catalog"
	usecase_house "github.com/aspecthq/aspect/internal/usecase/house"
)

type Controller struct {
	usecase    *usecase_house.Usecase
	catalog    *usecase_catalog.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(
	usecase *usecase_house.Usecase,
	catalog *usecase_catalog.Usecase,
	middleware *http_auth_middleware.Middleware,
) *Controller {
	return &Controller{
		usecase:    usecase,
		catalog:    catalog,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	houses := router.Group("/houses")
	houses.Use(c.middleware.AuthRequired())
	{
		houses.POST("", c.create)
		houses.POST("/join", c.join)
		houses.GET("/mine", c.mine)
		houses.GET("/:house_id/members", c.members)
		houses.GET("/:house_id/library", c.library)
		houses.POST("/:house_id/library/toggle", c.toggleMovie)
		houses.GET("/:house_id/random-pick", c.randomPick)
	}
}

type HouseResponseDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	InviteCode  string    `json:"invite_code"`
	CreatedBy   string    `json:"created_by"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
}

func toHouseDTO(house model.House) HouseResponseDTO {
	members := make([]string, 0, len(house.Members))
	for _, id := range house.Members {
		members = append(members, id.String())
	}
	return HouseResponseDTO{
		ID:          house.ID.String(),
		Name:        house.Name,
		Description: house.Description,
		InviteCode:  house.InviteCode,
		CreatedBy:   house.CreatedBy.String(),
		Members:     members,
		CreatedAt:   house.CreatedAt,
	}
}

type CreateRequestDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create создает дом
// @Summary Создание дома
// @Tags Houses
// @Accept json
// @Param request body CreateRequestDTO true "Данные дома"
// @Success 201 {object} HouseResponseDTO "Дом создан"
// @Failure 409 {object} http_common.ErrorResponse "Пользователь уже состоит в доме"
// @Failure 503 {object} http_common.ErrorResponse "Нет свободных кодов приглашения"
// @Security UserToken
// @Router /houses [post]
func (c *Controller) create(ctx *gin.Context) {
	user, ok := http_auth_middleware.UserFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "unauthorized"})
		return
	}

	var req CreateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	house, err := c.usecase.Create(ctx, req.Name, req.Description, user.ID)
	if err != nil {
		c.logger.Error("failed to create house", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_house.ErrAlreadyInHouse):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "you already belong to a house",
			})
		case errors.Is(err, usecase_house.ErrCodesUnavailable):
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "unavailable",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusCreated, toHouseDTO(house))
}

type JoinRequestDTO struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// Join присоединяет пользователя к дому по коду приглашения
// @Summary Присоединение к дому
// @Tags Houses
// @Accept json
// @Param request body JoinRequestDTO true "Код приглашения"
// @Success 200 {object} HouseResponseDTO "Пользователь присоединен"
// @Failure 404 {object} http_common.ErrorResponse "Неверный код приглашения"
// @Failure 409 {object} http_common.ErrorResponse "Пользователь уже состоит в доме"
// @Security UserToken
// @Router /houses/join [post]
func (c *Controller) join(ctx *gin.Context) {
	user, ok := http_auth_middleware.UserFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "unauthorized"})
		return
	}

	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	house, err := c.usecase.Join(ctx, req.InviteCode, user.ID)
	if err != nil {
		c.logger.Error("failed to join house", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_house.ErrInvalidInviteCode):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "Invalid invite code",
			})
		case errors.Is(err, usecase_house.ErrAlreadyInHouse):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "you already belong to a house",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, toHouseDTO(house))
}

// Mine возвращает текущий дом пользователя
// @Summary Текущий дом
// @Tags Houses
// @Success 200 {object} HouseResponseDTO "Дом пользователя"
// @Failure 404 {object} http_common.ErrorResponse "Пользователь не состоит в доме"
// @Security UserToken
// @Router /houses/mine [get]
func (c *Controller) mine(ctx *gin.Context) {
	user, ok := http_auth_middleware.UserFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "unauthorized"})
		return
	}

	house, err := c.usecase.HouseOf(ctx, user.ID)
	if err != nil {
		if errors.Is(err, usecase_house.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to get house", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, toHouseDTO(house))
}

type MemberResponseDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Members возвращает участников дома
// @Summary Участники дома
// @Tags Houses
// @Param house_id path string true "ID дома"
// @Success 200 {array} MemberResponseDTO "Участники"
// @Failure 404 {object} http_common.ErrorResponse "Дом не найден"
// @Security UserToken
// @Router /houses/{house_id}/members [get]
func (c *Controller) members(ctx *gin.Context) {
	houseID, err := uuid.Parse(ctx.Param("house_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid house id",
		})
		return
	}

	members, err := c.usecase.Members(ctx, houseID)
	if err != nil {
		if errors.Is(err, usecase_house.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to list members", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	dto := make([]MemberResponseDTO, 0, len(members))
	for _, m := range members {
		dto = append(dto, MemberResponseDTO{
			ID:        m.ID.String(),
			Name:      m.Name,
			AvatarURL: m.AvatarURL,
		})
	}
	ctx.JSON(http.StatusOK, dto)
}

type LibraryMovieResponseDTO struct {
	MovieID     int64     `json:"movie_id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path"`
	Tagline     string    `json:"tagline"`
	ReleaseDate string    `json:"release_date"`
	Genres      []string  `json:"genres"`
	AddedBy     string    `json:"added_by"`
	AddedByName string    `json:"added_by_name"`
	AddedAt     time.Time `json:"added_at"`
}

func toLibraryMovieDTO(movie model.LibraryMovie) LibraryMovieResponseDTO {
	return LibraryMovieResponseDTO{
		MovieID:     movie.MovieID,
		Title:       movie.Title,
		PosterPath:  movie.PosterPath,
		Tagline:     movie.Tagline,
		ReleaseDate: movie.ReleaseDate,
		Genres:      movie.Genres,
		AddedBy:     movie.AddedBy.String(),
		AddedByName: movie.AddedByName,
		AddedAt:     movie.AddedAt,
	}
}

// Library возвращает библиотеку дома
// @Summary Библиотека дома
// @Tags Houses
// @Param house_id path string true "ID дома"
// @Success 200 {array} LibraryMovieResponseDTO "Фильмы библиотеки"
// @Failure 404 {object} http_common.ErrorResponse "Дом не найден"
// @Security UserToken
// @Router /houses/{house_id}/library [get]
func (c *Controller) library(ctx *gin.Context) {
	houseID, err := uuid.Parse(ctx.Param("house_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid house id",
		})
		return
	}

	movies, err := c.usecase.Library(ctx, houseID)
	if err != nil {
		if errors.Is(err, usecase_house.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to load library", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	dto := make([]LibraryMovieResponseDTO, 0, len(movies))
	for _, m := range movies {
		dto = append(dto, toLibraryMovieDTO(m))
	}
	ctx.JSON(http.StatusOK, dto)
}

type ToggleRequestDTO struct {
	MovieID int64 `json:"movie_id" binding:"required"`
}

type ToggleResponseDTO struct {
	Added bool `json:"added"`
}

// ToggleMovie добавляет фильм в библиотеку или убирает его
// @Summary Переключение фильма в библиотеке
// @Tags Houses
// @Accept json
// @Param house_id path string true "ID дома"
// @Param request body ToggleRequestDTO true "ID фильма"
// @Success 200 {object} ToggleResponseDTO "Новое состояние"
// @Failure 404 {object} http_common.ErrorResponse "Дом не найден"
// @Failure 502 {object} http_common.ErrorResponse "Метаданные недоступны"
// @Security UserToken
// @Router /houses/{house_id}/library/toggle [post]
func (c *Controller) toggleMovie(ctx *gin.Context) {
	user, ok := http_auth_middleware.UserFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "unauthorized"})
		return
	}

	houseID, err := uuid.Parse(ctx.Param("house_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid house id",
		})
		return
	}

	var req ToggleRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	meta, err := c.catalog.Details(ctx, req.MovieID)
	if err != nil {
		c.logger.Error("failed to load movie details", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "failed to load movie details",
		})
		return
	}

	added, err := c.usecase.ToggleMovie(ctx, houseID, user, meta)
	if err != nil {
		if errors.Is(err, usecase_house.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to toggle movie", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, ToggleResponseDTO{Added: added})
}

// RandomPick выбирает случайный фильм из библиотеки
// @Summary Случайный фильм
// @Tags Houses
// @Param house_id path string true "ID дома"
// @Success 200 {object} LibraryMovieResponseDTO "Выбранный фильм"
// @Failure 404 {object} http_common.ErrorResponse "Библиотека пуста"
// @Security UserToken
// @Router /houses/{house_id}/random-pick [get]
func (c *Controller) randomPick(ctx *gin.Context) {
	houseID, err := uuid.Parse(ctx.Param("house_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid house id",
		})
		return
	}

	movie, err := c.usecase.RandomPick(ctx, houseID)
	if err != nil {
		switch {
		case errors.Is(err, usecase_house.ErrEmptyLibrary):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "No films found in your house's library",
			})
		case errors.Is(err, usecase_house.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		default:
			c.logger.Error("failed to pick movie", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, toLibraryMovieDTO(movie))
}
