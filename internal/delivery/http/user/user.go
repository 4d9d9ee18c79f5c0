package http_user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/aspecthq/aspect/internal/delivery/http/common"
	http_auth_middleware "github.com/aspecthq/aspect/internal/delivery/http/middleware/auth"
	usecase_user "github.com/aspecthq/aspect/internal/usecase/user"
)

type Controller struct {
	usecase    *usecase_user.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(usecase *usecase_user.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		usecase:    usecase,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(c.middleware.AuthRequired())
	{
		users.GET("/me", c.me)
		users.PUT("/me/genres", c.saveGenres)
	}
}

type ProfileResponseDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	AvatarURL      string   `json:"avatar_url"`
	SelectedGenres []string `json:"selected_genres"`
}

// Me возвращает профиль текущего пользователя
// @Summary Профиль
// @Tags Users
// @Success 200 {object} ProfileResponseDTO "Профиль"
// @Security UserToken
// @Router /users/me [get]
func (c *Controller) me(ctx *gin.Context) {
	user, ok := http_auth_middleware.UserFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "unauthorized"})
		return
	}

	profile, err := c.usecase.Profile(ctx, user.ID)
	if err != nil {
		if errors.Is(err, usecase_user.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to load profile", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, ProfileResponseDTO{
		ID:             profile.ID.String(),
		Name:           profile.Name,
		Email:          profile.Email,
		AvatarURL:      profile.AvatarURL,
		SelectedGenres: profile.SelectedGenres,
	})
}

type SaveGenresRequestDTO struct {
	Genres []string `json:"genres" binding:"required"`
}

// SaveGenres сохраняет выбранные жанры
// @Summary Сохранение жанров
// @Tags Users
// @Accept json
// @Param request body SaveGenresRequestDTO true "Ровно 3 различных жанра"
// @Success 204 "Жанры сохранены"
// @Failure 422 {object} http_common.ErrorResponse "Неверный набор жанров"
// @Security UserToken
// @Router /users/me/genres [put]
func (c *Controller) saveGenres(ctx *gin.Context) {
	user, ok := http_auth_middleware.UserFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "unauthorized"})
		return
	}

	var req SaveGenresRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.usecase.SaveGenres(ctx, user.ID, req.Genres); err != nil {
		switch {
		case errors.Is(err, usecase_user.ErrWrongGenreCount), errors.Is(err, usecase_user.ErrDuplicateGenres):
			ctx.JSON(http.StatusUnprocessableEntity, http_common.ErrorResponse{
				Message: err.Error(),
			})
		case errors.Is(err, usecase_user.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		default:
			c.logger.Error("failed to save genres", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
