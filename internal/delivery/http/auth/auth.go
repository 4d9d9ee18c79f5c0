package http_auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/aspecthq/aspect/internal/delivery/http/common"
	"github.com/aspecthq/aspect/internal/model"
	service_auth "github.com/aspecthq/aspect/internal/service/auth"
)

type Controller struct {
	auth   *service_auth.Service
	logger *slog.Logger
}

func New(auth *service_auth.Service) *Controller {
	return &Controller{
		auth:   auth,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/sign-up", c.signUp)
		auth.POST("/sign-in", c.signIn)
		auth.POST("/sign-out", c.signOut)
		auth.POST("/password-reset/request", c.requestPasswordReset)
		auth.POST("/password-reset", c.resetPassword)
	}
}

type UserResponseDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

func toUserDTO(user model.User) UserResponseDTO {
	return UserResponseDTO{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}

type SignUpRequestDTO struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignUp создает профиль и открывает сессию
// @Summary Регистрация
// @Tags Auth
// @Accept json
// @Param request body SignUpRequestDTO true "Данные профиля"
// @Success 201 {object} UserResponseDTO "Профиль создан"
// @Header 201 {string} X-user-token "Токен сессии"
// @Failure 409 {object} http_common.ErrorResponse "Email уже занят"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/sign-up [post]
func (c *Controller) signUp(ctx *gin.Context) {
	var req SignUpRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	user, token, err := c.auth.SignUp(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service_auth.ErrEmailTaken) {
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "email already in use",
			})
			return
		}
		c.logger.Error("failed to sign up", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Header("X-user-token", token)
	ctx.JSON(http.StatusCreated, toUserDTO(user))
}

type SignInRequestDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignIn открывает сессию
// @Summary Вход
// @Tags Auth
// @Accept json
// @Param request body SignInRequestDTO true "Учетные данные"
// @Success 200 {object} UserResponseDTO "Сессия открыта"
// @Header 200 {string} X-user-token "Токен сессии"
// @Failure 401 {object} http_common.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/sign-in [post]
func (c *Controller) signIn(ctx *gin.Context) {
	var req SignInRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	user, token, err := c.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		// Wrong email and wrong password are indistinguishable on the
		// wire.
		if errors.Is(err, service_auth.ErrUserNotFound) || errors.Is(err, service_auth.ErrWrongPassword) {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "wrong email or password",
			})
			return
		}
		c.logger.Error("failed to sign in", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Header("X-user-token", token)
	ctx.JSON(http.StatusOK, toUserDTO(user))
}

// SignOut закрывает сессию
// @Summary Выход
// @Tags Auth
// @Success 204 "Сессия закрыта"
// @Security UserToken
// @Router /auth/sign-out [post]
func (c *Controller) signOut(ctx *gin.Context) {
	token := ctx.GetHeader("X-user-token")
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "no X-user-token header",
		})
		return
	}

	if err := c.auth.SignOut(token); err != nil {
		c.logger.Error("failed to sign out", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}

type ResetRequestDTO struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset выдает токен сброса пароля
// @Summary Запрос сброса пароля
// @Tags Auth
// @Accept json
// @Param request body ResetRequestDTO true "Email профиля"
// @Success 202 "Запрос принят"
// @Router /auth/password-reset/request [post]
func (c *Controller) requestPasswordReset(ctx *gin.Context) {
	var req ResetRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	// The response never reveals whether the email exists.
	if _, err := c.auth.RequestPasswordReset(ctx, req.Email); err != nil {
		c.logger.Error("failed to request password reset", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}
	ctx.Status(http.StatusAccepted)
}

type ResetPasswordRequestDTO struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword меняет пароль по токену сброса
// @Summary Сброс пароля
// @Tags Auth
// @Accept json
// @Param request body ResetPasswordRequestDTO true "Токен и новый пароль"
// @Success 204 "Пароль изменен"
// @Failure 401 {object} http_common.ErrorResponse "Токен недействителен"
// @Router /auth/password-reset [post]
func (c *Controller) resetPassword(ctx *gin.Context) {
	var req ResetPasswordRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.auth.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service_auth.ErrInvalidToken) {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "invalid or expired token",
			})
			return
		}
		c.logger.Error("failed to reset password", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}
