package http_chat

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
	usecase_chat "github.com/aspecthq/aspect/internal/usecase/chat"
)

type Controller struct {
	usecase    *usecase_chat.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(usecase *usecase_chat.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		usecase:    usecase,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/houses/:house_id/messages")
	chat.Use(c.middleware.AuthRequired())
	{
		chat.GET("", c.history)
		chat.POST("", c.send)
	}
}

type MessageResponseDTO struct {
	ID      string    `json:"id"`
	HouseID string    `json:"house_id"`
	UserID  string    `json:"user_id"`
	Text    string    `json:"text"`
	SentAt  time.Time `json:"sent_at"`
}

func toMessageDTO(msg model.Message) MessageResponseDTO {
	return MessageResponseDTO{
		ID:      msg.ID.String(),
		HouseID: msg.HouseID.String(),
		UserID:  msg.UserID.String(),
		Text:    msg.Text,
		SentAt:  msg.SentAt,
	}
}

// History возвращает историю чата дома
// @Summary История чата
// @Tags Chat
// @Param house_id path string true "ID дома"
// @Success 200 {array} MessageResponseDTO "Сообщения в порядке отправки"
// @Failure 404 {object} http_common.ErrorResponse "Дом не найден"
// @Security UserToken
// @Router /houses/{house_id}/messages [get]
func (c *Controller) history(ctx *gin.Context) {
	houseID, err := uuid.Parse(ctx.Param("house_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid house id",
		})
		return
	}

	msgs, err := c.usecase.History(ctx, houseID)
	if err != nil {
		if errors.Is(err, usecase_chat.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to load history", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	dto := make([]MessageResponseDTO, 0, len(msgs))
	for _, m := range msgs {
		dto = append(dto, toMessageDTO(m))
	}
	ctx.JSON(http.StatusOK, dto)
}

type SendRequestDTO struct {
	Text string `json:"text" binding:"required"`
}

// Send отправляет сообщение в чат дома
// @Summary Отправка сообщения
// @Tags Chat
// @Accept json
// @Param house_id path string true "ID дома"
// @Param request body SendRequestDTO true "Текст сообщения"
// @Success 201 {object} MessageResponseDTO "Сообщение принято"
// @Failure 404 {object} http_common.ErrorResponse "Дом не найден"
// @Security UserToken
// @Router /houses/{house_id}/messages [post]
func (c *Controller) send(ctx *gin.Context) {
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

	var req SendRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	msg, err := c.usecase.Send(ctx, houseID, user.ID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, usecase_chat.ErrEmptyMessage):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "message cannot be empty",
			})
		case errors.Is(err, usecase_chat.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		default:
			c.logger.Error("failed to send message", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusCreated, toMessageDTO(msg))
}
