package http_background

import (
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	http_common "github.com/aspecthq/aspect/internal/delivery/http/common"
	"github.com/aspecthq/aspect/internal/engine/lines"
)

const defaultDuration = 3.0

type Controller struct {
	logger *slog.Logger
}

func New() *Controller {
	return &Controller{logger: slog.Default()}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/background/lines", c.scene)
}

type SceneResponseDTO struct {
	Polylines []lines.Polyline `json:"polylines"`
}

// Scene генерирует фоновую сцену линий для указанного окна
// @Summary Фоновая сцена
// @Tags Background
// @Param width query number true "Ширина окна"
// @Param height query number true "Высота окна"
// @Param duration query number false "Время отрисовки одной линии, сек"
// @Param seed query int false "Зерно генератора"
// @Success 200 {object} SceneResponseDTO "Полностью отрисованная сцена"
// @Router /background/lines [get]
func (c *Controller) scene(ctx *gin.Context) {
	width, werr := strconv.ParseFloat(ctx.Query("width"), 64)
	height, herr := strconv.ParseFloat(ctx.Query("height"), 64)
	if werr != nil || herr != nil || width <= 0 || height <= 0 {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "width and height must be positive numbers",
		})
		return
	}

	duration := defaultDuration
	if raw := ctx.Query("duration"); raw != "" {
		if d, err := strconv.ParseFloat(raw, 64); err == nil && d > 0 {
			duration = d
		}
	}

	seed := time.Now().UnixNano()
	if raw := ctx.Query("seed"); raw != "" {
		if s, err := strconv.ParseInt(raw, 10, 64); err == nil {
			seed = s
		}
	}

	// Static render: run the reveal to completion and return the final
	// frame.
	scene := lines.New(width, height, duration, rand.New(rand.NewSource(seed)))
	for !scene.Done() {
		scene.Step()
	}

	ctx.JSON(http.StatusOK, SceneResponseDTO{Polylines: scene.Frame()})
}
