// Package ws_genres drives the genre bubble screen over a websocket:
// the simulation runs server-side at a fixed frame rate, frames stream
// down, and toggle/confirm actions come back up.
package ws_genres

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/aspecthq/aspect/internal/engine/bubble"
	"github.com/aspecthq/aspect/internal/engine/loop"
	"github.com/aspecthq/aspect/internal/model"
	service_auth "github.com/aspecthq/aspect/internal/service/auth"
	usecase_user "github.com/aspecthq/aspect/internal/usecase/user"
)

const (
	EventFrame     = "FRAME"
	EventConfirmed = "CONFIRMED"
	EventError     = "ERROR"

	defaultWidth  = 400.0
	defaultHeight = 600.0
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Controller struct {
	usecase *usecase_user.Usecase
	auth    *service_auth.Service
	logger  *slog.Logger
}

func New(usecase *usecase_user.Usecase, auth *service_auth.Service) *Controller {
	return &Controller{
		usecase: usecase,
		auth:    auth,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/genres", c.serve)
}

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type TokenDTO struct {
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
	Selected bool    `json:"selected"`
}

type FramePayloadDTO struct {
	Tokens     []TokenDTO `json:"tokens"`
	CanConfirm bool       `json:"can_confirm"`
}

type actionDTO struct {
	Action string `json:"action"`
	Label  string `json:"label"`
}

// session owns one connection's simulation. The engine is not safe for
// concurrent use, so the loop callback and the read pump share a mutex.
type session struct {
	engine *bubble.Engine
	loop   *loop.Loop
	conn   *websocket.Conn
	send   chan Event
	user   model.User
	mu     sync.Mutex
}

func (c *Controller) serve(ctx *gin.Context) {
	user, err := c.auth.UserByToken(ctx, ctx.Query("token"))
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	width := queryFloat(ctx, "width", defaultWidth)
	height := queryFloat(ctx, "height", defaultHeight)

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("failed to upgrade connection", slog.String("error", err.Error()))
		return
	}

	s := &session{
		engine: bubble.New(bubble.DefaultGenres, width, height,
			rand.New(rand.NewSource(time.Now().UnixNano()))),
		conn: conn,
		send: make(chan Event, 4),
		user: user,
	}
	s.loop = loop.New(loop.DefaultFPS, func() {
		s.mu.Lock()
		s.engine.Step()
		frame := s.frame()
		s.mu.Unlock()
		s.push(frame)
	})

	loopCtx, cancel := context.WithCancel(context.Background())
	go s.loop.Run(loopCtx)
	go c.writePump(s, cancel)
	go c.readPump(s, cancel)
}

// push never blocks: a dead writer leaves nobody draining the channel,
// and a blocked send here would strand the sending goroutine. Slow
// consumers lose events instead.
func (s *session) push(event Event) {
	select {
	case s.send <- event:
	default:
	}
}

func (s *session) frame() Event {
	tokens := s.engine.Tokens()
	dto := make([]TokenDTO, 0, len(tokens))
	for _, t := range tokens {
		dto = append(dto, TokenDTO{
			Label:    t.Label,
			X:        t.X,
			Y:        t.Y,
			Radius:   t.Radius,
			Selected: t.Selected,
		})
	}
	return Event{
		Type: EventFrame,
		Payload: FramePayloadDTO{
			Tokens:     dto,
			CanConfirm: s.engine.CanConfirm(),
		},
	}
}

func (c *Controller) readPump(s *session, cancel context.CancelFunc) {
	defer func() {
		cancel()
		s.loop.Stop()
		close(s.send)
		s.conn.Close()
	}()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var action actionDTO
		if err := json.Unmarshal(raw, &action); err != nil {
			continue
		}

		switch action.Action {
		case "toggle":
			s.mu.Lock()
			err := s.engine.Toggle(action.Label)
			s.mu.Unlock()
			if err != nil {
				s.push(Event{Type: EventError, Payload: map[string]interface{}{
					"message": "unknown genre label",
				}})
			}

		case "confirm":
			s.mu.Lock()
			genres, err := s.engine.Confirm()
			s.mu.Unlock()
			if err != nil {
				s.push(Event{Type: EventError, Payload: map[string]interface{}{
					"message": "exactly 3 genres must be selected",
				}})
				continue
			}

			if err := c.usecase.SaveGenres(context.Background(), s.user.ID, genres); err != nil {
				c.logger.Error("failed to save genres", slog.String("error", err.Error()))
				s.push(Event{Type: EventError, Payload: map[string]interface{}{
					"message": "failed to save genres",
				}})
				continue
			}

			s.push(Event{Type: EventConfirmed, Payload: map[string]interface{}{
				"genres": genres,
			}})
			return
		}
	}
}

func (c *Controller) writePump(s *session, cancel context.CancelFunc) {
	defer func() {
		cancel()
		s.conn.Close()
	}()

	for event := range s.send {
		if err := s.conn.WriteJSON(event); err != nil {
			return
		}
	}
}

func queryFloat(ctx *gin.Context, key string, fallback float64) float64 {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
