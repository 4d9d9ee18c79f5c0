package ws_chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	service_auth "github.com/aspecthq/aspect/internal/service/auth"
	usecase_chat "github.com/aspecthq/aspect/internal/usecase/chat"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Controller struct {
	hub     *Hub
	usecase *usecase_chat.Usecase
	auth    *service_auth.Service
	logger  *slog.Logger
}

func New(hub *Hub, usecase *usecase_chat.Usecase, auth *service_auth.Service) *Controller {
	return &Controller{
		hub:     hub,
		usecase: usecase,
		auth:    auth,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/houses/:house_id/chat", c.serve)
}

type inboundDTO struct {
	Text string `json:"text"`
}

// serve upgrades the connection and joins the house's chat. Browsers
// cannot set headers on websocket dials, so the session token arrives
// as a query parameter.
func (c *Controller) serve(ctx *gin.Context) {
	houseID, err := uuid.Parse(ctx.Param("house_id"))
	if err != nil {
		ctx.Status(http.StatusBadRequest)
		return
	}

	user, err := c.auth.UserByToken(ctx, ctx.Query("token"))
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("failed to upgrade connection", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:     c.hub,
		conn:    conn,
		send:    make(chan Event, 16),
		user:    user,
		houseID: houseID,
	}
	c.hub.register <- client

	go c.writePump(client)
	go c.readPump(client)
}

func (c *Controller) readPump(client *Client) {
	defer func() {
		client.hub.unregister <- client
		client.conn.Close()
	}()

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundDTO
		if err := json.Unmarshal(raw, &in); err != nil {
			continue
		}

		// Persist then fan out; the hub is wired as the usecase's
		// broadcaster so no extra send is needed here.
		if _, err := c.usecase.Send(context.Background(), client.houseID, client.user.ID, in.Text); err != nil {
			c.logger.Error("failed to send message", slog.String("error", err.Error()))
			select {
			case client.send <- Event{Type: EventError, Payload: map[string]interface{}{
				"message": "failed to send message",
			}}:
			default:
			}
		}
	}
}

func (c *Controller) writePump(client *Client) {
	defer client.conn.Close()

	for event := range client.send {
		if err := client.conn.WriteJSON(event); err != nil {
			break
		}
	}
}
