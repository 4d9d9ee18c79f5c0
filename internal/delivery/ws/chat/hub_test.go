package ws_chat

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/aspecthq/aspect/internal/model"
)

type ChatHubSuite struct {
	suite.Suite

	hub *Hub
}

func (s *ChatHubSuite) BeforeEach(t provider.T) {
	s.hub = NewHub()
}

func (s *ChatHubSuite) addClient(houseID uuid.UUID, buffer int) *Client {
	client := &Client{
		hub:     s.hub,
		send:    make(chan Event, buffer),
		user:    model.User{ID: uuid.New()},
		houseID: houseID,
	}
	s.hub.clients[client] = true
	if _, ok := s.hub.houses[houseID]; !ok {
		s.hub.houses[houseID] = make(map[*Client]bool)
	}
	s.hub.houses[houseID][client] = true
	return client
}

func (s *ChatHubSuite) TestBroadcastDeliversToHouseClients(t provider.T) {
	houseID := uuid.New()
	client := s.addClient(houseID, 16)

	s.hub.broadcastToHouse(houseID, Event{Type: EventMessage})

	assert.Len(t, client.send, 1)
	event := <-client.send
	assert.Equal(t, EventMessage, event.Type)
}

func (s *ChatHubSuite) TestSlowClientEvictionSurvivesUnregister(t provider.T) {
	houseID := uuid.New()
	slow := s.addClient(houseID, 1)
	slow.send <- Event{Type: EventMessage}

	s.hub.broadcastToHouse(houseID, Event{Type: EventMessage})

	assert.NotContains(t, s.hub.clients, slow)
	assert.NotContains(t, s.hub.houses[houseID], slow)

	// The read pump still unregisters the evicted client on exit; that
	// must not close its channel a second time.
	assert.NotPanics(t, func() {
		s.hub.handleUnregister(slow)
	})
}

func (s *ChatHubSuite) TestUnregisterRemovesEmptyHouse(t provider.T) {
	houseID := uuid.New()
	client := s.addClient(houseID, 1)

	s.hub.handleUnregister(client)

	assert.NotContains(t, s.hub.clients, client)
	assert.NotContains(t, s.hub.houses, houseID)
}

func TestChatHubSuite(t *testing.T) {
	suite.RunSuite(t, new(ChatHubSuite))
}
