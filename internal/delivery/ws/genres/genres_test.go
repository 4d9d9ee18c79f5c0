package ws_genres

import (
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type GenresSessionSuite struct {
	suite.Suite
}

func (s *GenresSessionSuite) TestPushNeverBlocksOnFullBuffer(t provider.T) {
	sess := &session{send: make(chan Event, 1)}
	sess.push(Event{Type: EventFrame})

	// Nobody drains the channel; a second push must still return.
	done := make(chan struct{})
	go func() {
		sess.push(Event{Type: EventError})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Errorf("push blocked on a full send buffer")
	}

	assert.Len(t, sess.send, 1)
	event := <-sess.send
	assert.Equal(t, EventFrame, event.Type)
}

func TestGenresSessionSuite(t *testing.T) {
	suite.RunSuite(t, new(GenresSessionSuite))
}
