package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type LoopSuite struct {
	suite.Suite
}

func (s *LoopSuite) TestStepsUntilStopped(t provider.T) {
	t.Parallel()

	var steps atomic.Int64
	l := New(200, func() { steps.Add(1) })

	go l.Run(context.Background())
	time.Sleep(100 * time.Millisecond)
	l.Stop()

	n := steps.Load()
	assert.Greater(t, n, int64(0))

	// No more steps arrive after Stop has returned.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, steps.Load())
}

func (s *LoopSuite) TestContextCancellationStopsTheLoop(t provider.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var steps atomic.Int64
	l := New(200, func() { steps.Add(1) })

	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Errorf("loop did not exit on context cancellation")
	}
}

func (s *LoopSuite) TestStopIsIdempotent(t provider.T) {
	t.Parallel()

	l := New(0, func() {})
	go l.Run(context.Background())

	l.Stop()
	l.Stop()
}

func TestLoopSuite(t *testing.T) {
	suite.RunSuite(t, new(LoopSuite))
}
