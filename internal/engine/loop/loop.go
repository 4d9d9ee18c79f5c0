// Package loop runs a fixed-tick frame loop, the server-side stand-in
// for requestAnimationFrame. The component that starts a loop owns its
// stop handle; nothing here is global.
package loop

import (
	"context"
	"sync"
	"time"
)

const DefaultFPS = 60

type Loop struct {
	interval time.Duration
	step     func()

	stopOnce sync.Once
	stopped  chan struct{}
	done     chan struct{}
}

// New builds a loop calling step once per frame at the given FPS.
// FPS <= 0 falls back to DefaultFPS.
func New(fps int, step func()) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		step:     step,
		stopped:  make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run blocks until Stop is called or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stopped:
			return
		case <-ticker.C:
			l.step()
		}
	}
}

// Stop cancels the loop. Safe to call more than once and from any
// goroutine; returns after the loop has exited.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopped) })
	<-l.done
}
