package http_ratelimit_middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	http_common "github.com/aspecthq/aspect/internal/delivery/http/common"
)

const (
	visitorTTL = 3 * time.Minute
	gcEvery    = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Middleware throttles requests per client IP. Stale visitors are
// collected in the background so the map stays bounded.
type Middleware struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func New(requests int, window time.Duration) *Middleware {
	m := &Middleware{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
	}
	go m.collect()
	return m
}

func (m *Middleware) Limit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !m.allow(ctx.ClientIP()) {
			ctx.JSON(http.StatusTooManyRequests, http_common.ErrorResponse{
				Message: "too many requests",
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func (m *Middleware) allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (m *Middleware) collect() {
	for range time.Tick(gcEvery) {
		m.mu.Lock()
		for key, v := range m.visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(m.visitors, key)
			}
		}
		m.mu.Unlock()
	}
}
