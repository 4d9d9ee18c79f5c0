package http_auth_middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/aspecthq/aspect/internal/delivery/http/common"
	"github.com/aspecthq/aspect/internal/model"
	service_auth "github.com/aspecthq/aspect/internal/service/auth"
)

const userKey = "user"

type Middleware struct {
	auth   *service_auth.Service
	logger *slog.Logger
}

func New(auth *service_auth.Service) *Middleware {
	return &Middleware{
		auth:   auth,
		logger: slog.Default(),
	}
}

// AuthRequired resolves X-user-token into a user and stores it in the
// request context. Handlers behind it read the user with UserFrom.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	const header = "X-user-token"
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(header)
		if t == "" {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "no " + header + " header",
			})
			ctx.Abort()
			return
		}

		user, err := m.auth.UserByToken(ctx, t)
		if err != nil {
			if errors.Is(err, service_auth.ErrInvalidToken) {
				ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
					Message: "invalid token",
				})
				ctx.Abort()
				return
			}
			m.logger.Error("failed to resolve token", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			ctx.Abort()
			return
		}

		ctx.Set(userKey, user)
		ctx.Next()
	}
}

func UserFrom(ctx *gin.Context) (model.User, bool) {
	v, ok := ctx.Get(userKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
