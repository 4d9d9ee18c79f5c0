package app

import (
	"time"

	"github.com/aspecthq/aspect/internal/config"
	http_auth "github.com/aspecthq/aspect/internal/delivery/http/auth"
	http_background "github.com/aspecthq/aspect/internal/delivery/http/background"
	http_catalog "github.com/aspecthq/aspect/internal/delivery/http/catalog"
	http_chat "github.com/aspecthq/aspect/internal/delivery/http/chat"
	http_house "github.com/aspecthq/aspect/internal/delivery/http/house"
	http_init "github.com/aspecthq/aspect/internal/delivery/http/init"
	http_auth_middleware "github.com/aspecthq/aspect/internal/delivery/http/middleware/auth"
	http_metrics_middleware "github.com/aspecthq/aspect/internal/delivery/http/middleware/metrics"
	http_ratelimit_middleware "github.com/aspecthq/aspect/internal/delivery/http/middleware/ratelimit"
	http_user "github.com/aspecthq/aspect/internal/delivery/http/user"
	ws_chat "github.com/aspecthq/aspect/internal/delivery/ws/chat"
	ws_genres "github.com/aspecthq/aspect/internal/delivery/ws/genres"
	infra_postgres_chat "github.com/aspecthq/aspect/internal/infra/postgres/chat"
	infra_postgres_house "github.com/aspecthq/aspect/internal/infra/postgres/house"
	infra_pg_init "github.com/aspecthq/aspect/internal/infra/postgres/init"
	infra_postgres_user "github.com/aspecthq/aspect/internal/infra/postgres/user"
	infra_redis_init "github.com/aspecthq/aspect/internal/infra/redis/init"
	infra_session_cache "github.com/aspecthq/aspect/internal/infra/redis/session"
	infra_streaming "github.com/aspecthq/aspect/internal/infra/streaming"
	infra_tmdb "github.com/aspecthq/aspect/internal/infra/tmdb"
	service_auth "github.com/aspecthq/aspect/internal/service/auth"
	usecase_catalog "github.com/aspecthq/aspect/internal/usecase/catalog"
	usecase_chat "github.com/aspecthq/aspect/internal/usecase/chat"
	usecase_house "github.com/aspecthq/aspect/internal/usecase/house"
	usecase_user "github.com/aspecthq/aspect/internal/usecase/user"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	infra_pg_init.MustMigrate(cfg.Postgres)

	houseRepository := infra_postgres_house.New(pgConn)
	userRepository := infra_postgres_user.New(pgConn)
	messageRepository := infra_postgres_chat.New(pgConn)

	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	resetCache := infra_session_cache.New(redisConn, "reset_cache")
	authService := service_auth.New(userRepository, sessionCache, resetCache)
	authMiddleware := http_auth_middleware.New(authService)

	tmdbClient := infra_tmdb.New(cfg.TMDB)
	streamingClient := infra_streaming.New(cfg.Streaming)

	houseUC := usecase_house.New(houseRepository, userRepository, nil)
	catalogUC := usecase_catalog.New(tmdbClient, streamingClient)
	userUC := usecase_user.New(userRepository)

	hub := ws_chat.NewHub()
	go hub.Run()
	chatUC := usecase_chat.New(messageRepository, hub)

	collector := http_metrics_middleware.NewCollector()
	limiter := http_ratelimit_middleware.New(100, time.Minute)

	controllerPool := http_init.NewControllerPool(collector.Observe(), limiter.Limit())
	controllerPool.Add(http_auth.New(authService))
	controllerPool.Add(http_house.New(houseUC, catalogUC, authMiddleware))
	controllerPool.Add(http_chat.New(chatUC, authMiddleware))
	controllerPool.Add(http_catalog.New(catalogUC))
	controllerPool.Add(http_user.New(userUC, authMiddleware))
	controllerPool.Add(http_background.New())
	controllerPool.Add(ws_chat.New(hub, chatUC, authService))
	controllerPool.Add(ws_genres.New(userUC, authService))

	controllerPool.Register()
	controllerPool.Engine().GET("/metrics", collector.Handler())
	controllerPool.RunAll(cfg.HTTP.Port)
}
