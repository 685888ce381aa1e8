package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterOptions собирает параметры роутера.
type RouterOptions struct {
	BasePath       string
	AllowOrigins   []string
	MetricsHandler http.Handler // nil отключает /metrics
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(handler *BlockfrostHandler, limiter *RateLimiter, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(logger.Named("http")))
	router.Use(gin.Recovery())

	router.GET("/healthz", handler.HealthHandler)
	if opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	basePath := opts.BasePath
	if basePath == "" {
		basePath = "/api/blockfrost"
	}
	api := router.Group(basePath, limiter.Middleware())
	{
		api.Any("/:networkId/*endpoint", handler.RedirectHandler)
	}

	return router
}
