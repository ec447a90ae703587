package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	handlers "webgen_ai_server/internal/api"
)

// RouterOptions controls the middleware stack.
type RouterOptions struct {
	AllowedOrigins []string
	TracingEnabled bool
	ServiceName    string
}

// SetupRouter builds the relay engine with its middleware and routes.
func SetupRouter(opts RouterOptions, h *handlers.APIHandler) *gin.Engine {
	router := gin.New()        // Use gin.New() for more control over middleware
	router.Use(gin.Logger())   // Request log line per call
	router.Use(gin.Recovery()) // Panics become 500s
	router.Use(handlers.RequestID())
	router.Use(handlers.Metrics())
	router.Use(handlers.CORS(opts.AllowedOrigins))
	if opts.TracingEnabled {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}

	RegisterRoutes(router, h)
	return router
}

// RegisterRoutes sets up the relay endpoints.
func RegisterRoutes(router *gin.Engine, h *handlers.APIHandler) {
	router.POST("/generate", h.Generate)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
