package http

import (
	"time"

	"taskhub/internal/http/handlers"
	"taskhub/internal/http/middleware"
	"taskhub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RateLimits configures the /api limiter.
type RateLimits struct {
	Requests int
	Window   time.Duration
}

func (rl RateLimits) handler() gin.HandlerFunc {
	if rl.Requests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(rl.Requests, rl.Window)
}

// TaskRoutes bundles what the task board server exposes.
type TaskRoutes struct {
	Tasks         *handlers.TaskHandler
	Health        *handlers.HealthHandler
	Hub           *ws.Hub
	AllowedOrigin string
	Limits        RateLimits
}

// NewEngine builds a gin engine with the middleware both services share.
func NewEngine(allowedOrigin string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.HTTPMetrics(), middleware.CORS(allowedOrigin))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func RegisterTaskRoutes(r *gin.Engine, tr TaskRoutes) {
	// Health checks (no rate limiting)
	r.GET("/healthz", tr.Health.Liveness)
	r.GET("/readyz", tr.Health.Readiness)

	// Live feed of the board
	r.GET("/ws", ws.HandleWS(tr.Hub, tr.AllowedOrigin))

	api := r.Group("/api")
	api.Use(tr.Limits.handler())

	h := tr.Tasks
	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.POST("/tasks/delete-cancel", h.CancelDelete)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.PATCH("/tasks/:id/toggle", h.ToggleTask)
	api.POST("/tasks/:id/delete-request", h.RequestDelete)
	api.DELETE("/tasks/:id", h.DeleteTask)
}

func RegisterProductRoutes(r *gin.Engine, products *handlers.ProductHandler, health *handlers.HealthHandler, limits RateLimits) {
	r.GET("/", products.Root)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)

	api := r.Group("/api/products")
	api.Use(limits.handler())
	{
		api.GET("", products.GetProducts)
		api.GET("/", products.GetProducts)
		api.GET("/:id", products.GetProduct)
		api.POST("", products.PostProduct)
		api.POST("/", products.PostProduct)
		api.PUT("/:id", products.PutProduct)
		api.DELETE("/:id", products.DeleteProduct)
	}
}
