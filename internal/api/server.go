package api

import (
	"fmt"
	"net/http"

	"happythoughts/api/internal/metrics"
	"happythoughts/api/internal/store"
	"happythoughts/api/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Store = (*store.Store)(nil)

// Server wraps the REST API server
type Server struct {
	handler *Handler
	router  *gin.Engine
	hub     *websocket.Hub
}

// NewServer creates a new API server
func NewServer(st Store, hub *websocket.Hub) *Server {
	handler := NewHandler(st, hub)

	// gin.New() instead of gin.Default() so the logger format is ours
	router := gin.New()

	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] %s %s %d %s %s \"%s\" %s\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.ClientIP,
			param.Method,
			param.StatusCode,
			param.Latency,
			param.Path,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Service metadata and route listing
	router.GET("/", handler.Index(router))

	// Public thought endpoints
	router.GET("/thoughts", handler.ListThoughts)
	router.GET("/thoughts/:id", handler.GetThought)
	router.POST("/thoughts/:id/like", handler.LikeThought)

	// Accounts and sign-in
	router.GET("/users", handler.ListUsers)
	router.POST("/users", handler.RegisterUser)
	router.POST("/sessions", handler.CreateSession)

	// Protected endpoints (require a valid access token)
	protected := router.Group("")
	protected.Use(AuthMiddleware(st))
	{
		protected.POST("/thoughts", handler.CreateThought)
		protected.PATCH("/thoughts/:id", handler.UpdateThought)
		protected.DELETE("/thoughts/:id", handler.DeleteThought)
		protected.GET("/secrets", handler.Secrets)
	}

	// Live thought feed
	router.GET("/ws", websocket.HandleWebSocket(hub))

	// Prometheus exposition
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		handler: handler,
		router:  router,
		hub:     hub,
	}
}

// GetHub returns the thought feed hub
func (s *Server) GetHub() *websocket.Hub {
	return s.hub
}

// GetRouter returns the router
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
