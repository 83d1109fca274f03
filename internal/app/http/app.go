package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/zkpolls/zkpolls-backend/internal/handlers"
	"github.com/zkpolls/zkpolls-backend/internal/routes"
)

type App struct {
	engine *gin.Engine
	server *http.Server
	port   int
}

// NewApp builds the gin engine, CORS layer and route groups.
func NewApp(
	port int,
	allowedOrigins []string,
	authHandler *handlers.AuthHandler,
	pollsHandler *handlers.PollsHandler,
	authMiddleware gin.HandlerFunc,
	optionalAuthMiddleware gin.HandlerFunc,
) *App {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		routes.RegisterAuthRoutes(authGroup, authHandler)

		publicPollGroup := api.Group("/poll")
		routes.RegisterPublicPollRoutes(publicPollGroup, pollsHandler)

		privatePollGroup := api.Group("/poll", authMiddleware)
		routes.RegisterPrivatePollRoutes(privatePollGroup, pollsHandler)

		detailGroup := api.Group("/poll", optionalAuthMiddleware)
		routes.RegisterDetailRoute(detailGroup, pollsHandler)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Working")
	})

	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	return &App{
		engine: r,
		server: httpServer,
		port:   port,
	}
}

// Run starts the HTTP server and blocks until it stops.
func (a *App) Run() error {
	return a.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (a *App) Stop(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}
