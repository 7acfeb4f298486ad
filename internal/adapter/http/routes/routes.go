package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"userapp/internal/adapter/http/handler"
	"userapp/internal/adapter/http/middleware"
	"userapp/pkg/config"
)

type HandlersConfig struct {
	UserHandler *handler.UserHandler
}

func SetupRouter(handlers HandlersConfig, metrics *config.AppMetrics, logger *config.AppLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, config.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *config.AppMetrics, logger *config.AppLogger, cfg *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middleware.SetupGinMiddleware(router, "userapp", metrics, logger, cfg)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupRoutes(router, handlers.UserHandler)

	return router
}

func setupRoutes(router *gin.Engine, userHandler *handler.UserHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := router.Group("/users")
	{
		// fixed paths must register before /:id so gin does not treat
		// "search" and "stats" as identifiers
		users.GET("", userHandler.GetAllUsers)
		users.GET("/search", userHandler.SearchUsers)
		users.GET("/stats", userHandler.GetUserStats)
		users.GET("/:id", userHandler.GetUser)
		users.POST("", userHandler.CreateUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
		users.POST("/:id/hobbies", userHandler.AddHobby)
		users.DELETE("/:id/hobbies/:hobby", userHandler.RemoveHobby)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouterForTests builds a bare router without telemetry or rate
// limiting.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupRoutes(router, handlers.UserHandler)

	return router
}
