package handlers

import (
	"net/http"
	"strings"
	"time"

	"goaltracker/internal/infrastructure/security"
	"goaltracker/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	allowedOrigins string,
	tokens *security.TokenManager,
	limiter *middleware.RateLimiter,
	authHandler *AuthHandler,
	goalHandler *GoalHandler,
	taskHandler *TaskHandler,
) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if allowedOrigins == "" || allowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.TokenHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(corsConfig))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":       "Goal tracker API is running successfully!",
			"status":        "OK",
			"api_endpoints": []string{"/api/auth/signup", "/api/auth/login", "/api/goals", "/api/tasks"},
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", limiter.Limit("signup", 10, 1*time.Minute), authHandler.Signup)
			auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
		}

		goals := api.Group("/goals")
		goals.Use(middleware.Auth(tokens))
		{
			goals.POST("", goalHandler.Create)
			goals.GET("", goalHandler.List)
			goals.PUT("/:id", goalHandler.Update)
			goals.DELETE("/:id", goalHandler.Delete)
			// Same ":id" name as above; gin requires one wildcard name per segment.
			goals.PATCH("/:id/lesson/:chapterId/:lessonId/complete", goalHandler.ToggleLesson)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.Auth(tokens))
		{
			tasks.POST("", taskHandler.Create)
			tasks.GET("", taskHandler.List)
			tasks.DELETE("/:id", taskHandler.Delete)
			tasks.PATCH("/:id/complete", taskHandler.ToggleCompletion)
		}
	}

	return r
}
