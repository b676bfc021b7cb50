package routes

import (
	"net/http"
	"time"

	"campushub/config"
	"campushub/handlers"
	"campushub/middleware"
	"campushub/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware, handlers and the route table.
func SetupRouter(cfg *config.Config, s store.Store) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":      "Backend is running!",
			"cors_origins": cfg.AllowedOrigins,
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/db-test", func(c *gin.Context) {
		names, err := s.CollectionNames(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"collections": names})
	})

	authHandler := handlers.NewAuthHandler(s, cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(s)
	postHandler := handlers.NewPostHandler(s)
	commentHandler := handlers.NewCommentHandler(s)
	requireAuth := middleware.RequireAuth(cfg.JWTSecret, s)

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		me := auth.Group("", requireAuth)
		me.GET("/me", authHandler.Me)
		me.PUT("/me", authHandler.UpdateMe)
		me.POST("/change-password", authHandler.ChangePassword)
	}

	// The /users routes are intentionally unauthenticated, including update
	// and delete.
	users := router.Group("/users")
	{
		users.GET("/", userHandler.List)
		users.GET("/search", userHandler.Search)
		users.POST("/", userHandler.Create)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	posts := router.Group("/posts")
	{
		posts.GET("/", postHandler.List)
		posts.GET("/:id", postHandler.Get)

		authed := posts.Group("", requireAuth)
		authed.POST("/", postHandler.Create)
		authed.PUT("/:id", postHandler.Update)
		authed.DELETE("/:id", postHandler.Delete)
		authed.POST("/:id/like", postHandler.ToggleLike)
		authed.POST("/:id/save", postHandler.ToggleSave)
	}

	comments := router.Group("/comments")
	{
		comments.GET("/post/:post_id", commentHandler.ListByPost)
		comments.GET("/user/:user_id", commentHandler.ListByUser)

		authed := comments.Group("", requireAuth)
		authed.POST("", commentHandler.Create)
		authed.PUT("/:id", commentHandler.Update)
		authed.DELETE("/:id", commentHandler.Delete)
		authed.POST("/:id/like", commentHandler.ToggleLike)
	}

	return router
}
