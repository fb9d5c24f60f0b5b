package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartlibrary-backend/internal/shared/middleware"
	"smartlibrary-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware(c.JWTManager, c.Store)
	librarianLimit := middleware.RateLimit(c.Cache, middleware.RateLimitConfig{
		Scope:  "librarian",
		Limit:  c.Config.Librarian.RatePerMinute,
		Window: time.Minute,
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c, auth)
		setupUserRoutes(v1, c, auth)
		setupBookRoutes(v1, c, auth, librarianLimit)
		setupNotificationRoutes(v1, c, auth)
		setupAdminRoutes(v1, c, auth)
		setupLibrarianRoutes(v1, c, auth, librarianLimit)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	group := v1.Group("/auth")
	{
		group.POST("/login", c.LibraryHandler.Login)
		group.POST("/logout", auth, c.LibraryHandler.Logout)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	users := v1.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", c.LibraryHandler.GetProfile)
		users.POST("/me/role", c.LibraryHandler.ToggleRole)
		users.GET("/me/borrowed", c.LibraryHandler.GetBorrowedBooks)
		users.GET("/me/favorites", c.LibraryHandler.GetFavoriteBooks)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, auth, limit gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		// Public
		books.GET("", c.LibraryHandler.ListBooks)
		books.GET("/categories", c.LibraryHandler.ListCategories)
		books.GET("/trending", c.LibraryHandler.ListTrending)
		books.GET("/:id", c.LibraryHandler.GetBook)

		// Authenticated
		books.POST("/:id/borrow", auth, c.LibraryHandler.BorrowBook)
		books.POST("/:id/return", auth, c.LibraryHandler.ReturnBook)
		books.POST("/:id/favorite", auth, c.LibraryHandler.ToggleFavorite)
		books.POST("/:id/reviews", auth, c.LibraryHandler.AddReview)
		books.GET("/:id/summary", auth, limit, c.LibrarianHandler.Summary)
	}
}

// ========================================
// NOTIFICATION ROUTES
// ========================================
func setupNotificationRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	v1.GET("/notifications", auth, c.LibraryHandler.ListNotifications)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	admin := v1.Group("/admin")
	admin.Use(auth, middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", c.LibraryHandler.GetDashboard)
	}
}

// ========================================
// LIBRARIAN ROUTES
// ========================================
func setupLibrarianRoutes(v1 *gin.RouterGroup, c *container.Container, auth, limit gin.HandlerFunc) {
	librarian := v1.Group("/librarian")
	librarian.Use(auth)
	{
		librarian.GET("/greeting", c.LibrarianHandler.Greeting)
		librarian.POST("/recommend", limit, c.LibrarianHandler.Recommend)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Redis only backs rate limiting, so its loss degrades but does not fail
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"redis":     redisStatus,
			"librarian": appCtx.Gateway.BreakerState().String(),
		}

		c.JSON(http.StatusOK, health)
	}
}
