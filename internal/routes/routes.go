package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"objectcache/internal/auth"
	"objectcache/internal/handlers"
	"objectcache/internal/middleware"
)

func SetupRoutes(h *handlers.Handler, issuer *auth.Issuer, metrics http.Handler) *gin.Engine {
	ginRouter := gin.New()
	// cacher ids may contain "/"; clients escape it as %2F
	ginRouter.UseRawPath = true
	ginRouter.UnescapePathValues = true
	ginRouter.Use(gin.Recovery(), middleware.RequestLogger())

	// CORS middleware (for browser-based admin consoles)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Object cache service is running",
		})
	})
	ginRouter.GET("/metrics", gin.WrapH(metrics))

	api := ginRouter.Group("/api")
	{
		api.POST("/login", h.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware(issuer))
	{
		protectedRoutes.GET("/caches", h.ListCaches)
		protectedRoutes.POST("/caches/expire", h.ExpireAllCaches)
		protectedRoutes.GET("/caches/:id", h.GetCache)
		protectedRoutes.PUT("/caches/:id/config", h.ConfigureCache)
		protectedRoutes.POST("/caches/:id/expire", h.ExpireCache)

		protectedRoutes.GET("/lookups/:category/:code", h.GetLookup)
		protectedRoutes.PUT("/lookups/:category/:code", h.SaveLookup)
		protectedRoutes.DELETE("/lookups/:category/:code", h.DeleteLookup)

		protectedRoutes.GET("/events", h.Events)
	}

	return ginRouter
}
