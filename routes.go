package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine: CORS on everything (404s and preflights
// included), panics converted to a generic 500 that never leaks a stack
// trace, then the route table.
func SetupRouter(h *Handler, cfg *Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(CORSMiddleware(cfg))
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}))

	r.NoRoute(func(c *gin.Context) {
		jsonError(c, http.StatusNotFound, "not found")
	})

	r.GET("/healthz", h.Health)

	// Public routes
	public := r.Group("/public")
	{
		public.POST("/find", h.FindInvite)
		public.GET("/invite", h.GetInvite)
		public.POST("/rsvp", h.SubmitRSVP)
	}

	// Admin routes
	admin := r.Group("/admin")
	{
		admin.POST("/login", h.AdminLogin)

		invites := admin.Group("/invites")
		invites.Use(AuthMiddleware(cfg))
		{
			invites.GET("", h.ListInvites)
			invites.POST("", h.CreateInvite)
			invites.DELETE("", h.DeleteInvite)
		}
	}

	return r
}
