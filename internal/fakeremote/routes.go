package fakeremote

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the remote task endpoints. Paths keep their trailing slash.
func RegisterRoutes(rg *gin.RouterGroup, s *Service) {
	tasks := rg.Group("/tasks")
	{
		tasks.GET("/", s.list)
		tasks.POST("/", s.create)
		tasks.GET("/stats/", s.stats)
		tasks.POST("/parse/", s.parse)
		tasks.GET("/health/", s.health)
		tasks.GET("/:id/", s.detail)
		tasks.PATCH("/:id/", s.update)
		tasks.PUT("/:id/", s.update)
		tasks.DELETE("/:id/", s.delete)
		tasks.PATCH("/:id/toggle/", s.toggle)
	}
}
