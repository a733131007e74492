package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.GET("/remote", h.ListRemote)
		tasks.POST("", h.CreateTask)
		tasks.PATCH("/:id", h.EditTask)
		tasks.POST("/:id/toggle", h.ToggleCompletion)
		tasks.DELETE("/:id", h.DeleteTask)
	}
	rg.GET("/stats", h.Stats)
	rg.POST("/refresh", h.Refresh)

	rg.PUT("/input", h.SubmitText)
	rg.DELETE("/input", h.ClearInput)

	interp := rg.Group("/interpretation")
	{
		interp.GET("", h.Interpretation)
		interp.POST("/accept", h.AcceptInterpretation)
		interp.POST("/apply/:id", h.ApplyInterpretation)
	}

	sel := rg.Group("/selection")
	{
		sel.GET("", h.Selection)
		sel.GET("/prompt", h.DeletePrompt)
		sel.POST("/all", h.SelectAll)
		sel.POST("/:id", h.Select)
		sel.DELETE("/:id", h.Deselect)
		sel.DELETE("", h.ClearSelection)
	}

	bulk := rg.Group("/bulk")
	{
		bulk.POST("/delete", h.BulkDelete)
		bulk.POST("/completion", h.BulkCompletion)
		bulk.POST("/priority", h.BulkPriority)
		bulk.POST("/category", h.BulkCategory)
	}

	rg.GET("/events", h.Events)
}
