package http

import (
	"github.com/gin-gonic/gin"

	"smart-todo-client/internal/task"
	pkgLog "smart-todo-client/pkg/log"
)

// Handler is the JSON and SSE surface of task.UseCase for the presentation layer.
type Handler interface {
	ListTasks(c *gin.Context)
	ListRemote(c *gin.Context)
	CreateTask(c *gin.Context)
	EditTask(c *gin.Context)
	ToggleCompletion(c *gin.Context)
	DeleteTask(c *gin.Context)
	Stats(c *gin.Context)
	Refresh(c *gin.Context)

	SubmitText(c *gin.Context)
	ClearInput(c *gin.Context)
	Interpretation(c *gin.Context)
	AcceptInterpretation(c *gin.Context)
	ApplyInterpretation(c *gin.Context)

	Selection(c *gin.Context)
	Select(c *gin.Context)
	Deselect(c *gin.Context)
	SelectAll(c *gin.Context)
	ClearSelection(c *gin.Context)
	DeletePrompt(c *gin.Context)

	BulkDelete(c *gin.Context)
	BulkCompletion(c *gin.Context)
	BulkPriority(c *gin.Context)
	BulkCategory(c *gin.Context)

	Events(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc task.UseCase
}

// New creates a new HTTP handler over uc.
func New(l pkgLog.Logger, uc task.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
