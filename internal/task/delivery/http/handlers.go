package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task"
	"smart-todo-client/internal/task/selection"
	"smart-todo-client/pkg/response"
)

var errCompletedRequired = response.NewHTTPError(http.StatusBadRequest, "completed is required")

// fail answers err through mapError and logs it under op.
func (h *handler) fail(c *gin.Context, op string, err error) {
	if isCanceled(err) {
		h.l.Debugf(c.Request.Context(), "%s: %v", op, err)
	} else {
		h.l.Warnf(c.Request.Context(), "%s: %v", op, err)
	}
	mapped := h.mapError(err)
	if errors.Is(mapped, errInternal) {
		response.InternalError(c, err)
		return
	}
	response.Error(c, mapped, nil)
}

func (h *handler) ListTasks(c *gin.Context) {
	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	response.OK(c, newTaskListResp(h.uc.View(req.toFilters())))
}

// ListRemote asks the remote service to filter, bypassing the local collection.
func (h *handler) ListRemote(c *gin.Context) {
	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	tasks, err := h.uc.ListRemote(c.Request.Context(), req.toFilters())
	if err != nil {
		h.fail(c, "uc.ListRemote", err)
		return
	}
	response.OK(c, newTaskListResp(tasks))
}

func (h *handler) CreateTask(c *gin.Context) {
	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	created, err := h.uc.CreateTask(c.Request.Context(), req.toDraft())
	if err != nil {
		h.fail(c, "uc.CreateTask", err)
		return
	}
	response.Created(c, newTaskResp(created))
}

func (h *handler) EditTask(c *gin.Context) {
	id, req, err := h.processEditReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	updated, err := h.uc.EditTask(c.Request.Context(), id, req.toPatch())
	if err != nil {
		h.fail(c, "uc.EditTask", err)
		return
	}
	response.OK(c, newTaskResp(updated))
}

func (h *handler) ToggleCompletion(c *gin.Context) {
	id, err := h.processID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	updated, err := h.uc.ToggleCompletion(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "uc.ToggleCompletion", err)
		return
	}
	response.OK(c, newTaskResp(updated))
}

func (h *handler) DeleteTask(c *gin.Context) {
	id, err := h.processID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.DeleteTask(c.Request.Context(), id); err != nil {
		h.fail(c, "uc.DeleteTask", err)
		return
	}
	response.OK(c, nil)
}

func (h *handler) Stats(c *gin.Context) {
	response.OK(c, newStatsResp(h.uc.Stats()))
}

func (h *handler) Refresh(c *gin.Context) {
	if err := h.uc.Refresh(c.Request.Context()); err != nil {
		h.fail(c, "uc.Refresh", err)
		return
	}
	response.OK(c, newStatsResp(h.uc.Stats()))
}

// SubmitText records the current input text. The interpretation settles in the background.
func (h *handler) SubmitText(c *gin.Context) {
	req, err := h.processInputReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	h.uc.SubmitText(req.Text)
	response.OK(c, newInterpretationResp(h.uc.Interpretation()))
}

func (h *handler) ClearInput(c *gin.Context) {
	h.uc.ClearInput()
	response.OK(c, newInterpretationResp(h.uc.Interpretation()))
}

func (h *handler) Interpretation(c *gin.Context) {
	response.OK(c, newInterpretationResp(h.uc.Interpretation()))
}

func (h *handler) AcceptInterpretation(c *gin.Context) {
	created, err := h.uc.AcceptInterpretation(c.Request.Context())
	if err != nil {
		h.fail(c, "uc.AcceptInterpretation", err)
		return
	}
	response.Created(c, newTaskResp(created))
}

// ApplyInterpretation merges the ready interpretation into an existing task.
func (h *handler) ApplyInterpretation(c *gin.Context) {
	id, err := h.processID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	updated, err := h.uc.AcceptInterpretationForEdit(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "uc.AcceptInterpretationForEdit", err)
		return
	}
	response.OK(c, newTaskResp(updated))
}

func (h *handler) Selection(c *gin.Context) {
	response.OK(c, newSelectionResp(h.uc.Selection()))
}

func (h *handler) Select(c *gin.Context) {
	id, err := h.processID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	if err := h.uc.Select(id); err != nil {
		h.fail(c, "uc.Select", err)
		return
	}
	response.OK(c, newSelectionResp(h.uc.Selection()))
}

func (h *handler) Deselect(c *gin.Context) {
	id, err := h.processID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	h.uc.Deselect(id)
	response.OK(c, newSelectionResp(h.uc.Selection()))
}

// SelectAll selects every task visible under the query filters.
func (h *handler) SelectAll(c *gin.Context) {
	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	h.uc.SelectAll(req.toFilters())
	response.OK(c, newSelectionResp(h.uc.Selection()))
}

func (h *handler) ClearSelection(c *gin.Context) {
	h.uc.ClearSelection()
	response.OK(c, newSelectionResp(h.uc.Selection()))
}

// DeletePrompt returns the confirmation question for deleting the selection.
func (h *handler) DeletePrompt(c *gin.Context) {
	sel := h.uc.Selection()
	if len(sel.IDs) == 0 {
		h.fail(c, "DeletePrompt", task.ErrNoSelection)
		return
	}
	response.OK(c, promptResp{Prompt: h.uc.DeletePrompt(sel.IDs)})
}

func (h *handler) BulkDelete(c *gin.Context) {
	req, err := h.processBulkReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	res, err := h.uc.BulkDelete(c.Request.Context(), req.IDs)
	h.respondBulk(c, "uc.BulkDelete", res, err)
}

func (h *handler) BulkCompletion(c *gin.Context) {
	req, err := h.processBulkReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	if req.Completed == nil {
		response.Error(c, errCompletedRequired, nil)
		return
	}
	res, err := h.uc.BulkSetCompletion(c.Request.Context(), req.IDs, *req.Completed)
	h.respondBulk(c, "uc.BulkSetCompletion", res, err)
}

func (h *handler) BulkPriority(c *gin.Context) {
	req, err := h.processBulkReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	res, err := h.uc.BulkSetPriority(c.Request.Context(), req.IDs, model.Priority(req.Priority))
	h.respondBulk(c, "uc.BulkSetPriority", res, err)
}

func (h *handler) BulkCategory(c *gin.Context) {
	req, err := h.processBulkReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	res, err := h.uc.BulkSetCategory(c.Request.Context(), req.IDs, model.Category(req.Category))
	h.respondBulk(c, "uc.BulkSetCategory", res, err)
}

// respondBulk answers a settled bulk operation with 200 and its per-id outcome, even when members failed.
// Errors raised before dispatch go through mapError.
func (h *handler) respondBulk(c *gin.Context, op string, res selection.BulkResult, err error) {
	if err != nil {
		if !errors.Is(err, selection.ErrPartialFailure) && !errors.Is(err, selection.ErrBulkFailed) {
			h.fail(c, op, err)
			return
		}
		h.l.Warnf(c.Request.Context(), "%s: %v", op, err)
	}
	response.OK(c, newBulkResp(res, h.uc.Selection()))
}
