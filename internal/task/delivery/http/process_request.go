package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *handler) processID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	err := c.ShouldBindQuery(&req)
	return req, err
}

func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	err := c.ShouldBindJSON(&req)
	return req, err
}

func (h *handler) processEditReq(c *gin.Context) (int64, editReq, error) {
	var req editReq
	id, err := h.processID(c)
	if err != nil {
		return 0, req, err
	}
	err = c.ShouldBindJSON(&req)
	return id, req, err
}

func (h *handler) processInputReq(c *gin.Context) (inputReq, error) {
	var req inputReq
	err := c.ShouldBindJSON(&req)
	return req, err
}

// processBulkReq binds an optional body; an empty body targets the current selection.
func (h *handler) processBulkReq(c *gin.Context) (bulkReq, error) {
	var req bulkReq
	if c.Request.ContentLength == 0 {
		return req, nil
	}
	err := c.ShouldBindJSON(&req)
	return req, err
}
