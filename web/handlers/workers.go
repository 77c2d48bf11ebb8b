package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/web/common"
)

// ListWorkers returns every known worker.
func (h *Handler) ListWorkers(c *gin.Context) {
	workers, err := h.store.Workers().List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSearchResponse(workers, int64(len(workers))))
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetWorkerActive toggles a worker's activation flag. Workers are never hard
// deleted.
func (h *Handler) SetWorkerActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	workerID := c.Param("id")
	if err := h.store.Workers().SetActive(workerID, *req.IsActive); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("worker not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"worker_id": workerID, "is_active": *req.IsActive}))
}
