package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/web/common"
)

// ListWageRates returns the full wage rate table.
func (h *Handler) ListWageRates(c *gin.Context) {
	rates, err := h.store.WageRates().All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSearchResponse(rates, int64(len(rates))))
}

type reconcileRequest struct {
	WorkerID string `json:"worker_id"`
	DryRun   bool   `json:"dry_run"`
}

// Reconcile runs wage rate reconciliation: one worker when worker_id is
// given, the whole table otherwise. dry_run previews without committing.
func (h *Handler) Reconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	reconciler := h.reconciler()

	if req.WorkerID != "" {
		result, err := reconciler.ReconcileWorker(req.WorkerID, req.DryRun)
		if err != nil {
			var unresolvable *core.UnresolvableAgencyError
			if errors.As(err, &unresolvable) {
				c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(result))
		return
	}

	summary, err := reconciler.ReconcileAll(req.DryRun)
	if err != nil {
		h.log.WithError(err).Error("batch reconciliation rolled back")
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(
			fmt.Sprintf("reconciliation rolled back, no changes applied: %v", err)))
		return
	}
	h.log.WithFields(map[string]interface{}{
		"created":   summary.Created,
		"updated":   summary.Updated,
		"unchanged": summary.Unchanged,
		"errors":    len(summary.Errors),
		"dry_run":   req.DryRun,
	}).Info("reconciliation finished")
	c.JSON(http.StatusOK, common.NewSuccessResponse(summary))
}

type dedupeRequest struct {
	WorkerID string `json:"worker_id"`
	DryRun   bool   `json:"dry_run"`
}

// Dedupe collapses duplicate wage rate rows, then reconciles the survivors.
func (h *Handler) Dedupe(c *gin.Context) {
	var req dedupeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	reconciler := h.reconciler()

	if req.WorkerID != "" {
		result, err := reconciler.Deduplicate(req.WorkerID, req.DryRun)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(result))
		return
	}

	results, err := reconciler.DeduplicateAll(req.DryRun)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(results))
}

// AnalyzeWageRates reports table health: row counts, completeness, and
// workers with duplicate rows.
func (h *Handler) AnalyzeWageRates(c *gin.Context) {
	analysis, err := h.reconciler().Analyze()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(analysis))
}

// ExportWageRates streams the wage rate table as CSV.
func (h *Handler) ExportWageRates(c *gin.Context) {
	rates, err := h.store.WageRates().All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	filename := core.BackupFilename(h.now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv")
	if err := core.WriteWageRateCSV(c.Writer, rates); err != nil {
		h.log.WithError(err).Error("wage rate export failed")
	}
}

// DeleteWageRate removes one wage rate row by id (administrative action).
func (h *Handler) DeleteWageRate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid wage rate id"))
		return
	}
	if err := h.store.WageRates().Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"deleted": id}))
}
