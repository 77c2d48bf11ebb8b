package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/web/common"
)

func (h *Handler) loadEntries(c *gin.Context) ([]model.TimesheetEntry, bool) {
	from, to := c.Query("from"), c.Query("to")
	if from != "" && to != "" {
		fromDate, ferr := utils.ParseFlexibleDate(from)
		toDate, terr := utils.ParseFlexibleDate(to)
		if ferr != nil || terr != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid from/to date"))
			return nil, false
		}
		entries, err := h.store.Entries().Between(fromDate, toDate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return nil, false
		}
		return entries, true
	}

	entries, err := h.store.Entries().All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return nil, false
	}
	return entries, true
}

// WeeklyReport returns per-worker per-ISO-week hour totals with the
// regular/overtime split and overtime alerts.
func (h *Handler) WeeklyReport(c *gin.Context) {
	entries, ok := h.loadEntries(c)
	if !ok {
		return
	}
	summaries := core.WeeklySummaries(entries)
	c.JSON(http.StatusOK, common.NewSearchResponse(summaries, int64(len(summaries))))
}

// AgencyMonthlyReport returns per-agency per-month hour totals.
func (h *Handler) AgencyMonthlyReport(c *gin.Context) {
	entries, ok := h.loadEntries(c)
	if !ok {
		return
	}
	summaries := core.AgencyMonthlySummaries(entries)
	c.JSON(http.StatusOK, common.NewSearchResponse(summaries, int64(len(summaries))))
}

// CostReport prices hours per agency per month. The markup_basis parameter
// chooses between today's markup (current, the default) and the markup in
// effect on each entry's date (historical).
func (h *Handler) CostReport(c *gin.Context) {
	entries, ok := h.loadEntries(c)
	if !ok {
		return
	}

	basis := core.MarkupBasisCurrent
	if raw := c.Query("markup_basis"); raw != "" {
		basis = core.MarkupBasis(raw)
	}

	calc := core.NewCostCalculator(h.store, h.rates, h.now)
	costs, err := calc.AgencyCosts(entries, basis)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSearchResponse(costs, int64(len(costs))))
}

// AgencyPeriods lists a worker's agency tenure history for transfer audits.
func (h *Handler) AgencyPeriods(c *gin.Context) {
	workerID := c.Param("id")
	periods, err := h.history().AgencyPeriods(workerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSearchResponse(periods, int64(len(periods))))
}
