package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/web/common"
)

// DashboardMetrics summarizes the current labor picture for the landing view.
type DashboardMetrics struct {
	WeekTotalHours     float64 `json:"week_total_hours"`
	LastWeekTotalHours float64 `json:"last_week_total_hours"`
	WeekOverWeekPct    float64 `json:"week_over_week_pct"`
	WeekOvertimeHours  float64 `json:"week_overtime_hours"`
	ActiveWorkers      int     `json:"active_workers"`
	AvgWeeklyHours     float64 `json:"avg_weekly_hours"`
	MaxWeeklyHours     float64 `json:"max_weekly_hours"`
	MinWeeklyHours     float64 `json:"min_weekly_hours"`
}

// Dashboard returns this week's headline metrics plus the per-worker weekly
// summaries for the current ISO week.
func (h *Handler) Dashboard(c *gin.Context) {
	entries, err := h.store.Entries().All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	summaries := core.WeeklySummaries(entries)

	year, week := utils.DateOf(h.now()).ISOWeek()
	lastYear, lastWeek := utils.DateOf(h.now()).AddDate(0, 0, -7).ISOWeek()

	var metrics DashboardMetrics
	var current []core.WeeklySummary
	for _, s := range summaries {
		if s.Year == year && s.Week == week {
			current = append(current, s)
			metrics.WeekTotalHours += s.TotalHours
			metrics.WeekOvertimeHours += s.OvertimeHours
			if len(current) == 1 || s.TotalHours > metrics.MaxWeeklyHours {
				metrics.MaxWeeklyHours = s.TotalHours
			}
			if len(current) == 1 || s.TotalHours < metrics.MinWeeklyHours {
				metrics.MinWeeklyHours = s.TotalHours
			}
		}
		if s.Year == lastYear && s.Week == lastWeek {
			metrics.LastWeekTotalHours += s.TotalHours
		}
	}
	if len(current) > 0 {
		metrics.AvgWeeklyHours = metrics.WeekTotalHours / float64(len(current))
	}
	if metrics.LastWeekTotalHours > 0 {
		metrics.WeekOverWeekPct = (metrics.WeekTotalHours - metrics.LastWeekTotalHours) / metrics.LastWeekTotalHours * 100
	}

	workers, err := h.store.Workers().ActiveIDs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	metrics.ActiveWorkers = len(workers)

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"metrics": metrics,
		"weekly":  current,
	}))
}
