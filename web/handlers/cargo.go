package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/ingest"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/web/common"
)

// UploadCargo ingests a cargo manifest CSV (Date, MAWB, Carton Number).
func (h *Handler) UploadCargo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("missing upload file"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}
	defer f.Close()

	rows, err := ingest.ParseCargoCSV(f)
	if err != nil {
		if verr, ok := err.(*ingest.ValidationError); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "file rejected, no rows ingested",
				"rows":    verr.Rows,
			})
			return
		}
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}

	if err := h.store.Cargo().BulkInsert(rows); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	h.auditUpload(c, fileHeader)
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"ingested": len(rows)}))
}

// CargoBucket is one period's cargo volume.
type CargoBucket struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// CargoSummary buckets cargo volume by day, month, or year (span parameter).
// metric=carton sums carton counts; metric=mawb counts shipments, each MAWB
// attributed once to the period of its first appearance.
func (h *Handler) CargoSummary(c *gin.Context) {
	span := c.DefaultQuery("span", "day")
	metric := c.DefaultQuery("metric", "carton")

	var periodKey func(time.Time) string
	switch span {
	case "day":
		periodKey = func(t time.Time) string { return t.Format("2006-01-02") }
	case "month":
		periodKey = utils.MonthKey
	case "year":
		periodKey = func(t time.Time) string { return t.Format("2006") }
	default:
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("span must be day, month, or year"))
		return
	}
	if metric != "carton" && metric != "mawb" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("metric must be carton or mawb"))
		return
	}

	rows, err := h.store.Cargo().All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	counts := map[string]int64{}
	if metric == "carton" {
		for i := range rows {
			counts[periodKey(rows[i].Date)] += int64(rows[i].CartonNumber)
		}
	} else {
		// Rows arrive date ascending; the first row wins for each MAWB.
		first := map[string]model.CargoVolume{}
		for i := range rows {
			if _, seen := first[rows[i].MAWB]; !seen {
				first[rows[i].MAWB] = rows[i]
			}
		}
		for _, row := range first {
			counts[periodKey(row.Date)]++
		}
	}

	buckets := make([]CargoBucket, 0, len(counts))
	for period, count := range counts {
		buckets = append(buckets, CargoBucket{Period: period, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Period < buckets[j].Period })

	c.JSON(http.StatusOK, common.NewSearchResponse(buckets, int64(len(buckets))))
}
