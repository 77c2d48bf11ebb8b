package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/ingest"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/store"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/web/common"
)

// UploadTimesheet ingests a timesheet file (CSV or XLSX). The whole file is
// rejected when any row is invalid; nothing is partially ingested.
func (h *Handler) UploadTimesheet(c *gin.Context) {
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

	var upload *ingest.TimesheetUpload
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx":
		upload, err = ingest.ParseTimesheetXLSX(f)
	default:
		upload, err = ingest.ParseTimesheetCSV(f)
	}
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

	var ingested, skipped int
	err = h.store.WithinTransaction(func(tx *store.Store) error {
		type entryKey struct {
			worker       string
			date, timeIn time.Time
		}
		seen := map[entryKey]bool{}
		fresh := make([]model.TimesheetEntry, 0, len(upload.Entries))
		for _, entry := range upload.Entries {
			if err := tx.Workers().EnsureExists(entry.WorkerID); err != nil {
				return err
			}
			key := entryKey{worker: entry.WorkerID, date: entry.Date, timeIn: entry.TimeIn}
			if seen[key] {
				skipped++
				continue
			}
			seen[key] = true
			exists, err := tx.Entries().Exists(entry.WorkerID, entry.Date, entry.TimeIn)
			if err != nil {
				return err
			}
			if exists {
				skipped++
				continue
			}
			fresh = append(fresh, entry)
		}
		if err := tx.Entries().BulkInsert(fresh); err != nil {
			return err
		}
		ingested = len(fresh)
		// Seed wage rate roles for first-time workers whose upload named a
		// position; reconciliation below fills in the rest.
		for workerID, position := range upload.Positions {
			rows, err := tx.WageRates().ForWorker(workerID)
			if err != nil {
				return err
			}
			if len(rows) > 0 {
				continue
			}
			if err := tx.WageRates().Create(&model.WageRate{
				WorkerID: workerID,
				Role:     utils.Ptr(position),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.log.WithError(err).Error("timesheet ingest failed")
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	// Bring every uploaded worker's wage rate up to date so costing works
	// straight after ingest. Workers whose agency cannot be determined are
	// reported but do not fail the upload.
	reconciled := 0
	var unresolved []string
	for _, workerID := range uploadWorkerIDs(upload.Entries) {
		if _, err := h.reconciler().ReconcileWorker(workerID, false); err != nil {
			var unresolvable *core.UnresolvableAgencyError
			if errors.As(err, &unresolvable) {
				h.log.WithField("worker_id", workerID).Warn(err.Error())
				unresolved = append(unresolved, workerID)
				continue
			}
			h.log.WithError(err).Error("post-ingest reconciliation failed")
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		reconciled++
	}

	h.auditUpload(c, fileHeader)
	h.log.WithFields(logrus.Fields{
		"ingested": ingested,
		"skipped":  skipped,
	}).Info("timesheet ingested")
	resp := gin.H{"ingested": ingested, "skipped": skipped, "reconciled": reconciled}
	if len(unresolved) > 0 {
		resp["unresolved_workers"] = unresolved
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(resp))
}

func uploadWorkerIDs(entries []model.TimesheetEntry) []string {
	seen := map[string]bool{}
	var ids []string
	for _, e := range entries {
		if !seen[e.WorkerID] {
			seen[e.WorkerID] = true
			ids = append(ids, e.WorkerID)
		}
	}
	sort.Strings(ids)
	return ids
}

// auditUpload stores a copy of an accepted upload under a fresh name.
func (h *Handler) auditUpload(c *gin.Context, fileHeader *multipart.FileHeader) {
	if h.uploadDir == "" {
		return
	}
	dst := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		h.log.WithError(err).Warn("upload audit copy failed")
	}
}

// ListEntries returns timesheet entries, optionally filtered by worker and
// date range.
func (h *Handler) ListEntries(c *gin.Context) {
	var entries []model.TimesheetEntry
	var err error

	worker := c.Query("worker_id")
	from, to := c.Query("from"), c.Query("to")

	switch {
	case worker != "":
		entries, err = h.store.Timesheets().EntriesForWorker(worker)
	case from != "" && to != "":
		fromDate, ferr := utils.ParseFlexibleDate(from)
		toDate, terr := utils.ParseFlexibleDate(to)
		if ferr != nil || terr != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid from/to date"))
			return
		}
		entries, err = h.store.Entries().Between(fromDate, toDate)
	default:
		entries, err = h.store.Entries().All()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(entries, int64(len(entries))))
}

type updateEntryRequest struct {
	TimeIn       *string `json:"time_in"`
	TimeOut      *string `json:"time_out"`
	LunchMinutes *int    `json:"lunch_minutes" binding:"omitempty,min=0,max=120"`
	Agency       *string `json:"agency"`
}

// UpdateEntry edits the mutable fields of one timesheet entry.
func (h *Handler) UpdateEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid entry id"))
		return
	}

	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	entry, err := h.store.Entries().FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("entry not found"))
		return
	}

	if req.TimeIn != nil {
		t, err := utils.ParseClockTime(entry.Date, *req.TimeIn)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}
		entry.TimeIn = t
	}
	if req.TimeOut != nil {
		t, err := utils.ParseClockTime(entry.Date, *req.TimeOut)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}
		entry.TimeOut = t
	}
	if req.LunchMinutes != nil {
		entry.LunchMinutes = *req.LunchMinutes
	}
	if req.Agency != nil {
		if *req.Agency == "" {
			entry.Agency = nil
		} else {
			entry.Agency = req.Agency
		}
	}

	if err := h.store.Entries().Save(entry); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(entry))
}

// DeleteEntry removes one timesheet entry.
func (h *Handler) DeleteEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid entry id"))
		return
	}
	if err := h.store.Entries().Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"deleted": id}))
}
