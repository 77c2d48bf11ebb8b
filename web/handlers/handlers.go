package handlers

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/store"
)

// Handler carries the dependencies every endpoint needs. Repositories are
// injected so tests can run against an in-memory database.
type Handler struct {
	store     *store.Store
	rates     *core.RateTable
	log       *logrus.Logger
	now       func() time.Time
	uploadDir string
}

func New(s *store.Store, rates *core.RateTable, log *logrus.Logger) *Handler {
	if rates == nil {
		rates = core.DefaultRateTable()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{store: s, rates: rates, log: log, now: time.Now}
}

// WithUploadDir keeps an audit copy of every accepted upload in dir.
func (h *Handler) WithUploadDir(dir string) *Handler {
	h.uploadDir = dir
	return h
}

func (h *Handler) reconciler() *core.Reconciler {
	return core.NewReconciler(h.store, h.rates, h.now)
}

func (h *Handler) history() *core.History {
	return core.NewHistory(h.store.Timesheets(), h.store.WageRates(), h.now)
}
