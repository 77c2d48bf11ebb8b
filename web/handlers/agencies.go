package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/web/common"
)

// ListAgencies returns every agency with its markup schedule.
func (h *Handler) ListAgencies(c *gin.Context) {
	agencies, err := h.store.AgencyAdmin().List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSearchResponse(agencies, int64(len(agencies))))
}

type createAgencyRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) CreateAgency(c *gin.Context) {
	var req createAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	agency, err := h.store.AgencyAdmin().FindOrCreate(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(agency))
}

type addMarkupRequest struct {
	Agency        string          `json:"agency" binding:"required"`
	Markup        float64         `json:"markup" binding:"min=0"`
	EffectiveDate common.DateOnly `json:"effective_date" binding:"required"`
}

// AddMarkup appends a point to an agency's markup schedule, registering the
// agency if needed.
func (h *Handler) AddMarkup(c *gin.Context) {
	var req addMarkupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	agency, err := h.store.AgencyAdmin().FindOrCreate(req.Agency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	markup := model.AgencyMarkup{
		AgencyID:      agency.ID,
		Markup:        req.Markup,
		EffectiveDate: utils.DateOf(req.EffectiveDate.Time),
	}
	if err := h.store.AgencyAdmin().AddMarkup(&markup); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(markup))
}

// ResolveMarkup answers what markup an agency charges on a date
// (today when the date parameter is absent).
func (h *Handler) ResolveMarkup(c *gin.Context) {
	name := c.Query("agency")
	if name == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("agency parameter is required"))
		return
	}

	asOf := utils.DateOf(h.now())
	if raw := c.Query("date"); raw != "" {
		parsed, err := utils.ParseFlexibleDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}
		asOf = parsed
	}

	markup, err := core.NewMarkupResolver(h.store.Agencies()).ResolveMarkup(name, asOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"agency": name,
		"as_of":  asOf.Format("2006-01-02"),
		"markup": markup,
	}))
}
