package chart

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	chartsvc "github.com/dentalops/dental-admin-api/internal/service/chart"
	"github.com/dentalops/dental-admin-api/pkg/errors"
	"github.com/dentalops/dental-admin-api/pkg/httputil"
)

type Handler struct {
	service chartsvc.ChartService
}

func NewHandler(service chartsvc.ChartService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	charts := r.Group("/patients/:id/chart")
	{
		charts.GET("", h.GetChart)
		charts.GET("/visits", h.GetVisits)
		charts.GET("/summary", h.GetSummary)
		charts.GET("/stats", h.GetStats)
	}
}

func (h *Handler) GetChart(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	chart, err := h.service.GetChart(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, chart)
}

func (h *Handler) GetVisits(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	visits, err := h.service.GetVisits(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, visits)
}

func (h *Handler) GetSummary(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	summaries, err := h.service.GetSummaries(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, summaries)
}

func (h *Handler) GetStats(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, stats)
}
