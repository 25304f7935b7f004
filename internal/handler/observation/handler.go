package observation

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/handler"
	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/service/observation"
	"github.com/dentalops/dental-admin-api/pkg/errors"
	"github.com/dentalops/dental-admin-api/pkg/httputil"
)

type Handler struct {
	service observation.ObservationService
	*handler.BaseHandler
}

func NewHandler(service observation.ObservationService, base *handler.BaseHandler) *Handler {
	return &Handler{service: service, BaseHandler: base}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	observations := r.Group("/patients/:id/observations")
	{
		observations.POST("", h.CreateObservation)
		observations.GET("", h.ListObservations)
		observations.GET("/:observationId", h.GetObservation)
		observations.PUT("/:observationId", h.UpdateObservation)
	}
}

func (h *Handler) CreateObservation(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	var req model.CreateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	obs, err := h.service.CreateObservation(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "OBSERVATION_CREATE", obs)
	httputil.RespondWithSuccess(c, obs)
}

func (h *Handler) ListObservations(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	var filters model.ObservationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	observations, err := h.service.ListObservations(c.Request.Context(), patientID, &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, observations)
}

func (h *Handler) GetObservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("observationId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid observation ID", err))
		return
	}

	obs, err := h.service.GetObservation(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, obs)
}

func (h *Handler) UpdateObservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("observationId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid observation ID", err))
		return
	}

	var req model.UpdateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	obs, err := h.service.UpdateObservation(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "OBSERVATION_UPDATE", obs)
	httputil.RespondWithSuccess(c, obs)
}
