package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/handler"
	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/service/appointment"
	"github.com/dentalops/dental-admin-api/pkg/errors"
	"github.com/dentalops/dental-admin-api/pkg/httputil"
)

type Handler struct {
	service appointment.AppointmentService
	*handler.BaseHandler
}

func NewHandler(service appointment.AppointmentService, base *handler.BaseHandler) *Handler {
	return &Handler{service: service, BaseHandler: base}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/appointments", h.ListAppointments)
	r.GET("/appointments/:appointmentId", h.GetAppointment)
	r.PUT("/appointments/:appointmentId/status", h.UpdateStatus)
	r.POST("/patients/:id/appointments", h.CreateAppointment)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	appt, err := h.service.CreateAppointment(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "APPOINTMENT_CREATE", appt)
	httputil.RespondWithSuccess(c, appt)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("appointmentId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid appointment ID", err))
		return
	}

	appt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	var filters model.AppointmentFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

type updateStatusRequest struct {
	Status       model.AppointmentStatus `json:"status" binding:"required,oneof=scheduled confirmed cancelled completed"`
	CancelReason *string                 `json:"cancel_reason"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("appointmentId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid appointment ID", err))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	appt, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, req.CancelReason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "APPOINTMENT_STATUS_UPDATE", appt)
	httputil.RespondWithSuccess(c, appt)
}
