package prescription

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/handler"
	"github.com/dentalops/dental-admin-api/internal/middleware"
	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/service/prescription"
	"github.com/dentalops/dental-admin-api/pkg/errors"
	"github.com/dentalops/dental-admin-api/pkg/httputil"
)

type Handler struct {
	service prescription.PrescriptionService
	*handler.BaseHandler
}

func NewHandler(service prescription.PrescriptionService, base *handler.BaseHandler) *Handler {
	return &Handler{service: service, BaseHandler: base}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/patients/:id/prescriptions")
	{
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.GET("", h.ListPrescriptions)
		prescriptions.GET("/:prescriptionId", h.GetPrescription)
		prescriptions.POST("/:prescriptionId/issue", h.IssuePrescription)
		prescriptions.POST("/:prescriptionId/dispense", h.DispensePrescription)
	}
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}

	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	p, err := h.service.CreatePrescription(c.Request.Context(), patientID, claims.ClinicianID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PRESCRIPTION_CREATE", p)
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	var filters model.PrescriptionFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	prescriptions, err := h.service.ListPrescriptions(c.Request.Context(), patientID, &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, prescriptions)
}

func (h *Handler) GetPrescription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("prescriptionId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid prescription ID", err))
		return
	}

	p, err := h.service.GetPrescription(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) IssuePrescription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("prescriptionId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid prescription ID", err))
		return
	}

	p, err := h.service.IssuePrescription(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PRESCRIPTION_ISSUE", p)
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) DispensePrescription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("prescriptionId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid prescription ID", err))
		return
	}

	p, err := h.service.DispensePrescription(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PRESCRIPTION_DISPENSE", p)
	httputil.RespondWithSuccess(c, p)
}
