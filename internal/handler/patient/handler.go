package patient

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/handler"
	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/service/patient"
	"github.com/dentalops/dental-admin-api/pkg/errors"
	"github.com/dentalops/dental-admin-api/pkg/httputil"
)

type Handler struct {
	service patient.PatientService
	*handler.BaseHandler
}

func NewHandler(service patient.PatientService, base *handler.BaseHandler) *Handler {
	return &Handler{service: service, BaseHandler: base}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid clinic ID", err))
		return
	}

	p := &model.Patient{
		ClinicID:    clinicID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Address:     req.Address,
		Allergies:   req.Allergies,
		Notes:       req.Notes,
	}

	p, err = h.service.CreatePatient(c.Request.Context(), p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PATIENT_CREATE", p)
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	applyPatientUpdate(p, &req)

	if err := h.service.UpdatePatient(c.Request.Context(), p); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PATIENT_UPDATE", p)
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PATIENT_DELETE", gin.H{"id": id})
	httputil.RespondWithSuccess(c, gin.H{"id": id})
}

func (h *Handler) ListPatients(c *gin.Context) {
	var filters model.PatientFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context(), &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}

func applyPatientUpdate(p *model.Patient, req *model.UpdatePatientRequest) {
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		p.DateOfBirth = *req.DateOfBirth
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Allergies != nil {
		p.Allergies = *req.Allergies
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
}
