package procedure

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/handler"
	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/service/procedure"
	"github.com/dentalops/dental-admin-api/pkg/errors"
	"github.com/dentalops/dental-admin-api/pkg/httputil"
)

type Handler struct {
	service procedure.ProcedureService
	*handler.BaseHandler
}

func NewHandler(service procedure.ProcedureService, base *handler.BaseHandler) *Handler {
	return &Handler{service: service, BaseHandler: base}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	procedures := r.Group("/patients/:id/procedures")
	{
		procedures.POST("", h.CreateProcedure)
		procedures.GET("", h.ListProcedures)
		procedures.GET("/:procedureId", h.GetProcedure)
		procedures.PUT("/:procedureId", h.UpdateProcedure)
	}
}

func (h *Handler) CreateProcedure(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	var req model.CreateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	proc, err := h.service.CreateProcedure(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PROCEDURE_CREATE", proc)
	httputil.RespondWithSuccess(c, proc)
}

func (h *Handler) ListProcedures(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid patient ID", err))
		return
	}

	var filters model.ProcedureFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	procedures, err := h.service.ListProcedures(c.Request.Context(), patientID, &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, procedures)
}

func (h *Handler) GetProcedure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("procedureId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid procedure ID", err))
		return
	}

	proc, err := h.service.GetProcedure(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, proc)
}

func (h *Handler) UpdateProcedure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("procedureId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid procedure ID", err))
		return
	}

	var req model.UpdateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	proc, err := h.service.UpdateProcedure(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PROCEDURE_UPDATE", proc)
	httputil.RespondWithSuccess(c, proc)
}
