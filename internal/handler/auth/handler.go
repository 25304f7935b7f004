package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/service/auth"
	"github.com/dentalops/dental-admin-api/pkg/errors"
	"github.com/dentalops/dental-admin-api/pkg/httputil"
)

type Handler struct {
	service auth.AuthService
}

func NewHandler(service auth.AuthService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, resp)
}
