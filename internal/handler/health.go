package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	c.JSON(code, gin.H{
		"status": "success",
		"data": gin.H{
			"status": status,
		},
	})
}
