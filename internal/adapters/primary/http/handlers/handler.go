package handlers

import (
	"deploy-bootstrap-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	bootstrapSvc *services.BootstrapService
	preflightSvc *services.PreflightService
}

func New(bootstrapSvc *services.BootstrapService, preflightSvc *services.PreflightService) *Handler {
	return &Handler{
		bootstrapSvc: bootstrapSvc,
		preflightSvc: preflightSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/status", h.GetStatus)
	r.POST("/run", h.TriggerRun)
	r.GET("/preflight", h.RunPreflight)
}
