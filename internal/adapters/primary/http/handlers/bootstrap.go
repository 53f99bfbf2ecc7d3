package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"deploy-bootstrap-service/internal/core/domain"
)

// GetStatus returns the result of the most recent bootstrap run.
func (h *Handler) GetStatus(c *gin.Context) {
	if h.bootstrapSvc.InProgress() {
		c.JSON(http.StatusOK, gin.H{"status": domain.StatusInProgress})
		return
	}

	result, err := h.bootstrapSvc.LastResult()
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// TriggerRun starts a bootstrap run in the background. The pipeline can
// outlive the request, so the run is detached from the request context.
func (h *Handler) TriggerRun(c *gin.Context) {
	if h.bootstrapSvc.InProgress() {
		mapDomainError(c, domain.ErrRunInProgress)
		return
	}

	go func() {
		if _, err := h.bootstrapSvc.Run(context.Background()); err != nil {
			log.WithError(err).Error("triggered bootstrap run failed")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": domain.StatusInProgress})
}

// RunPreflight executes the preflight checks synchronously.
func (h *Handler) RunPreflight(c *gin.Context) {
	result := h.preflightSvc.Run(c.Request.Context())
	if !result.OK {
		c.JSON(http.StatusServiceUnavailable, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
