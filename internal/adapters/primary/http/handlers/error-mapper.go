package handlers

import (
	"errors"
	"net/http"

	"deploy-bootstrap-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoRunRecorded):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrRunInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrManifestNotFound),
		errors.Is(err, domain.ErrManifestNotRegularFile),
		errors.Is(err, domain.ErrStaticRootNotWritable),
		errors.Is(err, domain.ErrDatabaseUnreachable),
		errors.Is(err, domain.ErrMigrationTableUnreadable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
