package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Private-Fox7/Empathy-Pulse/services"
	"github.com/Private-Fox7/Empathy-Pulse/store"
)

var (
	classifierService *services.ClassifierService
	alertService      *services.AlertService
)

// InitServices wires the shared service instances into the handler package
func InitServices(classifier *services.ClassifierService, alerts *services.AlertService) {
	classifierService = classifier
	alertService = alerts
}

// storeError translates a document store failure into an HTTP response.
// Version conflicts mean another writer committed first; the caller may
// simply retry the whole action.
func storeError(c *gin.Context, err error, message string) {
	if errors.Is(err, store.ErrVersionConflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Version conflict",
			"message": "The data changed while saving. Please try again.",
		})
		return
	}
	if errors.Is(err, store.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Store operation failed",
		"message": message,
	})
}
