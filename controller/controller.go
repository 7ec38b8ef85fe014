package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MyALF-Z/AI-Agent/models"
)

// respondError maps the error taxonomy to HTTP: invalid requests are 400,
// upstream failures propagate the upstream status and body, everything else
// is a 500.
func respondError(ctx *gin.Context, err error) {
	if errors.Is(err, models.ErrInvalidRequest) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ue, ok := models.AsUpstreamError(err); ok {
		ctx.JSON(ue.Status, gin.H{"error": ue.Body})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
