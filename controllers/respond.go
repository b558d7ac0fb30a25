package controllers

import (
	"errors"
	"net/http"

	apperrors "checkout-service/errors"
	"checkout-service/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps a BusinessError to its HTTP status with the code intact;
// anything else is logged with context and surfaced as a generic 500.
func respondError(c *gin.Context, operation string, err error) {
	var bizErr *apperrors.BusinessError
	if errors.As(err, &bizErr) {
		c.JSON(bizErr.Status, gin.H{"code": bizErr.Code, "error": bizErr.Message})
		return
	}

	logger.Error(c, operation+" failed", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": operation + " failed"})
}
