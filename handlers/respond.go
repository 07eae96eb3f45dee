package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tillpoint/utils"
)

// respondError translates service-layer errors into HTTP responses. Unknown
// errors are logged and masked as 500s.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		verr  *utils.ValidationError
		nferr *utils.NotFoundError
		cerr  *utils.ConflictError
		uerr  *utils.UnauthorizedError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.As(err, &nferr):
		c.JSON(http.StatusNotFound, gin.H{"error": nferr.Error()})
	case errors.As(err, &cerr):
		c.JSON(http.StatusConflict, gin.H{"error": cerr.Message})
	case errors.As(err, &uerr):
		c.JSON(http.StatusForbidden, gin.H{"error": uerr.Message})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
