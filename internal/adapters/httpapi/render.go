package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/common"
	"yatube/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func currentUserID(c *gin.Context) string {
	return middleware.UserID(c)
}

// respondError maps service errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	var fe common.FieldErrors
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, gin.H{"errors": fe})
	default:
		config.Logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func profileURL(username string) string { return "/profile/" + username + "/" }

func postURL(id string) string { return "/posts/" + id + "/" }

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	return next
}
