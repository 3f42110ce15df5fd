package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdullah-Baher/social-app-back/engine"
	"github.com/Abdullah-Baher/social-app-back/store"
)

// renderError maps the engine's closed error set to HTTP statuses. Unknown
// errors surface as a generic 500 without internal detail.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrSelfReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrDuplicateEmail), errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": engine.ErrDuplicateEmail.Error()})
	case errors.Is(err, engine.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}
