package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HomeRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "social-app-back", "health": "/health"})
	})
	incomingRoutes.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}
