package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Abdullah-Baher/social-app-back/controllers"
)

func ConnectionRouter(incomingRoutes *gin.Engine, connectionController *controllers.ConnectionController, requireAuth gin.HandlerFunc) {
	protected := incomingRoutes.Group("", requireAuth)
	protected.PATCH("/follow/:user_id", connectionController.UpdateFollowedUsers)
	protected.GET("/following/:user_id", connectionController.GetAllFollowing)
	protected.GET("/followers/:user_id", connectionController.GetAllFollowers)
}
