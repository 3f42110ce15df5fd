package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Abdullah-Baher/social-app-back/controllers"
)

func UserRouter(incomingRoutes *gin.Engine, userController *controllers.UserController, requireAuth gin.HandlerFunc) {
	incomingRoutes.GET("/users", userController.GetAllUsers)
	incomingRoutes.GET("/users/:user_id", userController.GetUserById)

	protected := incomingRoutes.Group("", requireAuth)
	protected.PATCH("/users/:user_id", userController.UpdateUser)
	protected.DELETE("/users/:user_id", userController.DeleteUser)
	protected.POST("/reconcile", userController.Reconcile)
}
