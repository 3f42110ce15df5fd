package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Abdullah-Baher/social-app-back/controllers"
)

func AuthRouter(incomingRoutes *gin.Engine, userController *controllers.UserController) {
	incomingRoutes.POST("/signup", userController.SignUp)
	incomingRoutes.POST("/login", userController.Login)
	incomingRoutes.POST("/logout", userController.Logout)
}
