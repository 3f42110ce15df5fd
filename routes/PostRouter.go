package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Abdullah-Baher/social-app-back/controllers"
)

func PostRouter(incomingRoutes *gin.Engine, postController *controllers.PostController, requireAuth gin.HandlerFunc) {
	incomingRoutes.GET("/posts", postController.GetPosts)
	incomingRoutes.GET("/images/:image_name", postController.GetImage)

	protected := incomingRoutes.Group("", requireAuth)
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:post_id", postController.UpdatePost)
	protected.DELETE("/posts/:post_id", postController.DeletePost)
	protected.PATCH("/likes/:post_id", postController.UpdateLikes)
	protected.GET("/likes/:post_id", postController.GetPostLikes)
	protected.GET("/feed", postController.GetFeed)
}
