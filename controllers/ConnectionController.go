package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah-Baher/social-app-back/auth"
	"github.com/Abdullah-Baher/social-app-back/cache"
	"github.com/Abdullah-Baher/social-app-back/engine"
	"github.com/Abdullah-Baher/social-app-back/middlewares"
)

type ConnectionController struct {
	graph *engine.Graph
	feeds *cache.FeedCache
}

func NewConnectionController(graph *engine.Graph, feeds *cache.FeedCache) *ConnectionController {
	return &ConnectionController{graph: graph, feeds: feeds}
}

type followRequest struct {
	Action string `json:"action" binding:"required,oneof=follow unfollow"`
}

// UpdateFollowedUsers applies an explicit follow or unfollow action from the
// authenticated actor to the target user. Repeating the same action is a
// no-op, so duplicated requests can never flip the edge back.
func (cc *ConnectionController) UpdateFollowedUsers(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if req.Action == "follow" {
		err = cc.graph.Follow(ctx, actor.ID, targetID)
	} else {
		err = cc.graph.Unfollow(ctx, actor.ID, targetID)
	}
	if err != nil {
		renderError(c, err)
		return
	}

	// The actor's feed composition changed.
	cc.feeds.Invalidate(ctx, actor.ID)
	c.JSON(http.StatusOK, gin.H{"message": "user " + req.Action + "ed successfully"})
}

func (cc *ConnectionController) GetAllFollowing(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	users, err := cc.graph.ListFollowing(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (cc *ConnectionController) GetAllFollowers(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	users, err := cc.graph.ListFollowers(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}
