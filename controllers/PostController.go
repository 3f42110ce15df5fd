package controllers

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah-Baher/social-app-back/auth"
	"github.com/Abdullah-Baher/social-app-back/cache"
	"github.com/Abdullah-Baher/social-app-back/database"
	"github.com/Abdullah-Baher/social-app-back/engine"
	"github.com/Abdullah-Baher/social-app-back/middlewares"
	"github.com/Abdullah-Baher/social-app-back/models"
	"github.com/Abdullah-Baher/social-app-back/store"
)

type PostController struct {
	posts      store.PostStore
	users      store.UserStore
	engagement *engine.Engagement
	blobs      *database.Blobs
	feeds      *cache.FeedCache
	hostName   string
}

func NewPostController(posts store.PostStore, users store.UserStore, engagement *engine.Engagement, blobs *database.Blobs, feeds *cache.FeedCache, hostName string) *PostController {
	return &PostController{posts: posts, users: users, engagement: engagement, blobs: blobs, feeds: feeds, hostName: hostName}
}

// CreatePost stores a post owned by the authenticated actor. The image, if
// any, goes to GridFS under a random name; the post only keeps the name and
// retrieval URL.
func (pc *PostController) CreatePost(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
		return
	}

	text := c.PostForm("text")

	var image models.Image
	if file, err := c.FormFile("image"); err == nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "file is not an image"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer src.Close()

		fileName := uuid.NewString() + ext
		if err := pc.blobs.Upload(c.Request.Context(), fileName, src); err != nil {
			renderError(c, err)
			return
		}
		image = models.Image{FileName: fileName, URL: pc.hostName + "images/" + fileName}
	}

	post := models.Post{
		ID:        primitive.NewObjectID(),
		Text:      text,
		Image:     image,
		CreatedBy: actor.ID,
		LikedBy:   []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
	}
	if err := pc.posts.Insert(c.Request.Context(), post); err != nil {
		renderError(c, err)
		return
	}

	pc.feeds.Invalidate(c.Request.Context(), append(actor.FollowedBy, actor.ID)...)
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetPosts lists posts newest first, optionally filtered by ?userId=.
func (pc *PostController) GetPosts(c *gin.Context) {
	ctx := c.Request.Context()

	if idFilter := c.Query("userId"); idFilter != "" {
		creator, err := primitive.ObjectIDFromHex(idFilter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		posts, err := pc.posts.ByCreator(ctx, creator)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"posts": posts})
		return
	}

	posts, err := pc.posts.All(ctx)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

type updatePostRequest struct {
	Text string `json:"text"`
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no text found to be updated"})
		return
	}

	if err := pc.posts.UpdateText(c.Request.Context(), postID, req.Text); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "Accepted"})
}

func (pc *PostController) DeletePost(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
		return
	}
	postID, err := primitive.ObjectIDFromHex(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	ctx := c.Request.Context()
	post, err := pc.posts.Get(ctx, postID)
	if err != nil {
		renderError(c, err)
		return
	}
	if post.CreatedBy != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own posts"})
		return
	}

	if post.Image.FileName != "" {
		if err := pc.blobs.Remove(ctx, post.Image.FileName); err != nil {
			log.Printf("remove image %s: %v", post.Image.FileName, err)
		}
	}
	if err := pc.posts.Delete(ctx, postID); err != nil {
		renderError(c, err)
		return
	}

	pc.feeds.Invalidate(ctx, append(actor.FollowedBy, actor.ID)...)
	c.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}

// GetImage streams a stored image out of GridFS.
func (pc *PostController) GetImage(c *gin.Context) {
	fileName := c.Param("image_name")

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png":
		c.Header("Content-Type", "image/png")
	case ".jpg", ".jpeg":
		c.Header("Content-Type", "image/jpeg")
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "file is not an image"})
		return
	}

	if err := pc.blobs.Download(c.Request.Context(), fileName, c.Writer); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
}

type likeRequest struct {
	Action string `json:"action" binding:"required,oneof=like unlike"`
}

// UpdateLikes applies an explicit like or unlike action from the actor.
func (pc *PostController) UpdateLikes(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
		return
	}
	postID, err := primitive.ObjectIDFromHex(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if req.Action == "like" {
		err = pc.engagement.Like(ctx, postID, actor.ID)
	} else {
		err = pc.engagement.Unlike(ctx, postID, actor.ID)
	}
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "like status updated successfully"})
}

func (pc *PostController) GetPostLikes(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	likers, err := pc.engagement.ListLikers(c.Request.Context(), postID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": likers})
}

// GetFeed returns the actor's own posts and the posts of everyone they
// follow, newest first, served through the redis cache.
func (pc *PostController) GetFeed(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
		return
	}

	ctx := c.Request.Context()
	posts, err := pc.feeds.Fetch(ctx, actor.ID, func() ([]models.Post, error) {
		creators := append([]primitive.ObjectID{actor.ID}, actor.Following...)
		return pc.posts.ByCreators(ctx, creators)
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
