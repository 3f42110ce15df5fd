package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah-Baher/social-app-back/auth"
	"github.com/Abdullah-Baher/social-app-back/cache"
	"github.com/Abdullah-Baher/social-app-back/engine"
	"github.com/Abdullah-Baher/social-app-back/helper"
	"github.com/Abdullah-Baher/social-app-back/middlewares"
	"github.com/Abdullah-Baher/social-app-back/store"
)

var validate = validator.New()

type UserController struct {
	users       store.UserStore
	credentials *engine.Credentials
	cascade     *engine.Cascade
	tokens      *auth.Tokens
	feeds       *cache.FeedCache
}

func NewUserController(users store.UserStore, credentials *engine.Credentials, cascade *engine.Cascade, tokens *auth.Tokens, feeds *cache.FeedCache) *UserController {
	return &UserController{users: users, credentials: credentials, cascade: cascade, tokens: tokens, feeds: feeds}
}

type signUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (uc *UserController) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if !helper.IsStrongPassword(req.Password) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "please provide strong password"})
		return
	}

	user, err := uc.credentials.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "please provide an email and password"})
		return
	}

	user, err := uc.credentials.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, int(uc.tokens.TTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (uc *UserController) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "successfully logged out"})
}

// GetAllUsers lists users sorted by name. With ?name= it becomes a
// case-insensitive substring search capped at 10 results.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	if fragment := c.Query("name"); fragment != "" {
		users, err := uc.users.SearchByName(c.Request.Context(), fragment, 10)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": users})
		return
	}

	users, err := uc.users.All(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (uc *UserController) GetUserById(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := uc.users.Get(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if actor.ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only update your own account"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := uc.users.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "Accepted"})
}

// DeleteUser runs the deletion cascade: the user's posts, every edge on
// other users referencing them, then the record itself.
func (uc *UserController) DeleteUser(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if actor.ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own account"})
		return
	}

	// Capture the follower set before it is repaired away; those viewers'
	// feeds contained this user's posts.
	user, err := uc.users.Get(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}

	if err := uc.cascade.DeleteUser(c.Request.Context(), userID); err != nil {
		log.Printf("cascade delete %s: %v", userID.Hex(), err)
		renderError(c, err)
		return
	}

	uc.feeds.Invalidate(c.Request.Context(), append(user.FollowedBy, userID)...)
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

// Reconcile runs the self-healing pass that prunes dangling and one-sided
// references left behind by partial failures.
func (uc *UserController) Reconcile(c *gin.Context) {
	report, err := uc.cascade.Reconcile(c.Request.Context())
	if err != nil {
		log.Printf("reconcile: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"prunedFollowing":  report.PrunedFollowing,
		"prunedFollowedBy": report.PrunedFollowedBy,
		"prunedLikes":      report.PrunedLikes,
	})
}
