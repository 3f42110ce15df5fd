package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdullah-Baher/social-app-back/models"
	"github.com/Abdullah-Baher/social-app-back/store"
)

// Credentials stores passwords as salted bcrypt hashes and verifies
// plaintexts against them. The plaintext is never persisted or logged, and
// bcrypt's comparison is constant-time.
type Credentials struct {
	users store.UserStore
}

func NewCredentials(users store.UserStore) *Credentials {
	return &Credentials{users: users}
}

// Register creates a user with a hashed password and empty graph sets.
func (c *Credentials) Register(ctx context.Context, name, email, plaintext string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Email:      email,
		Password:   string(hash),
		Following:  []primitive.ObjectID{},
		FollowedBy: []primitive.ObjectID{},
		CreatedAt:  time.Now().UTC(),
	}
	if err := c.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return user, nil
}

// SetPassword replaces the stored hash for the user.
func (c *Credentials) SetPassword(ctx context.Context, userID primitive.ObjectID, plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return mapStoreErr(c.users.SetPassword(ctx, userID, string(hash)))
}

// Verify checks the plaintext against the stored hash. It reports match or
// no-match only, never the stored value.
func (c *Credentials) Verify(ctx context.Context, userID primitive.ObjectID, plaintext string) error {
	user, err := c.users.Get(ctx, userID)
	if err != nil {
		return mapStoreErr(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plaintext)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Authenticate resolves email+password to a user. A missing user and a wrong
// password both come back as ErrInvalidCredentials.
func (c *Credentials) Authenticate(ctx context.Context, email, plaintext string) (models.User, error) {
	user, err := c.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plaintext)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
