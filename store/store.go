// Package store is the record-persistence boundary. The engine is written
// against these interfaces, never against a concrete storage engine.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah-Baher/social-app-back/models"
)

var (
	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
)

// UserStore persists user records. All set mutations (following, followedBy)
// are idempotent field-level merges: re-applying the same mutation leaves the
// record unchanged, and concurrent mutations of unrelated fields do not
// overwrite each other.
type UserStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	All(ctx context.Context) ([]models.User, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	SearchByName(ctx context.Context, fragment string, limit int64) ([]models.User, error)

	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) error
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error

	AddFollowing(ctx context.Context, id, target primitive.ObjectID) error
	RemoveFollowing(ctx context.Context, id, target primitive.ObjectID) error
	AddFollower(ctx context.Context, id, follower primitive.ObjectID) error
	RemoveFollower(ctx context.Context, id, follower primitive.ObjectID) error
}

// PostStore persists post records. Like mutations are idempotent set
// operations on the likedBy field.
type PostStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (models.Post, error)
	Insert(ctx context.Context, post models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	UpdateText(ctx context.Context, id primitive.ObjectID, text string) error
	All(ctx context.Context) ([]models.Post, error)
	ByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Post, error)
	ByCreators(ctx context.Context, creators []primitive.ObjectID) ([]models.Post, error)
	DeleteByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Post, error)

	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
}
