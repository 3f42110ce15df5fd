package engine

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah-Baher/social-app-back/models"
	"github.com/Abdullah-Baher/social-app-back/store"
)

// BlobRemover deletes stored image blobs. The GridFS bucket satisfies it via
// database.Blobs; tests pass nil.
type BlobRemover interface {
	Remove(ctx context.Context, fileName string) error
}

// Cascade coordinates user deletion: the user's posts go first, then every
// edge on other users that references the deleted user is repaired, and only
// then is the user record itself removed. There is no multi-record
// transaction, so each step is an idempotent operation that is safe to
// re-apply, and Reconcile can finish the job after a partial failure.
type Cascade struct {
	users store.UserStore
	posts store.PostStore
	blobs BlobRemover
}

func NewCascade(users store.UserStore, posts store.PostStore, blobs BlobRemover) *Cascade {
	return &Cascade{users: users, posts: posts, blobs: blobs}
}

// DeleteUser removes the user, their posts and every edge pointing at them.
// Edge repair is best-effort across all referencing users: a failed repair is
// recorded and the pass continues, since partial completion beats none. A
// peer that was concurrently deleted is a no-op, not an error.
func (c *Cascade) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	user, err := c.users.Get(ctx, userID)
	if err != nil {
		return mapStoreErr(err)
	}

	var errs []error

	deleted, err := c.posts.DeleteByCreator(ctx, userID)
	if err != nil {
		errs = append(errs, fmt.Errorf("delete posts: %w", err))
	}
	for _, post := range deleted {
		if c.blobs == nil || post.Image.FileName == "" {
			continue
		}
		if err := c.blobs.Remove(ctx, post.Image.FileName); err != nil {
			errs = append(errs, fmt.Errorf("remove image %s: %w", post.Image.FileName, err))
		}
	}

	for _, followerID := range user.FollowedBy {
		err := c.users.RemoveFollowing(ctx, followerID, userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			errs = append(errs, fmt.Errorf("repair follower %s: %w", followerID.Hex(), err))
		}
	}
	for _, followedID := range user.Following {
		err := c.users.RemoveFollower(ctx, followedID, userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			errs = append(errs, fmt.Errorf("repair followed %s: %w", followedID.Hex(), err))
		}
	}

	// The record goes last: while it exists, a re-run of the cascade can
	// still see the remaining edges and finish the repair.
	if err := c.users.Delete(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		errs = append(errs, fmt.Errorf("delete user: %w", err))
	}
	return errors.Join(errs...)
}

// ReconcileReport counts the repairs applied by a Reconcile pass.
type ReconcileReport struct {
	PrunedFollowing  int
	PrunedFollowedBy int
	PrunedLikes      int
}

// Reconcile sweeps all users and posts and prunes references to nonexistent
// users and one-sided edges. It restores the symmetry invariant after a crash
// mid-operation without operator intervention.
func (c *Cascade) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	users, err := c.users.All(ctx)
	if err != nil {
		return report, err
	}
	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	var errs []error
	for _, user := range users {
		for _, id := range user.Following {
			peer, ok := byID[id]
			if ok && peer.IsFollowedBy(user.ID) {
				continue
			}
			if err := c.users.RemoveFollowing(ctx, user.ID, id); err != nil && !errors.Is(err, store.ErrNotFound) {
				errs = append(errs, err)
				continue
			}
			report.PrunedFollowing++
		}
		for _, id := range user.FollowedBy {
			peer, ok := byID[id]
			if ok && peer.Follows(user.ID) {
				continue
			}
			if err := c.users.RemoveFollower(ctx, user.ID, id); err != nil && !errors.Is(err, store.ErrNotFound) {
				errs = append(errs, err)
				continue
			}
			report.PrunedFollowedBy++
		}
	}

	posts, err := c.posts.All(ctx)
	if err != nil {
		errs = append(errs, err)
		return report, errors.Join(errs...)
	}
	for _, post := range posts {
		for _, id := range post.LikedBy {
			if _, ok := byID[id]; ok {
				continue
			}
			if err := c.posts.RemoveLike(ctx, post.ID, id); err != nil && !errors.Is(err, store.ErrNotFound) {
				errs = append(errs, err)
				continue
			}
			report.PrunedLikes++
		}
	}
	return report, errors.Join(errs...)
}
