package engine

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah-Baher/social-app-back/models"
	"github.com/Abdullah-Baher/social-app-back/store"
)

// Engagement owns the likedBy set on posts. State transitions are driven by
// an explicit action (like or unlike), never by toggling, so a duplicated
// request can only re-apply the same idempotent set operation.
type Engagement struct {
	posts store.PostStore
	users store.UserStore
}

func NewEngagement(posts store.PostStore, users store.UserStore) *Engagement {
	return &Engagement{posts: posts, users: users}
}

// Like adds userID to the post's likedBy set. Already liked is a no-op.
func (e *Engagement) Like(ctx context.Context, postID, userID primitive.ObjectID) error {
	if _, err := e.users.Get(ctx, userID); err != nil {
		return mapStoreErr(err)
	}
	return mapStoreErr(e.posts.AddLike(ctx, postID, userID))
}

// Unlike removes userID from the post's likedBy set. Not liked is a no-op.
func (e *Engagement) Unlike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return mapStoreErr(e.posts.RemoveLike(ctx, postID, userID))
}

// ListLikers resolves the users that like the post, sorted by name. Ids that
// no longer resolve to a user are skipped; the reconcile pass prunes them.
func (e *Engagement) ListLikers(ctx context.Context, postID primitive.ObjectID) ([]models.User, error) {
	post, err := e.posts.Get(ctx, postID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	likers, err := e.users.ByIDs(ctx, post.LikedBy)
	if err != nil {
		return nil, err
	}
	sort.Slice(likers, func(i, j int) bool { return likers[i].Name < likers[j].Name })
	return likers, nil
}
