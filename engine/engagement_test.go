package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah-Baher/social-app-back/store"
)

func TestLikeUnlikeSetCorrectness(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	engagement := NewEngagement(posts, users)

	alice := seedUser(t, users, "alice")
	post := seedPost(t, posts, alice.ID, "hello")

	// like, like again, then unlike leaves the set without alice.
	require.NoError(t, engagement.Like(ctx, post.ID, alice.ID))
	require.NoError(t, engagement.Like(ctx, post.ID, alice.ID))

	got, err := posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, got.LikedBy, 1)

	require.NoError(t, engagement.Unlike(ctx, post.ID, alice.ID))
	got, err = posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.LikedBy)
}

func TestUnlikeNeverLikedIsNoop(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	engagement := NewEngagement(posts, users)

	alice := seedUser(t, users, "alice")
	post := seedPost(t, posts, alice.ID, "hello")

	require.NoError(t, engagement.Unlike(ctx, post.ID, alice.ID))
}

func TestLikeMissingPost(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	engagement := NewEngagement(posts, users)

	alice := seedUser(t, users, "alice")

	err := engagement.Like(ctx, primitive.NewObjectID(), alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = engagement.ListLikers(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeByMissingUser(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	engagement := NewEngagement(posts, users)

	alice := seedUser(t, users, "alice")
	post := seedPost(t, posts, alice.ID, "hello")

	err := engagement.Like(ctx, post.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListLikersSkipsStaleIds(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	engagement := NewEngagement(posts, users)

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	post := seedPost(t, posts, alice.ID, "hello")

	require.NoError(t, engagement.Like(ctx, post.ID, bob.ID))
	// A liker deleted without reconciliation leaves a stale id behind.
	require.NoError(t, posts.AddLike(ctx, post.ID, primitive.NewObjectID()))

	likers, err := engagement.ListLikers(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, likers, 1)
	assert.Equal(t, bob.ID, likers[0].ID)
}
