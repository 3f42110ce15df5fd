package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah-Baher/social-app-back/models"
	"github.com/Abdullah-Baher/social-app-back/store"
)

func seedPost(t *testing.T, posts *store.MemoryPostStore, creator primitive.ObjectID, text string) models.Post {
	t.Helper()
	post := models.Post{
		ID:        primitive.NewObjectID(),
		Text:      text,
		CreatedBy: creator,
		LikedBy:   []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, posts.Insert(context.Background(), post))
	return post
}

func TestDeleteUserCascadeCompleteness(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	graph := NewGraph(users)
	cascade := NewCascade(users, posts, nil)

	victim := seedUser(t, users, "victim")
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	carol := seedUser(t, users, "carol")

	// alice and bob follow victim; victim follows carol.
	require.NoError(t, graph.Follow(ctx, alice.ID, victim.ID))
	require.NoError(t, graph.Follow(ctx, bob.ID, victim.ID))
	require.NoError(t, graph.Follow(ctx, victim.ID, carol.ID))
	seedPost(t, posts, victim.ID, "first")
	seedPost(t, posts, victim.ID, "second")
	kept := seedPost(t, posts, alice.ID, "unrelated")

	require.NoError(t, cascade.DeleteUser(ctx, victim.ID))

	_, err := users.Get(ctx, victim.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	gotAlice, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, gotAlice.Follows(victim.ID))
	gotBob, err := users.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, gotBob.Follows(victim.ID))
	gotCarol, err := users.Get(ctx, carol.ID)
	require.NoError(t, err)
	assert.False(t, gotCarol.IsFollowedBy(victim.ID))

	remaining, err := posts.All(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}

func TestDeleteUserMissing(t *testing.T) {
	ctx := context.Background()
	cascade := NewCascade(store.NewMemoryUserStore(), store.NewMemoryPostStore(), nil)

	err := cascade.DeleteUser(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserToleratesConcurrentlyDeletedPeer(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	cascade := NewCascade(users, posts, nil)

	victim := seedUser(t, users, "victim")

	// Edges referencing a peer that vanished between read and repair.
	ghost := primitive.NewObjectID()
	require.NoError(t, users.AddFollower(ctx, victim.ID, ghost))
	require.NoError(t, users.AddFollowing(ctx, victim.ID, ghost))

	require.NoError(t, cascade.DeleteUser(ctx, victim.ID))

	_, err := users.Get(ctx, victim.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReconcilePrunesPartialState(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	graph := NewGraph(users)
	cascade := NewCascade(users, posts, nil)

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	carol := seedUser(t, users, "carol")
	require.NoError(t, graph.Follow(ctx, alice.ID, bob.ID))

	ghost := primitive.NewObjectID()
	// Half-written follow and unfollow, plus edges at a deleted user.
	require.NoError(t, users.AddFollowing(ctx, alice.ID, carol.ID))
	require.NoError(t, users.AddFollower(ctx, carol.ID, bob.ID))
	require.NoError(t, users.AddFollowing(ctx, bob.ID, ghost))
	require.NoError(t, users.AddFollower(ctx, bob.ID, ghost))

	post := seedPost(t, posts, alice.ID, "hello")
	require.NoError(t, posts.AddLike(ctx, post.ID, bob.ID))
	require.NoError(t, posts.AddLike(ctx, post.ID, ghost))

	report, err := cascade.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.PrunedFollowing)
	assert.Equal(t, 2, report.PrunedFollowedBy)
	assert.Equal(t, 1, report.PrunedLikes)

	// The intact edge and like survive.
	gotAlice, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, gotAlice.Follows(bob.ID))
	gotPost, err := posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{bob.ID}, gotPost.LikedBy)

	// A second pass finds nothing left to repair.
	report, err = cascade.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.PrunedFollowing)
	assert.Zero(t, report.PrunedFollowedBy)
	assert.Zero(t, report.PrunedLikes)
}
