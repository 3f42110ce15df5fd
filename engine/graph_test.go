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

func seedUser(t *testing.T, users *store.MemoryUserStore, name string) models.User {
	t.Helper()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Email:      name + "@example.com",
		Following:  []primitive.ObjectID{},
		FollowedBy: []primitive.ObjectID{},
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, users.Insert(context.Background(), user))
	return user
}

func TestFollowSymmetry(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	graph := NewGraph(users)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	require.NoError(t, graph.Follow(ctx, alice.ID, bob.ID))

	gotAlice, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	gotBob, err := users.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, gotAlice.Follows(bob.ID))
	assert.True(t, gotBob.IsFollowedBy(alice.ID))

	require.NoError(t, graph.Unfollow(ctx, alice.ID, bob.ID))

	gotAlice, err = users.Get(ctx, alice.ID)
	require.NoError(t, err)
	gotBob, err = users.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, gotAlice.Follows(bob.ID))
	assert.False(t, gotBob.IsFollowedBy(alice.ID))
}

func TestFollowIdempotent(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	graph := NewGraph(users)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	require.NoError(t, graph.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, graph.Follow(ctx, alice.ID, bob.ID))

	gotAlice, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	gotBob, err := users.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, gotAlice.Following, 1)
	assert.Len(t, gotBob.FollowedBy, 1)
}

func TestUnfollowNotFollowingIsNoop(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	graph := NewGraph(users)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	require.NoError(t, graph.Unfollow(ctx, alice.ID, bob.ID))
	require.NoError(t, graph.Unfollow(ctx, alice.ID, bob.ID))

	gotAlice, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, gotAlice.Following)
}

func TestFollowSelf(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	graph := NewGraph(users)
	alice := seedUser(t, users, "alice")

	err := graph.Follow(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfReference)

	gotAlice, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, gotAlice.Following)
	assert.Empty(t, gotAlice.FollowedBy)
}

func TestFollowMissingTarget(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	graph := NewGraph(users)
	alice := seedUser(t, users, "alice")

	err := graph.Follow(ctx, alice.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)

	err = graph.Unfollow(ctx, alice.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFollowingSortedByName(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	graph := NewGraph(users)
	alice := seedUser(t, users, "alice")
	carol := seedUser(t, users, "carol")
	bob := seedUser(t, users, "bob")

	require.NoError(t, graph.Follow(ctx, alice.ID, carol.ID))
	require.NoError(t, graph.Follow(ctx, alice.ID, bob.ID))

	following, err := graph.ListFollowing(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 2)
	assert.Equal(t, "bob", following[0].Name)
	assert.Equal(t, "carol", following[1].Name)
}

func TestListFollowingPrunesDanglingEdge(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	graph := NewGraph(users)
	alice := seedUser(t, users, "alice")

	// Edge pointing at a user that no longer exists.
	ghost := primitive.NewObjectID()
	require.NoError(t, users.AddFollowing(ctx, alice.ID, ghost))

	following, err := graph.ListFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, following)

	gotAlice, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, gotAlice.Following)
}

func TestListFollowingPrunesOneSidedEdge(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	graph := NewGraph(users)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	// Simulate a crash after the actor-side write: bob never learned about it.
	require.NoError(t, users.AddFollowing(ctx, alice.ID, bob.ID))

	following, err := graph.ListFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, following)

	gotAlice, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, gotAlice.Follows(bob.ID))
}

func TestListFollowersPrunesOneSidedEdge(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	graph := NewGraph(users)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	// Simulate a crash mid-unfollow: the actor side was already removed.
	require.NoError(t, users.AddFollower(ctx, bob.ID, alice.ID))

	followers, err := graph.ListFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)

	gotBob, err := users.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, gotBob.FollowedBy)
}
