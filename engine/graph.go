package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah-Baher/social-app-back/models"
	"github.com/Abdullah-Baher/social-app-back/store"
)

// Graph owns the bidirectional follow relationship. A follow edge is
// denormalized into two sets: target in actor.following and actor in
// target.followedBy. Both writes happen in a fixed order (actor first), so a
// crash between them leaves a one-sided edge that the read path prunes.
type Graph struct {
	users store.UserStore
}

func NewGraph(users store.UserStore) *Graph {
	return &Graph{users: users}
}

// Follow adds the actor->target edge. Re-following is a no-op.
func (g *Graph) Follow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID == targetID {
		return ErrSelfReference
	}
	if _, err := g.users.Get(ctx, targetID); err != nil {
		return mapStoreErr(err)
	}
	// Actor side first. If the second write never lands, the edge reads as
	// one-sided and gets pruned instead of surfacing a phantom follower.
	if err := g.users.AddFollowing(ctx, actorID, targetID); err != nil {
		return mapStoreErr(err)
	}
	if err := g.users.AddFollower(ctx, targetID, actorID); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// Unfollow removes the actor->target edge. Not following is a no-op.
func (g *Graph) Unfollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if _, err := g.users.Get(ctx, targetID); err != nil {
		return mapStoreErr(err)
	}
	if err := g.users.RemoveFollowing(ctx, actorID, targetID); err != nil {
		return mapStoreErr(err)
	}
	if err := g.users.RemoveFollower(ctx, targetID, actorID); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// ListFollowing resolves the users userID follows, sorted by name. Edges that
// point at deleted users or that the peer does not mirror are pruned from the
// record and omitted from the result.
func (g *Graph) ListFollowing(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	user, err := g.users.Get(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return g.resolveEdges(ctx, user, user.Following, true)
}

// ListFollowers resolves the users following userID, sorted by name, with the
// same pruning discipline as ListFollowing.
func (g *Graph) ListFollowers(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	user, err := g.users.Get(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return g.resolveEdges(ctx, user, user.FollowedBy, false)
}

func (g *Graph) resolveEdges(ctx context.Context, owner models.User, ids []primitive.ObjectID, forward bool) ([]models.User, error) {
	resolved := make([]models.User, 0, len(ids))
	for _, id := range ids {
		peer, err := g.users.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			if err := g.prune(ctx, owner.ID, id, forward); err != nil {
				return nil, fmt.Errorf("prune dangling edge: %w", err)
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		// One-sided edge: the peer does not mirror it. Favor the absent state
		// over a stale reference.
		mirrored := peer.IsFollowedBy(owner.ID)
		if !forward {
			mirrored = peer.Follows(owner.ID)
		}
		if !mirrored {
			if err := g.prune(ctx, owner.ID, id, forward); err != nil {
				return nil, fmt.Errorf("prune one-sided edge: %w", err)
			}
			continue
		}
		resolved = append(resolved, peer)
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].Name < resolved[j].Name })
	return resolved, nil
}

func (g *Graph) prune(ctx context.Context, ownerID, peerID primitive.ObjectID, forward bool) error {
	var err error
	if forward {
		err = g.users.RemoveFollowing(ctx, ownerID, peerID)
	} else {
		err = g.users.RemoveFollower(ctx, ownerID, peerID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
