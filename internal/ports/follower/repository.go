package follower

import (
	"context"

	followerEntity "chirp/internal/core/follower"
)

// FollowerRepository is the outbound port for follow edges.
type FollowerRepository interface {
	Follow(ctx context.Context, edge *followerEntity.Follower) (*followerEntity.Follower, error)
	Unfollow(ctx context.Context, userID, followedUserID string) error
	Exists(ctx context.Context, userID, followedUserID string) (bool, error)
	FolloweeIDs(ctx context.Context, userID string) ([]string, error)
}
