package engagement

import (
	"context"

	tweetEntity "chirp/internal/core/tweet"
	tweetPort "chirp/internal/ports/tweet"
)

// EngagementRepository is the outbound port for likes and bookmarks.
type EngagementRepository interface {
	// LikeTweet / BookmarkTweet upsert: creating an existing pair returns
	// the stored row unchanged.
	LikeTweet(ctx context.Context, userID, tweetID string) (*tweetEntity.Like, error)
	// UnlikeTweet / UnbookmarkTweet report an absent pair as a NotFound
	// domain error.
	UnlikeTweet(ctx context.Context, userID, tweetID string) error
	BookmarkTweet(ctx context.Context, userID, tweetID string) (*tweetEntity.Bookmark, error)
	UnbookmarkTweet(ctx context.Context, userID, tweetID string) error
	CountsByTweetIDs(ctx context.Context, tweetIDs []string) (map[string]tweetPort.EngagementCounts, error)
}

type LikeDTO struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	TweetID string `json:"tweet_id"`
}

type BookmarkDTO struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	TweetID string `json:"tweet_id"`
}
