package tweet

import (
	"context"
	"time"

	tweetEntity "chirp/internal/core/tweet"
)

// SearchQuery narrows the global content search.
type SearchQuery struct {
	Content   string
	MediaType *tweetEntity.MediaType
	CallerID  string
	Page      int
	Limit     int
}

// ViewCounts is the authoritative post-increment counter pair for one tweet.
type ViewCounts struct {
	GuestViews uint64
	UserViews  uint64
}

// ChildCounts classifies the direct children of one tweet by type.
type ChildCounts struct {
	Retweets int64
	Comments int64
	Quotes   int64
}

// EngagementCounts are like/bookmark totals for one tweet.
type EngagementCounts struct {
	Likes     int64
	Bookmarks int64
}

// TweetRepository is the outbound port for tweets, hashtags and the feed
// queries. Each feed concern is its own explicit method rather than one
// opaque pipeline, so the assembly logic stays in-process and testable.
type TweetRepository interface {
	// Create persists the tweet, upserting hashtags by name and attaching
	// mentions and medias in the same transaction.
	Create(ctx context.Context, t *tweetEntity.Tweet, hashtagNames []string, mentionIDs []string) (*tweetEntity.Tweet, error)
	FindByID(ctx context.Context, id string) (*tweetEntity.Tweet, error)

	// ListChildren pages the direct children of parentID with the given
	// type, in insertion order. CountChildren is the total regardless of
	// the page window.
	ListChildren(ctx context.Context, parentID string, childType tweetEntity.Type, page, limit int) ([]*tweetEntity.Tweet, error)
	CountChildren(ctx context.Context, parentID string, childType tweetEntity.Type) (int64, error)

	// ListFeed pages tweets authored by authorIDs that callerID may see:
	// everyone-audience tweets, the caller's own, or circle tweets whose
	// author has the caller in their circle. Returns the page and the
	// total matching count.
	ListFeed(ctx context.Context, authorIDs []string, callerID string, page, limit int) ([]*tweetEntity.Tweet, int64, error)

	// Search matches tweet content globally under the same audience rule.
	Search(ctx context.Context, q SearchQuery) ([]*tweetEntity.Tweet, int64, error)

	// IncrementViews durably bumps user_views (authenticated) or
	// guest_views for every id; ViewsByIDs re-reads the stored counters.
	IncrementViews(ctx context.Context, ids []string, authenticated bool) error
	ViewsByIDs(ctx context.Context, ids []string) (map[string]ViewCounts, error)

	HashtagsByTweetIDs(ctx context.Context, ids []string) (map[string][]HashtagDTO, error)
	MentionsByTweetIDs(ctx context.Context, ids []string) (map[string][]MentionDTO, error)
	MediasByTweetIDs(ctx context.Context, ids []string) (map[string][]MediaDTO, error)
	ChildCountsByParentIDs(ctx context.Context, ids []string) (map[string]ChildCounts, error)
}

type HashtagDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MentionDTO exposes only non-sensitive user fields.
type MentionDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type MediaDTO struct {
	URL  string                `json:"url"`
	Type tweetEntity.MediaType `json:"type"`
}

// TweetView is one fully enriched tweet as returned by every read path.
type TweetView struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	Type         tweetEntity.Type     `json:"type"`
	Audience     tweetEntity.Audience `json:"audience"`
	Content      string               `json:"content"`
	ParentID     *string              `json:"parent_id"`
	Hashtags     []HashtagDTO         `json:"hashtags"`
	Mentions     []MentionDTO         `json:"mentions"`
	Medias       []MediaDTO           `json:"medias"`
	Likes        int64                `json:"likes"`
	Bookmarks    int64                `json:"bookmarks"`
	RetweetCount int64                `json:"retweet_count"`
	CommentCount int64                `json:"comment_count"`
	QuoteCount   int64                `json:"quote_count"`
	GuestViews   uint64               `json:"guest_views"`
	UserViews    uint64               `json:"user_views"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// TweetPage is a page of views plus the pagination envelope fields.
type TweetPage struct {
	Tweets    []*TweetView `json:"tweets"`
	Page      int          `json:"page"`
	Limit     int          `json:"limit"`
	TotalPage int64        `json:"total_page"`
}
