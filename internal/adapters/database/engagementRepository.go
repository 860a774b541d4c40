package database

import (
	"context"

	"chirp/internal/core/apperr"
	tweetEntity "chirp/internal/core/tweet"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// EngagementRepositoryDatabase implements the like/bookmark port on gorm.
type EngagementRepositoryDatabase struct {
	db *gorm.DB
}

func NewEngagementRepositoryDatabase(db *gorm.DB) *EngagementRepositoryDatabase {
	return &EngagementRepositoryDatabase{db: db}
}

// LikeTweet upserts: liking an already-liked tweet returns the stored row.
func (repo *EngagementRepositoryDatabase) LikeTweet(ctx context.Context, userID, tweetID string) (*tweetEntity.Like, error) {
	var like tweetEntity.Like
	err := repo.db.WithContext(ctx).
		Where(&tweetEntity.Like{
			UserID:  uuid.FromStringOrNil(userID),
			TweetID: uuid.FromStringOrNil(tweetID),
		}).
		Attrs(&tweetEntity.Like{ID: uuid.Must(uuid.NewV4())}).
		FirstOrCreate(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (repo *EngagementRepositoryDatabase) UnlikeTweet(ctx context.Context, userID, tweetID string) error {
	res := repo.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&tweetEntity.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Like not found")
	}
	return nil
}

func (repo *EngagementRepositoryDatabase) BookmarkTweet(ctx context.Context, userID, tweetID string) (*tweetEntity.Bookmark, error) {
	var bm tweetEntity.Bookmark
	err := repo.db.WithContext(ctx).
		Where(&tweetEntity.Bookmark{
			UserID:  uuid.FromStringOrNil(userID),
			TweetID: uuid.FromStringOrNil(tweetID),
		}).
		Attrs(&tweetEntity.Bookmark{ID: uuid.Must(uuid.NewV4())}).
		FirstOrCreate(&bm).Error
	if err != nil {
		return nil, err
	}
	return &bm, nil
}

func (repo *EngagementRepositoryDatabase) UnbookmarkTweet(ctx context.Context, userID, tweetID string) error {
	res := repo.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&tweetEntity.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Bookmark not found")
	}
	return nil
}

func (repo *EngagementRepositoryDatabase) CountsByTweetIDs(ctx context.Context, tweetIDs []string) (map[string]tweetPort.EngagementCounts, error) {
	out := make(map[string]tweetPort.EngagementCounts, len(tweetIDs))

	var likeRows []struct {
		TweetID string
		Total   int64
	}
	err := repo.db.WithContext(ctx).Model(&tweetEntity.Like{}).
		Select("tweet_id, COUNT(*) AS total").
		Where("tweet_id IN ?", tweetIDs).
		Group("tweet_id").
		Scan(&likeRows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range likeRows {
		ec := out[r.TweetID]
		ec.Likes = r.Total
		out[r.TweetID] = ec
	}

	var bookmarkRows []struct {
		TweetID string
		Total   int64
	}
	err = repo.db.WithContext(ctx).Model(&tweetEntity.Bookmark{}).
		Select("tweet_id, COUNT(*) AS total").
		Where("tweet_id IN ?", tweetIDs).
		Group("tweet_id").
		Scan(&bookmarkRows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range bookmarkRows {
		ec := out[r.TweetID]
		ec.Bookmarks = r.Total
		out[r.TweetID] = ec
	}
	return out, nil
}
