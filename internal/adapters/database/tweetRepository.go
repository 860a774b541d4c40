package database

import (
	"context"
	"errors"

	tweetEntity "chirp/internal/core/tweet"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// audienceFilter is the per-tweet visibility predicate shared by the feed
// and search queries: everyone-audience, own tweets, or circle tweets
// whose author admitted the caller.
const audienceFilter = `tweets.audience = ? OR tweets.user_id = ? OR EXISTS (
	SELECT 1 FROM circle_members cm
	WHERE cm.user_id = tweets.user_id AND cm.member_id = ?)`

// TweetRepositoryDatabase implements the tweet port on gorm. The feed
// concerns are separate explicit queries; assembling them into a view is
// the feed service's job.
type TweetRepositoryDatabase struct {
	db *gorm.DB
}

func NewTweetRepositoryDatabase(db *gorm.DB) *TweetRepositoryDatabase {
	return &TweetRepositoryDatabase{db: db}
}

// Create persists the tweet with its medias, upserts hashtags by name and
// links mentions, all in one transaction.
func (repo *TweetRepositoryDatabase) Create(ctx context.Context, t *tweetEntity.Tweet, hashtagNames []string, mentionIDs []string) (*tweetEntity.Tweet, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range hashtagNames {
			var h tweetEntity.Hashtag
			err := tx.Where(&tweetEntity.Hashtag{Name: name}).
				Attrs(&tweetEntity.Hashtag{ID: uuid.Must(uuid.NewV4())}).
				FirstOrCreate(&h).Error
			if err != nil {
				return err
			}
			t.Hashtags = append(t.Hashtags, h)
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		for _, mid := range mentionIDs {
			m := &tweetEntity.Mention{
				ID:      uuid.Must(uuid.NewV4()),
				TweetID: t.ID,
				UserID:  uuid.FromStringOrNil(mid),
			}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (repo *TweetRepositoryDatabase) FindByID(ctx context.Context, id string) (*tweetEntity.Tweet, error) {
	var t tweetEntity.Tweet
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (repo *TweetRepositoryDatabase) ListChildren(ctx context.Context, parentID string, childType tweetEntity.Type, page, limit int) ([]*tweetEntity.Tweet, error) {
	var children []*tweetEntity.Tweet
	err := repo.db.WithContext(ctx).
		Where("parent_id = ? AND type = ?", parentID, childType).
		Order("created_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&children).Error
	if err != nil {
		return nil, err
	}
	return children, nil
}

func (repo *TweetRepositoryDatabase) CountChildren(ctx context.Context, parentID string, childType tweetEntity.Type) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&tweetEntity.Tweet{}).
		Where("parent_id = ? AND type = ?", parentID, childType).
		Count(&count).Error
	return count, err
}

func (repo *TweetRepositoryDatabase) ListFeed(ctx context.Context, authorIDs []string, callerID string, page, limit int) ([]*tweetEntity.Tweet, int64, error) {
	base := repo.db.WithContext(ctx).Model(&tweetEntity.Tweet{}).
		Where("tweets.user_id IN ?", authorIDs).
		Where(audienceFilter, tweetEntity.AudienceEveryone, callerID, callerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweets []*tweetEntity.Tweet
	err := base.Session(&gorm.Session{}).
		Order("created_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tweets).Error
	if err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}

func (repo *TweetRepositoryDatabase) Search(ctx context.Context, q tweetPort.SearchQuery) ([]*tweetEntity.Tweet, int64, error) {
	base := repo.db.WithContext(ctx).Model(&tweetEntity.Tweet{}).
		Where("tweets.content LIKE ?", "%"+q.Content+"%").
		Where(audienceFilter, tweetEntity.AudienceEveryone, q.CallerID, q.CallerID)
	if q.MediaType != nil {
		base = base.Where(`EXISTS (
			SELECT 1 FROM tweet_medias tm
			WHERE tm.tweet_id = tweets.id AND tm.type = ?)`, *q.MediaType)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweets []*tweetEntity.Tweet
	err := base.Session(&gorm.Session{}).
		Order("created_at").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&tweets).Error
	if err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}

// IncrementViews bumps the stored counters without touching updated_at.
func (repo *TweetRepositoryDatabase) IncrementViews(ctx context.Context, ids []string, authenticated bool) error {
	column := "guest_views"
	if authenticated {
		column = "user_views"
	}
	return repo.db.WithContext(ctx).Model(&tweetEntity.Tweet{}).
		Where("id IN ?", ids).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

func (repo *TweetRepositoryDatabase) ViewsByIDs(ctx context.Context, ids []string) (map[string]tweetPort.ViewCounts, error) {
	var rows []struct {
		ID         string
		GuestViews uint64
		UserViews  uint64
	}
	err := repo.db.WithContext(ctx).Model(&tweetEntity.Tweet{}).
		Select("id, guest_views, user_views").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]tweetPort.ViewCounts, len(rows))
	for _, r := range rows {
		out[r.ID] = tweetPort.ViewCounts{GuestViews: r.GuestViews, UserViews: r.UserViews}
	}
	return out, nil
}

func (repo *TweetRepositoryDatabase) HashtagsByTweetIDs(ctx context.Context, ids []string) (map[string][]tweetPort.HashtagDTO, error) {
	var rows []struct {
		TweetID string
		ID      string
		Name    string
	}
	err := repo.db.WithContext(ctx).Table("tweet_hashtags th").
		Select("th.tweet_id AS tweet_id, h.id AS id, h.name AS name").
		Joins("JOIN hashtags h ON h.id = th.hashtag_id").
		Where("th.tweet_id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string][]tweetPort.HashtagDTO)
	for _, r := range rows {
		out[r.TweetID] = append(out[r.TweetID], tweetPort.HashtagDTO{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// MentionsByTweetIDs resolves mentioned users to their non-sensitive
// fields only.
func (repo *TweetRepositoryDatabase) MentionsByTweetIDs(ctx context.Context, ids []string) (map[string][]tweetPort.MentionDTO, error) {
	var rows []struct {
		TweetID  string
		ID       string
		Name     string
		Email    string
		Username string
	}
	err := repo.db.WithContext(ctx).Table("tweet_mentions tm").
		Select("tm.tweet_id AS tweet_id, u.id AS id, u.name AS name, u.email AS email, u.username AS username").
		Joins("JOIN users u ON u.id = tm.user_id").
		Where("tm.tweet_id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string][]tweetPort.MentionDTO)
	for _, r := range rows {
		out[r.TweetID] = append(out[r.TweetID], tweetPort.MentionDTO{
			ID:       r.ID,
			Name:     r.Name,
			Email:    r.Email,
			Username: r.Username,
		})
	}
	return out, nil
}

func (repo *TweetRepositoryDatabase) MediasByTweetIDs(ctx context.Context, ids []string) (map[string][]tweetPort.MediaDTO, error) {
	var medias []tweetEntity.Media
	err := repo.db.WithContext(ctx).
		Where("tweet_id IN ?", ids).
		Order("position").
		Find(&medias).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string][]tweetPort.MediaDTO)
	for _, m := range medias {
		out[m.TweetID.String()] = append(out[m.TweetID.String()], tweetPort.MediaDTO{URL: m.URL, Type: m.Type})
	}
	return out, nil
}

// ChildCountsByParentIDs counts all direct children once and classifies
// them by type, instead of one count query per type.
func (repo *TweetRepositoryDatabase) ChildCountsByParentIDs(ctx context.Context, ids []string) (map[string]tweetPort.ChildCounts, error) {
	var rows []struct {
		ParentID string
		Type     tweetEntity.Type
		Total    int64
	}
	err := repo.db.WithContext(ctx).Model(&tweetEntity.Tweet{}).
		Select("parent_id, type, COUNT(*) AS total").
		Where("parent_id IN ?", ids).
		Group("parent_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]tweetPort.ChildCounts)
	for _, r := range rows {
		cc := out[r.ParentID]
		switch r.Type {
		case tweetEntity.TypeRetweet:
			cc.Retweets = r.Total
		case tweetEntity.TypeComment:
			cc.Comments = r.Total
		case tweetEntity.TypeQuoteTweet:
			cc.Quotes = r.Total
		}
		out[r.ParentID] = cc
	}
	return out, nil
}
