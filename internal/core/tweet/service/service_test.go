package tweetapp_test

import (
	"context"
	"testing"

	dbadapter "chirp/internal/adapters/database"
	"chirp/internal/core/apperr"
	tweetEntity "chirp/internal/core/tweet"
	tweetapp "chirp/internal/core/tweet/service"
	userEntity "chirp/internal/core/user"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userEntity.User{},
		&tweetEntity.Tweet{},
		&tweetEntity.Hashtag{},
		&tweetEntity.Mention{},
		&tweetEntity.Media{},
		&tweetEntity.Like{},
		&tweetEntity.Bookmark{},
	))
	return db
}

func newTestService(t *testing.T) (*tweetapp.TweetService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := tweetapp.NewTweetService(
		dbadapter.NewTweetRepositoryDatabase(db),
		dbadapter.NewEngagementRepositoryDatabase(db),
	)
	return svc, db
}

func newUserID() string { return uuid.Must(uuid.NewV4()).String() }

func TestCreateTweetValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := newUserID()
	parentID := uuid.Must(uuid.NewV4()).String()

	cases := []struct {
		name  string
		body  tweetapp.CreateTweetDTO
		field string
	}{
		{
			name:  "unknown type",
			body:  tweetapp.CreateTweetDTO{Type: 42, Content: "hi"},
			field: "type",
		},
		{
			name:  "unknown audience",
			body:  tweetapp.CreateTweetDTO{Type: tweetEntity.TypeTweet, Audience: 9, Content: "hi"},
			field: "audience",
		},
		{
			name:  "root tweet with parent",
			body:  tweetapp.CreateTweetDTO{Type: tweetEntity.TypeTweet, Content: "hi", ParentID: &parentID},
			field: "parent_id",
		},
		{
			name:  "comment without parent",
			body:  tweetapp.CreateTweetDTO{Type: tweetEntity.TypeComment, Content: "hi"},
			field: "parent_id",
		},
		{
			name:  "retweet with content",
			body:  tweetapp.CreateTweetDTO{Type: tweetEntity.TypeRetweet, ParentID: &parentID, Content: "hi"},
			field: "content",
		},
		{
			name:  "empty tweet",
			body:  tweetapp.CreateTweetDTO{Type: tweetEntity.TypeTweet},
			field: "content",
		},
		{
			name:  "mentions not user ids",
			body:  tweetapp.CreateTweetDTO{Type: tweetEntity.TypeTweet, Content: "hi", Mentions: []string{"@bob"}},
			field: "mentions",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTweet(ctx, userID, &tc.body)
			require.Error(t, err)
			require.True(t, apperr.IsCode(err, apperr.CodeUnprocessableEntity))
			assert.Contains(t, apperr.From(err).Fields, tc.field)
		})
	}
}

func TestCreateTweetParentMustExist(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ghost := uuid.Must(uuid.NewV4()).String()

	_, err := svc.CreateTweet(ctx, newUserID(), &tweetapp.CreateTweetDTO{
		Type:     tweetEntity.TypeComment,
		Content:  "hello",
		ParentID: &ghost,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestCreateTweetUpsertsHashtagsByName(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := newUserID()

	_, err := svc.CreateTweet(ctx, userID, &tweetapp.CreateTweetDTO{
		Type: tweetEntity.TypeTweet, Content: "first", Hashtags: []string{"golang", "news"},
	})
	require.NoError(t, err)
	_, err = svc.CreateTweet(ctx, userID, &tweetapp.CreateTweetDTO{
		Type: tweetEntity.TypeTweet, Content: "second", Hashtags: []string{"golang"},
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&tweetEntity.Hashtag{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var links int64
	require.NoError(t, db.Table("tweet_hashtags").Count(&links).Error)
	assert.Equal(t, int64(3), links)
}

func TestCreateTweetPersistsMentionsAndMedias(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	mentioned := newUserID()

	created, err := svc.CreateTweet(ctx, newUserID(), &tweetapp.CreateTweetDTO{
		Type:     tweetEntity.TypeTweet,
		Content:  "with extras",
		Mentions: []string{mentioned},
		Medias: []tweetPort.MediaDTO{
			{URL: "/statics/images/a.jpg", Type: tweetEntity.MediaImage},
			{URL: "/statics/videos/b.mp4", Type: tweetEntity.MediaVideo},
		},
	})
	require.NoError(t, err)

	var mentions []tweetEntity.Mention
	require.NoError(t, db.Where("tweet_id = ?", created.ID).Find(&mentions).Error)
	require.Len(t, mentions, 1)
	assert.Equal(t, mentioned, mentions[0].UserID.String())

	var medias []tweetEntity.Media
	require.NoError(t, db.Where("tweet_id = ?", created.ID).Order("position").Find(&medias).Error)
	require.Len(t, medias, 2)
	assert.Equal(t, "/statics/images/a.jpg", medias[0].URL)
	assert.Equal(t, 0, medias[0].Position)
	assert.Equal(t, tweetEntity.MediaVideo, medias[1].Type)
	assert.Equal(t, 1, medias[1].Position)
}

func TestLikeTweetIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := newUserID()

	created, err := svc.CreateTweet(ctx, userID, &tweetapp.CreateTweetDTO{
		Type: tweetEntity.TypeTweet, Content: "likeable",
	})
	require.NoError(t, err)

	first, err := svc.LikeTweet(ctx, userID, created.ID.String())
	require.NoError(t, err)
	second, err := svc.LikeTweet(ctx, userID, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&tweetEntity.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUnlikeWithoutLike(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := newUserID()

	created, err := svc.CreateTweet(ctx, userID, &tweetapp.CreateTweetDTO{
		Type: tweetEntity.TypeTweet, Content: "never liked",
	})
	require.NoError(t, err)

	err = svc.UnlikeTweet(ctx, userID, created.ID.String())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestBookmarkLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := newUserID()

	created, err := svc.CreateTweet(ctx, userID, &tweetapp.CreateTweetDTO{
		Type: tweetEntity.TypeTweet, Content: "bookmarkable",
	})
	require.NoError(t, err)
	tweetID := created.ID.String()

	first, err := svc.BookmarkTweet(ctx, userID, tweetID)
	require.NoError(t, err)
	second, err := svc.BookmarkTweet(ctx, userID, tweetID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&tweetEntity.Bookmark{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.UnbookmarkTweet(ctx, userID, tweetID))
	err = svc.UnbookmarkTweet(ctx, userID, tweetID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestEngageUnknownTweet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ghost := uuid.Must(uuid.NewV4()).String()

	_, err := svc.LikeTweet(ctx, newUserID(), ghost)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	_, err = svc.BookmarkTweet(ctx, newUserID(), ghost)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
