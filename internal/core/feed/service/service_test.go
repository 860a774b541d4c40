package feedapp_test

import (
	"context"
	"fmt"
	"testing"

	dbadapter "chirp/internal/adapters/database"
	"chirp/internal/core/apperr"
	feedapp "chirp/internal/core/feed/service"
	followerEntity "chirp/internal/core/follower"
	tweetEntity "chirp/internal/core/tweet"
	userEntity "chirp/internal/core/user"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	svc   *feedapp.FeedService
	users *dbadapter.UserRepositoryDatabase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userEntity.User{},
		&userEntity.CircleMember{},
		&followerEntity.Follower{},
		&tweetEntity.Tweet{},
		&tweetEntity.Hashtag{},
		&tweetEntity.Mention{},
		&tweetEntity.Media{},
		&tweetEntity.Like{},
		&tweetEntity.Bookmark{},
	))

	users := dbadapter.NewUserRepositoryDatabase(db)
	svc := feedapp.NewFeedService(
		dbadapter.NewTweetRepositoryDatabase(db),
		dbadapter.NewEngagementRepositoryDatabase(db),
		users,
		dbadapter.NewFollowerRepositoryDatabase(db),
	)
	return &fixture{db: db, svc: svc, users: users}
}

func (f *fixture) seedUser(t *testing.T, name string) *userEntity.User {
	t.Helper()
	id := uuid.Must(uuid.NewV4())
	u := &userEntity.User{
		ID:       id,
		Name:     name,
		Email:    name + "@example.com",
		Username: "user" + id.String(),
		Password: "x",
		Verify:   userEntity.Verified,
	}
	_, err := f.users.Create(context.Background(), u)
	require.NoError(t, err)
	return u
}

func (f *fixture) seedTweet(t *testing.T, author uuid.UUID, audience tweetEntity.Audience, content string) *tweetEntity.Tweet {
	t.Helper()
	tw := &tweetEntity.Tweet{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   author,
		Type:     tweetEntity.TypeTweet,
		Audience: audience,
		Content:  content,
	}
	require.NoError(t, f.db.Create(tw).Error)
	return tw
}

func (f *fixture) seedChild(t *testing.T, parent uuid.UUID, author uuid.UUID, childType tweetEntity.Type, content string) *tweetEntity.Tweet {
	t.Helper()
	tw := &tweetEntity.Tweet{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   author,
		Type:     childType,
		Audience: tweetEntity.AudienceEveryone,
		ParentID: &parent,
		Content:  content,
	}
	require.NoError(t, f.db.Create(tw).Error)
	return tw
}

func (f *fixture) follow(t *testing.T, follower, followee uuid.UUID) {
	t.Helper()
	require.NoError(t, f.db.Create(&followerEntity.Follower{
		ID:             uuid.Must(uuid.NewV4()),
		UserID:         follower,
		FollowedUserID: followee,
	}).Error)
}

func (f *fixture) storedViews(t *testing.T, id uuid.UUID) (uint64, uint64) {
	t.Helper()
	var tw tweetEntity.Tweet
	require.NoError(t, f.db.Where("id = ?", id).First(&tw).Error)
	return tw.GuestViews, tw.UserViews
}

func TestGetTweetDetailIncrementsViewsDurably(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "alice")
	tw := f.seedTweet(t, author.ID, tweetEntity.AudienceEveryone, "hello")

	// Anonymous read bumps guest_views.
	view, err := f.svc.GetTweetDetail(ctx, tw.ID.String(), "")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), view.GuestViews)
	assert.Equal(t, uint64(0), view.UserViews)

	// Authenticated read bumps user_views.
	reader := f.seedUser(t, "bob")
	view, err = f.svc.GetTweetDetail(ctx, tw.ID.String(), reader.ID.String())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), view.GuestViews)
	assert.Equal(t, uint64(1), view.UserViews)

	// The response counters are the stored ones, not an in-memory echo.
	guest, user := f.storedViews(t, tw.ID)
	assert.Equal(t, view.GuestViews, guest)
	assert.Equal(t, view.UserViews, user)
}

func TestGetTweetDetailUnknownTweet(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetTweetDetail(context.Background(), uuid.Must(uuid.NewV4()).String(), "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestCircleTweetVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "alice")
	member := f.seedUser(t, "bob")
	outsider := f.seedUser(t, "carol")
	tw := f.seedTweet(t, author.ID, tweetEntity.AudienceTwitterCircle, "circle only")
	require.NoError(t, f.users.AddCircleMember(ctx, author.ID.String(), member.ID.String()))

	// Anonymous callers are rejected outright.
	_, err := f.svc.GetTweetDetail(ctx, tw.ID.String(), "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	// A logged-in non-member gets a generic rejection.
	_, err = f.svc.GetTweetDetail(ctx, tw.ID.String(), outsider.ID.String())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeBadRequest))
	assert.Equal(t, "Tweet is not public", err.Error())

	// The author and circle members can read it.
	_, err = f.svc.GetTweetDetail(ctx, tw.ID.String(), author.ID.String())
	require.NoError(t, err)
	_, err = f.svc.GetTweetDetail(ctx, tw.ID.String(), member.ID.String())
	require.NoError(t, err)
}

func TestCircleTweetOfBannedAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "alice")
	member := f.seedUser(t, "bob")
	tw := f.seedTweet(t, author.ID, tweetEntity.AudienceTwitterCircle, "circle only")
	require.NoError(t, f.users.AddCircleMember(ctx, author.ID.String(), member.ID.String()))
	require.NoError(t, f.db.Model(&userEntity.User{}).
		Where("id = ?", author.ID).
		Update("verify", userEntity.Banned).Error)

	_, err := f.svc.GetTweetDetail(ctx, tw.ID.String(), member.ID.String())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.Equal(t, "User not found or banned", err.Error())
}

func TestGetTweetChildrenPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "alice")
	parent := f.seedTweet(t, author.ID, tweetEntity.AudienceEveryone, "parent")
	for i := 0; i < 12; i++ {
		f.seedChild(t, parent.ID, author.ID, tweetEntity.TypeComment, fmt.Sprintf("comment %d", i))
	}
	// A retweet child must not leak into the comment listing.
	f.seedChild(t, parent.ID, author.ID, tweetEntity.TypeRetweet, "")

	page, err := f.svc.GetTweetChildren(ctx, parent.ID.String(), tweetEntity.TypeComment, 3, 5, "")
	require.NoError(t, err)
	assert.Len(t, page.Tweets, 2)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, int64(3), page.TotalPage)

	full, err := f.svc.GetTweetChildren(ctx, parent.ID.String(), tweetEntity.TypeComment, 1, 20, "")
	require.NoError(t, err)
	assert.Len(t, full.Tweets, 12)
	assert.Equal(t, int64(1), full.TotalPage)
}

func TestGetTweetChildrenZeroLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "alice")
	parent := f.seedTweet(t, author.ID, tweetEntity.AudienceEveryone, "parent")
	f.seedChild(t, parent.ID, author.ID, tweetEntity.TypeComment, "only child")

	// A zero limit reaches the service unvalidated; it must not panic.
	page, err := f.svc.GetTweetChildren(ctx, parent.ID.String(), tweetEntity.TypeComment, 1, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalPage)
}

func TestGetTweetChildrenChecksParentAudience(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "alice")
	outsider := f.seedUser(t, "bob")
	parent := f.seedTweet(t, author.ID, tweetEntity.AudienceTwitterCircle, "circle only")
	f.seedChild(t, parent.ID, author.ID, tweetEntity.TypeComment, "hidden too")

	_, err := f.svc.GetTweetChildren(ctx, parent.ID.String(), tweetEntity.TypeComment, 1, 10, outsider.ID.String())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeBadRequest))
}

func TestNewFeedsScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	me := f.seedUser(t, "me")
	followee := f.seedUser(t, "followee")
	stranger := f.seedUser(t, "stranger")
	f.follow(t, me.ID, followee.ID)

	mine := f.seedTweet(t, me.ID, tweetEntity.AudienceEveryone, "mine")
	theirs := f.seedTweet(t, followee.ID, tweetEntity.AudienceEveryone, "theirs")
	f.seedTweet(t, stranger.ID, tweetEntity.AudienceEveryone, "unrelated")

	page, err := f.svc.GetNewFeeds(ctx, me.ID.String(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Tweets, 2)

	got := map[string]bool{}
	for _, v := range page.Tweets {
		got[v.ID] = true
	}
	assert.True(t, got[mine.ID.String()])
	assert.True(t, got[theirs.ID.String()])
}

func TestNewFeedsAppliesCircleRule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	me := f.seedUser(t, "me")
	followee := f.seedUser(t, "followee")
	f.follow(t, me.ID, followee.ID)

	open := f.seedTweet(t, followee.ID, tweetEntity.AudienceEveryone, "open")
	closed := f.seedTweet(t, followee.ID, tweetEntity.AudienceTwitterCircle, "closed")

	page, err := f.svc.GetNewFeeds(ctx, me.ID.String(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Tweets, 1)
	assert.Equal(t, open.ID.String(), page.Tweets[0].ID)

	// Once admitted to the circle the tweet appears.
	require.NoError(t, f.users.AddCircleMember(ctx, followee.ID.String(), me.ID.String()))
	page, err = f.svc.GetNewFeeds(ctx, me.ID.String(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Tweets, 2)
	got := map[string]bool{}
	for _, v := range page.Tweets {
		got[v.ID] = true
	}
	assert.True(t, got[closed.ID.String()])
}

func TestSearchContentAndMediaType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "alice")
	reader := f.seedUser(t, "bob")

	match := f.seedTweet(t, author.ID, tweetEntity.AudienceEveryone, "golang generics are here")
	withVideo := f.seedTweet(t, author.ID, tweetEntity.AudienceEveryone, "golang talk recording")
	require.NoError(t, f.db.Create(&tweetEntity.Media{
		ID:      uuid.Must(uuid.NewV4()),
		TweetID: withVideo.ID,
		URL:     "/statics/videos/talk.mp4",
		Type:    tweetEntity.MediaVideo,
	}).Error)
	f.seedTweet(t, author.ID, tweetEntity.AudienceEveryone, "unrelated")
	f.seedTweet(t, author.ID, tweetEntity.AudienceTwitterCircle, "golang but circle only")

	page, err := f.svc.Search(ctx, tweetPort.SearchQuery{
		Content: "golang", CallerID: reader.ID.String(), Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Tweets, 2)
	found := map[string]bool{}
	for _, v := range page.Tweets {
		found[v.ID] = true
	}
	assert.True(t, found[match.ID.String()])
	assert.True(t, found[withVideo.ID.String()])

	mt := tweetEntity.MediaVideo
	page, err = f.svc.Search(ctx, tweetPort.SearchQuery{
		Content: "golang", MediaType: &mt, CallerID: reader.ID.String(), Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Tweets, 1)
	assert.Equal(t, withVideo.ID.String(), page.Tweets[0].ID)
}

func TestEnrichedViewCarriesCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "alice")
	liker := f.seedUser(t, "bob")
	mentioned := f.seedUser(t, "carol")

	tw := f.seedTweet(t, author.ID, tweetEntity.AudienceEveryone, "enriched")
	f.seedChild(t, tw.ID, liker.ID, tweetEntity.TypeComment, "nice")
	f.seedChild(t, tw.ID, liker.ID, tweetEntity.TypeComment, "very nice")
	f.seedChild(t, tw.ID, liker.ID, tweetEntity.TypeRetweet, "")
	f.seedChild(t, tw.ID, liker.ID, tweetEntity.TypeQuoteTweet, "quoting")

	hashtag := tweetEntity.Hashtag{ID: uuid.Must(uuid.NewV4()), Name: "golang"}
	require.NoError(t, f.db.Create(&hashtag).Error)
	require.NoError(t, f.db.Exec(
		"INSERT INTO tweet_hashtags (tweet_id, hashtag_id) VALUES (?, ?)", tw.ID, hashtag.ID,
	).Error)
	require.NoError(t, f.db.Create(&tweetEntity.Mention{
		ID: uuid.Must(uuid.NewV4()), TweetID: tw.ID, UserID: mentioned.ID,
	}).Error)
	require.NoError(t, f.db.Create(&tweetEntity.Like{
		ID: uuid.Must(uuid.NewV4()), UserID: liker.ID, TweetID: tw.ID,
	}).Error)
	require.NoError(t, f.db.Create(&tweetEntity.Bookmark{
		ID: uuid.Must(uuid.NewV4()), UserID: liker.ID, TweetID: tw.ID,
	}).Error)

	view, err := f.svc.GetTweetDetail(ctx, tw.ID.String(), liker.ID.String())
	require.NoError(t, err)

	assert.Equal(t, int64(2), view.CommentCount)
	assert.Equal(t, int64(1), view.RetweetCount)
	assert.Equal(t, int64(1), view.QuoteCount)
	assert.Equal(t, int64(1), view.Likes)
	assert.Equal(t, int64(1), view.Bookmarks)
	require.Len(t, view.Hashtags, 1)
	assert.Equal(t, "golang", view.Hashtags[0].Name)
	require.Len(t, view.Mentions, 1)
	assert.Equal(t, mentioned.Username, view.Mentions[0].Username)

	// Empty collections render as arrays, not null.
	plain, err := f.svc.GetTweetDetail(ctx, tw.ID.String(), "")
	require.NoError(t, err)
	assert.NotNil(t, plain.Medias)
}
