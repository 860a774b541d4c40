package feedapp

import (
	"context"

	"chirp/internal/core/apperr"
	tweetEntity "chirp/internal/core/tweet"
	userEntity "chirp/internal/core/user"
	engagementPort "chirp/internal/ports/engagement"
	followerPort "chirp/internal/ports/follower"
	tweetPort "chirp/internal/ports/tweet"
	userPort "chirp/internal/ports/user"
)

// FeedService assembles enriched tweet views for the read paths: tweet
// detail, a tweet's children, the home feed and search. Every path shares
// the same enrichment and the same view-increment contract: the increment
// is persisted first and the stored counters are re-read before the
// response is built, so the returned counts are never stale.
type FeedService struct {
	TweetRepository      tweetPort.TweetRepository
	EngagementRepository engagementPort.EngagementRepository
	UserRepository       userPort.UserRepository
	FollowerRepository   followerPort.FollowerRepository
}

func NewFeedService(
	tweetRepo tweetPort.TweetRepository,
	engagementRepo engagementPort.EngagementRepository,
	userRepo userPort.UserRepository,
	followerRepo followerPort.FollowerRepository,
) *FeedService {
	return &FeedService{
		TweetRepository:      tweetRepo,
		EngagementRepository: engagementRepo,
		UserRepository:       userRepo,
		FollowerRepository:   followerRepo,
	}
}

// GetTweetDetail returns one enriched tweet. callerID is empty for
// anonymous callers.
func (s *FeedService) GetTweetDetail(ctx context.Context, tweetID, callerID string) (*tweetPort.TweetView, error) {
	t, err := s.TweetRepository.FindByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("Tweet ID not found")
	}
	if err := s.checkAudience(ctx, t, callerID); err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, []*tweetEntity.Tweet{t}, callerID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// GetTweetChildren pages the direct children of one tweet filtered by
// child type. The total count is computed independently of the window.
func (s *FeedService) GetTweetChildren(ctx context.Context, tweetID string, childType tweetEntity.Type, page, limit int, callerID string) (*tweetPort.TweetPage, error) {
	parent, err := s.TweetRepository.FindByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperr.NotFound("Tweet ID not found")
	}
	if err := s.checkAudience(ctx, parent, callerID); err != nil {
		return nil, err
	}

	children, err := s.TweetRepository.ListChildren(ctx, tweetID, childType, page, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.TweetRepository.CountChildren(ctx, tweetID, childType)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, children, callerID)
	if err != nil {
		return nil, err
	}
	return paginate(views, page, limit, total), nil
}

// GetNewFeeds pages tweets authored by the caller and their followees,
// with the circle rule applied per tweet in the query itself.
func (s *FeedService) GetNewFeeds(ctx context.Context, callerID string, page, limit int) (*tweetPort.TweetPage, error) {
	followees, err := s.FollowerRepository.FolloweeIDs(ctx, callerID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followees, callerID)

	tweets, total, err := s.TweetRepository.ListFeed(ctx, authorIDs, callerID, page, limit)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, tweets, callerID)
	if err != nil {
		return nil, err
	}
	return paginate(views, page, limit, total), nil
}

// Search matches tweet content globally under the audience rule; the
// follow graph does not restrict it.
func (s *FeedService) Search(ctx context.Context, q tweetPort.SearchQuery) (*tweetPort.TweetPage, error) {
	tweets, total, err := s.TweetRepository.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, tweets, q.CallerID)
	if err != nil {
		return nil, err
	}
	return paginate(views, q.Page, q.Limit, total), nil
}

// checkAudience enforces the visibility rule for circle-only tweets.
func (s *FeedService) checkAudience(ctx context.Context, t *tweetEntity.Tweet, callerID string) error {
	if t.Audience != tweetEntity.AudienceTwitterCircle {
		return nil
	}
	if callerID == "" {
		return apperr.Unauthorized("You must be logged in to view this tweet")
	}
	author, err := s.UserRepository.FindByID(ctx, t.UserID.String())
	if err != nil {
		return err
	}
	if author == nil || author.Verify == userEntity.Banned {
		return apperr.NotFound("User not found or banned")
	}
	if author.ID.String() == callerID {
		return nil
	}
	inCircle, err := s.UserRepository.IsCircleMember(ctx, author.ID.String(), callerID)
	if err != nil {
		return err
	}
	if !inCircle {
		return apperr.BadRequest("Tweet is not public")
	}
	return nil
}

// enrich increments views durably, re-reads the counters, and joins
// hashtags, mentions, medias, engagement counts and child counts onto the
// raw tweets. Child counts come from one grouped children query, not one
// query per type.
func (s *FeedService) enrich(ctx context.Context, tweets []*tweetEntity.Tweet, callerID string) ([]*tweetPort.TweetView, error) {
	if len(tweets) == 0 {
		return []*tweetPort.TweetView{}, nil
	}

	ids := make([]string, len(tweets))
	for i, t := range tweets {
		ids[i] = t.ID.String()
	}

	if err := s.TweetRepository.IncrementViews(ctx, ids, callerID != ""); err != nil {
		return nil, err
	}
	views, err := s.TweetRepository.ViewsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	hashtags, err := s.TweetRepository.HashtagsByTweetIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	mentions, err := s.TweetRepository.MentionsByTweetIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	medias, err := s.TweetRepository.MediasByTweetIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	childCounts, err := s.TweetRepository.ChildCountsByParentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	engagement, err := s.EngagementRepository.CountsByTweetIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*tweetPort.TweetView, len(tweets))
	for i, t := range tweets {
		id := t.ID.String()
		view := &tweetPort.TweetView{
			ID:        id,
			UserID:    t.UserID.String(),
			Type:      t.Type,
			Audience:  t.Audience,
			Content:   t.Content,
			Hashtags:  orEmptyHashtags(hashtags[id]),
			Mentions:  orEmptyMentions(mentions[id]),
			Medias:    orEmptyMedias(medias[id]),
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}
		if t.ParentID != nil {
			pid := t.ParentID.String()
			view.ParentID = &pid
		}
		if vc, ok := views[id]; ok {
			view.GuestViews = vc.GuestViews
			view.UserViews = vc.UserViews
		}
		if cc, ok := childCounts[id]; ok {
			view.RetweetCount = cc.Retweets
			view.CommentCount = cc.Comments
			view.QuoteCount = cc.Quotes
		}
		if ec, ok := engagement[id]; ok {
			view.Likes = ec.Likes
			view.Bookmarks = ec.Bookmarks
		}
		out[i] = view
	}
	return out, nil
}

func paginate(views []*tweetPort.TweetView, page, limit int, total int64) *tweetPort.TweetPage {
	// Callers validate the window, but a zero limit must not divide here.
	if limit < 1 {
		limit = 1
	}
	totalPage := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPage++
	}
	return &tweetPort.TweetPage{
		Tweets:    views,
		Page:      page,
		Limit:     limit,
		TotalPage: totalPage,
	}
}

func orEmptyHashtags(v []tweetPort.HashtagDTO) []tweetPort.HashtagDTO {
	if v == nil {
		return []tweetPort.HashtagDTO{}
	}
	return v
}

func orEmptyMentions(v []tweetPort.MentionDTO) []tweetPort.MentionDTO {
	if v == nil {
		return []tweetPort.MentionDTO{}
	}
	return v
}

func orEmptyMedias(v []tweetPort.MediaDTO) []tweetPort.MediaDTO {
	if v == nil {
		return []tweetPort.MediaDTO{}
	}
	return v
}
