package tweetapp

import (
	"context"

	"chirp/internal/core/apperr"
	tweetEntity "chirp/internal/core/tweet"
	engagementPort "chirp/internal/ports/engagement"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gofrs/uuid"
)

// CreateTweetDTO is the write payload for all four tweet types.
type CreateTweetDTO struct {
	Type     tweetEntity.Type     `json:"type"`
	Audience tweetEntity.Audience `json:"audience"`
	Content  string               `json:"content"`
	ParentID *string              `json:"parent_id"`
	Hashtags []string             `json:"hashtags"`
	Mentions []string             `json:"mentions"`
	Medias   []tweetPort.MediaDTO `json:"medias"`
}

// TweetService owns tweet creation and the like/bookmark pairs.
type TweetService struct {
	TweetRepository      tweetPort.TweetRepository
	EngagementRepository engagementPort.EngagementRepository
}

func NewTweetService(tweetRepo tweetPort.TweetRepository, engagementRepo engagementPort.EngagementRepository) *TweetService {
	return &TweetService{
		TweetRepository:      tweetRepo,
		EngagementRepository: engagementRepo,
	}
}

// CreateTweet validates the type/parent/content invariants, upserts the
// referenced hashtags by name and persists the tweet.
func (s *TweetService) CreateTweet(ctx context.Context, userID string, body *CreateTweetDTO) (*tweetEntity.Tweet, error) {
	if err := s.validateCreate(ctx, body); err != nil {
		return nil, err
	}

	t := &tweetEntity.Tweet{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   uuid.FromStringOrNil(userID),
		Type:     body.Type,
		Audience: body.Audience,
		Content:  body.Content,
	}
	if body.ParentID != nil {
		pid := uuid.FromStringOrNil(*body.ParentID)
		t.ParentID = &pid
	}
	for i, m := range body.Medias {
		t.Medias = append(t.Medias, tweetEntity.Media{
			ID:       uuid.Must(uuid.NewV4()),
			TweetID:  t.ID,
			URL:      m.URL,
			Type:     m.Type,
			Position: i,
		})
	}

	return s.TweetRepository.Create(ctx, t, body.Hashtags, body.Mentions)
}

func (s *TweetService) validateCreate(ctx context.Context, body *CreateTweetDTO) error {
	fields := map[string]string{}

	switch body.Type {
	case tweetEntity.TypeTweet, tweetEntity.TypeRetweet, tweetEntity.TypeComment, tweetEntity.TypeQuoteTweet:
	default:
		fields["type"] = "Type is invalid"
	}
	switch body.Audience {
	case tweetEntity.AudienceEveryone, tweetEntity.AudienceTwitterCircle:
	default:
		fields["audience"] = "Audience is invalid"
	}

	switch body.Type {
	case tweetEntity.TypeTweet:
		if body.ParentID != nil {
			fields["parent_id"] = "Parent id must be null"
		}
	default:
		if body.ParentID == nil || uuid.FromStringOrNil(*body.ParentID) == uuid.Nil {
			fields["parent_id"] = "Parent id is invalid"
		}
	}

	if body.Type == tweetEntity.TypeRetweet {
		if body.Content != "" {
			fields["content"] = "Retweet must not have content"
		}
	} else if body.Content == "" && len(body.Hashtags) == 0 && len(body.Mentions) == 0 {
		fields["content"] = "Content must not be empty"
	}

	for _, m := range body.Mentions {
		if uuid.FromStringOrNil(m) == uuid.Nil {
			fields["mentions"] = "Mentions must be an array of user ids"
			break
		}
	}

	if len(fields) > 0 {
		return apperr.UnprocessableEntity("Validation error", fields)
	}

	if body.ParentID != nil {
		parent, err := s.TweetRepository.FindByID(ctx, *body.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return apperr.NotFound("Parent tweet not found")
		}
	}
	return nil
}

func (s *TweetService) LikeTweet(ctx context.Context, userID, tweetID string) (*engagementPort.LikeDTO, error) {
	if err := s.mustFindTweet(ctx, tweetID); err != nil {
		return nil, err
	}
	like, err := s.EngagementRepository.LikeTweet(ctx, userID, tweetID)
	if err != nil {
		return nil, err
	}
	return &engagementPort.LikeDTO{
		ID:      like.ID.String(),
		UserID:  like.UserID.String(),
		TweetID: like.TweetID.String(),
	}, nil
}

func (s *TweetService) UnlikeTweet(ctx context.Context, userID, tweetID string) error {
	if err := s.mustFindTweet(ctx, tweetID); err != nil {
		return err
	}
	return s.EngagementRepository.UnlikeTweet(ctx, userID, tweetID)
}

func (s *TweetService) BookmarkTweet(ctx context.Context, userID, tweetID string) (*engagementPort.BookmarkDTO, error) {
	if err := s.mustFindTweet(ctx, tweetID); err != nil {
		return nil, err
	}
	bm, err := s.EngagementRepository.BookmarkTweet(ctx, userID, tweetID)
	if err != nil {
		return nil, err
	}
	return &engagementPort.BookmarkDTO{
		ID:      bm.ID.String(),
		UserID:  bm.UserID.String(),
		TweetID: bm.TweetID.String(),
	}, nil
}

func (s *TweetService) UnbookmarkTweet(ctx context.Context, userID, tweetID string) error {
	if err := s.mustFindTweet(ctx, tweetID); err != nil {
		return err
	}
	return s.EngagementRepository.UnbookmarkTweet(ctx, userID, tweetID)
}

func (s *TweetService) mustFindTweet(ctx context.Context, tweetID string) error {
	t, err := s.TweetRepository.FindByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if t == nil {
		return apperr.NotFound("Tweet ID not found")
	}
	return nil
}
