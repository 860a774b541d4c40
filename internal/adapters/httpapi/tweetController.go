package httpapi

import (
	"strconv"

	"chirp/internal/core/apperr"
	tweetEntity "chirp/internal/core/tweet"
	tweetapp "chirp/internal/core/tweet/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type TweetController struct {
	tc TweetUseCase
	fc FeedUseCase
}

func NewTweetController(tc TweetUseCase, fc FeedUseCase) *TweetController {
	return &TweetController{tc: tc, fc: fc}
}

func (ctl *TweetController) CreateTweet(c *gin.Context) {
	var body tweetapp.CreateTweetDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, apperr.BadRequest("invalid input"))
		return
	}
	t, err := ctl.tc.CreateTweet(c.Request.Context(), callerID(c), &body)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Create tweet successful!", t)
}

func (ctl *TweetController) GetTweetDetail(c *gin.Context) {
	view, err := ctl.fc.GetTweetDetail(c.Request.Context(), c.Param("tweet_id"), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Get tweet successful!", view)
}

func (ctl *TweetController) GetTweetChildren(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		fail(c, err)
		return
	}
	childType, err := parseTweetType(c.DefaultQuery("tweet_type", strconv.Itoa(int(tweetEntity.TypeComment))))
	if err != nil {
		fail(c, err)
		return
	}
	pageOut, err := ctl.fc.GetTweetChildren(c.Request.Context(), c.Param("tweet_id"), childType, page, limit, callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Get tweet children successful!", pageOut)
}

func (ctl *TweetController) GetNewFeeds(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		fail(c, err)
		return
	}
	pageOut, err := ctl.fc.GetNewFeeds(c.Request.Context(), callerID(c), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Get new feeds successful!", pageOut)
}

func (ctl *TweetController) LikeTweet(c *gin.Context) {
	var req struct {
		TweetID string `json:"tweet_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("Tweet id is required"))
		return
	}
	like, err := ctl.tc.LikeTweet(c.Request.Context(), callerID(c), req.TweetID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Like tweet successful!", like)
}

func (ctl *TweetController) UnlikeTweet(c *gin.Context) {
	if err := ctl.tc.UnlikeTweet(c.Request.Context(), callerID(c), c.Param("tweet_id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Unlike tweet successful!", true)
}

// parsePagination reads page/limit query params with defaults. Out-of-range
// values are a validation error, not silently clamped.
func parsePagination(c *gin.Context) (int, int, error) {
	fields := map[string]string{}

	page := defaultPage
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fields["page"] = "Page must be a positive integer"
		} else {
			page = n
		}
	}
	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			fields["limit"] = "Limit must be between 1 and 100"
		} else {
			limit = n
		}
	}

	if len(fields) > 0 {
		return 0, 0, apperr.UnprocessableEntity("Validation error", fields)
	}
	return page, limit, nil
}

func parseTweetType(raw string) (tweetEntity.Type, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.UnprocessableEntity("Validation error", map[string]string{
			"tweet_type": "Tweet type is invalid",
		})
	}
	t := tweetEntity.Type(n)
	switch t {
	case tweetEntity.TypeRetweet, tweetEntity.TypeComment, tweetEntity.TypeQuoteTweet:
		return t, nil
	}
	return 0, apperr.UnprocessableEntity("Validation error", map[string]string{
		"tweet_type": "Tweet type is invalid",
	})
}
