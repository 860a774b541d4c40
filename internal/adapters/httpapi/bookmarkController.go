package httpapi

import (
	"chirp/internal/core/apperr"

	"github.com/gin-gonic/gin"
)

type BookmarkController struct{ tc TweetUseCase }

func NewBookmarkController(tc TweetUseCase) *BookmarkController {
	return &BookmarkController{tc: tc}
}

func (ctl *BookmarkController) BookmarkTweet(c *gin.Context) {
	var req struct {
		TweetID string `json:"tweet_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("Tweet id is required"))
		return
	}
	bm, err := ctl.tc.BookmarkTweet(c.Request.Context(), callerID(c), req.TweetID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Bookmark tweet successful!", bm)
}

func (ctl *BookmarkController) UnbookmarkTweet(c *gin.Context) {
	if err := ctl.tc.UnbookmarkTweet(c.Request.Context(), callerID(c), c.Param("tweet_id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Unbookmark tweet successful!", true)
}
