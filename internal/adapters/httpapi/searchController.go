package httpapi

import (
	"strconv"

	"chirp/internal/core/apperr"
	tweetEntity "chirp/internal/core/tweet"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gin-gonic/gin"
)

type SearchController struct{ fc FeedUseCase }

func NewSearchController(fc FeedUseCase) *SearchController { return &SearchController{fc: fc} }

func (ctl *SearchController) Search(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		fail(c, err)
		return
	}

	q := tweetPort.SearchQuery{
		Content:  c.Query("content"),
		CallerID: callerID(c),
		Page:     page,
		Limit:    limit,
	}
	if raw := c.Query("media_type"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		mt := tweetEntity.MediaType(n)
		if convErr != nil || (mt != tweetEntity.MediaImage && mt != tweetEntity.MediaVideo) {
			fail(c, apperr.UnprocessableEntity("Validation error", map[string]string{
				"media_type": "Media type is invalid",
			}))
			return
		}
		q.MediaType = &mt
	}

	pageOut, err := ctl.fc.Search(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Search successful!", pageOut)
}
