package httpapi

import (
	"net/http"

	"chirp/internal/core/apperr"

	"github.com/gin-gonic/gin"
)

// ok renders the success envelope every endpoint shares.
func ok(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    data,
	})
}

// fail is the single place errors become HTTP responses. Field maps are
// rendered under "errors", everything else under "error".
func fail(c *gin.Context, err error) {
	e := apperr.From(err)
	body := gin.H{"message": e.Message}
	if len(e.Fields) > 0 {
		body["errors"] = e.Fields
	} else {
		body["error"] = e.Code.String()
	}
	c.AbortWithStatusJSON(e.Code.HTTPStatus(), body)
}
