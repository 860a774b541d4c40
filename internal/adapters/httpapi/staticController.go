package httpapi

import (
	"os"
	"path/filepath"

	"chirp/internal/core/apperr"

	"github.com/gin-gonic/gin"
)

// StaticController serves uploaded media back out of the upload directory.
type StaticController struct {
	uploadDir string
}

func NewStaticController(uploadDir string) *StaticController {
	return &StaticController{uploadDir: uploadDir}
}

func (ctl *StaticController) ServeImage(c *gin.Context) {
	ctl.serve(c, "images")
}

func (ctl *StaticController) ServeVideo(c *gin.Context) {
	ctl.serve(c, "videos")
}

func (ctl *StaticController) serve(c *gin.Context, kind string) {
	name := filepath.Base(c.Param("name"))
	path := filepath.Join(ctl.uploadDir, kind, name)
	if _, err := os.Stat(path); err != nil {
		fail(c, apperr.NotFound("File not found"))
		return
	}
	c.File(path)
}
