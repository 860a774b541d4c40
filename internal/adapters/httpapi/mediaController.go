package httpapi

import (
	"os"
	"path/filepath"
	"strings"

	"chirp/internal/core/apperr"
	tweetEntity "chirp/internal/core/tweet"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	videoExts = map[string]bool{".mp4": true, ".webm": true, ".mov": true}
)

// MediaController stores uploads on local disk and hands back the URL the
// static routes serve them under.
type MediaController struct {
	uploadDir string
}

func NewMediaController(uploadDir string) *MediaController {
	return &MediaController{uploadDir: uploadDir}
}

func (ctl *MediaController) UploadImage(c *gin.Context) {
	ctl.upload(c, "images", imageExts, tweetEntity.MediaImage, "Image is invalid")
}

func (ctl *MediaController) UploadVideo(c *gin.Context) {
	ctl.upload(c, "videos", videoExts, tweetEntity.MediaVideo, "Video is invalid")
}

func (ctl *MediaController) upload(c *gin.Context, kind string, allowed map[string]bool, mediaType tweetEntity.MediaType, invalidMsg string) {
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, apperr.BadRequest("File is required"))
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		fail(c, apperr.UnprocessableEntity("Validation error", map[string]string{"file": invalidMsg}))
		return
	}

	dir := filepath.Join(ctl.uploadDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fail(c, err)
		return
	}
	name := uuid.Must(uuid.NewV4()).String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		fail(c, err)
		return
	}

	ok(c, "Upload successful!", gin.H{
		"url":  "/statics/" + kind + "/" + name,
		"type": mediaType,
	})
}
