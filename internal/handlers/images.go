package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20 // 10MB

var uploadDir = "./web/static/uploads"

// savePostImage stores the optional image from the post form on local disk
// and returns its public path. No file in the form is not an error.
func savePostImage(c *gin.Context) (string, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.New("Only image files are allowed")
	}
	if header.Size > maxImageSize {
		return "", errors.New("Image must be smaller than 10MB")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	dst := filepath.Join(uploadDir, name)

	if err := c.SaveUploadedFile(header, dst); err != nil {
		return "", errors.New("Could not store the image")
	}

	return "/static/uploads/" + name, nil
}
