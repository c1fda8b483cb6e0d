package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// saveTempUpload writes an uploaded file to a temp path and returns a cleanup func.
func saveTempUpload(c *gin.Context, fileHeader *multipart.FileHeader) (string, func(), error) {
	tmp, err := os.CreateTemp("", "skiply-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()

	cleanup := func() { os.Remove(path) }
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to save file: %w", err)
	}
	return path, cleanup, nil
}
