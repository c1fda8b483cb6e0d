package handlers

import (
	"net/http"

	"skiply/services/storage"
	"skiply/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler handles image uploads.
type StorageHandler struct {
	Images storage.ImageService
}

func NewStorageHandler(images storage.ImageService) *StorageHandler {
	return &StorageHandler{Images: images}
}

// UploadImage handles POST /api/upload with a multipart "image" field.
func (h *StorageHandler) UploadImage(c *gin.Context) {
	logger := getLogger(c)
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "No file uploaded", "")
		return
	}

	path, cleanup, err := saveTempUpload(c, fileHeader)
	if err != nil {
		logger.Error("Failed to stage upload", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Image upload failed", err.Error())
		return
	}
	defer cleanup()

	image, err := h.Images.UploadImage(c.Request.Context(), identity, path)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}
