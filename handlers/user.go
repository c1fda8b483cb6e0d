package handlers

import (
	"errors"
	"net/http"
	"strings"

	"skiply/models"
	"skiply/services/storage"
	"skiply/services/user"
	"skiply/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves profile and directory endpoints.
type UserHandler struct {
	Svc    user.UserService
	Images storage.ImageService
}

func NewUserHandler(svc user.UserService, images storage.ImageService) *UserHandler {
	return &UserHandler{Svc: svc, Images: images}
}

// GetProfile handles GET /api/users/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}
	profile, err := h.Svc.GetProfile(c.Request.Context(), identity.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/users/profile. JSON bodies update text fields;
// multipart bodies may also carry an "image" file for the profile picture.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	logger := getLogger(c)
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&update); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
		fileHeader, err := c.FormFile("image")
		switch {
		case err == nil:
			path, cleanup, err := saveTempUpload(c, fileHeader)
			if err != nil {
				utils.JSONError(c, http.StatusInternalServerError, "Failed to update profile", err.Error())
				return
			}
			defer cleanup()

			image, err := h.Images.UploadImage(c.Request.Context(), identity, path)
			if err != nil {
				utils.RespondError(c, err)
				return
			}
			update.ProfileImage = &image.URL
		case !errors.Is(err, http.ErrMissingFile):
			utils.JSONError(c, http.StatusBadRequest, "Invalid image upload", err.Error())
			return
		}
	} else if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := h.Svc.UpdateProfile(c.Request.Context(), identity.UserID, update)
	if err != nil {
		logger.Warn("Profile update failed", zap.String("userId", identity.UserID.Hex()), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetAllUsers handles GET /api/users (admin only).
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Svc.GetAllUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetOpenBusinesses handles GET /api/users/businesses/open.
func (h *UserHandler) GetOpenBusinesses(c *gin.Context) {
	businesses, err := h.Svc.ListOpenBusinesses(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, businesses)
}
