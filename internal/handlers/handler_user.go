package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/dto"
	"github.com/SscSPs/hydration_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	avatarFormField = "avatar"
	multipartSlack  = 1 << 20
)

// userHandler handles HTTP requests related to the signed-in user's profile.
type userHandler struct {
	userService    portssvc.UserSvcFacade
	avatarMaxBytes int64
}

func newUserHandler(us portssvc.UserSvcFacade, avatarMaxBytes int64) *userHandler {
	return &userHandler{userService: us, avatarMaxBytes: avatarMaxBytes}
}

// GetCurrentUser godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/current [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	if user, ok := middleware.GetUserFromContext(c); ok {
		c.JSON(http.StatusOK, dto.ToUserResponse(user))
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Accepts nickname, email, timezone, gender, weight, activeTime and dailyWaterIntake. Changing the email requires verifying it again.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body map[string]interface{} true "Fields to change"
// @Success 200 {object} dto.UpdateProfileResponse
// @Failure 400 {object} ErrorResponse "Invalid, disallowed or unchanged fields"
// @Failure 409 {object} ErrorResponse "Email in use"
// @Router /users/update [patch]
func (h *userHandler) updateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, patch, c.Request.Host)
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "Profile updated"
	if !user.Verified {
		msg = "Profile updated, please verify your new email"
	}
	c.JSON(http.StatusOK, dto.UpdateProfileResponse{Message: msg, User: dto.ToUserResponse(user)})
}

// UpdateSubscription godoc
// @Summary Change subscription tier
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param x-custom-key header string false "Subscription key"
// @Param body body dto.UpdateSubscriptionRequest true "Tier"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /users/subscription [patch]
func (h *userHandler) updateSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	tier, err := h.userService.UpdateSubscription(c.Request.Context(), userID, req.Subscription)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubscriptionResponse{Subscription: string(tier)})
}

// UploadAvatar godoc
// @Summary Upload avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Image"
// @Success 200 {object} dto.AvatarResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/avatars [patch]
func (h *userHandler) uploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.avatarMaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.avatarMaxBytes+multipartSlack)
	}
	header, err := c.FormFile(avatarFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, apperrors.NewBadRequestError(fmt.Sprintf("File exceeds %d bytes", h.avatarMaxBytes)))
			return
		}
		respondError(c, apperrors.NewBadRequestError("No file uploaded"))
		return
	}
	if h.avatarMaxBytes > 0 && header.Size > h.avatarMaxBytes {
		respondError(c, apperrors.NewBadRequestError(fmt.Sprintf("File exceeds %d bytes", h.avatarMaxBytes)))
		return
	}

	tempPath, err := spool(header.Open)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to spool upload", slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Failed to read upload"))
		return
	}

	url, err := h.userService.UploadAvatar(c.Request.Context(), userID, &domain.AvatarUpload{
		TempPath:     tempPath,
		OriginalName: header.Filename,
		Size:         header.Size,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AvatarResponse{AvatarURL: url})
}

// spool copies an uploaded part to a temporary file owned by the caller.
func spool(open func() (multipart.File, error)) (string, error) {
	src, err := open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

// CountUsers godoc
// @Summary Number of registered users
// @Tags users
// @Produce json
// @Success 200 {object} dto.CountUsersResponse
// @Router /users/count [get]
func (h *userHandler) countUsers(c *gin.Context) {
	n, err := h.userService.CountUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountUsersResponse{TotalUsers: n})
}
