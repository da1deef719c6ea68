package users

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bottlen/server/bottlen/users"
	"github.com/bottlen/server/internal/auth"
	"github.com/bottlen/server/internal/errors"
	"github.com/bottlen/server/internal/logger"
	"github.com/bottlen/server/internal/provision"
)

const (
	phoneCodePrefix     = "phone:code:"
	phoneVerifiedPrefix = "phone:verified:"
	phoneCodeTTL        = 5 * time.Minute
	phoneVerifiedTTL    = 10 * time.Minute
)

// ProfileStore is the slice of the user repository these handlers need
type ProfileStore interface {
	CompleteProfile(ctx context.Context, userID int64, nickname, profileImageURL, phone string) (*users.User, error)
}

// TransientStore holds signup markers and phone verification state
type TransientStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CompleteSignupHandler finishes first-time signup with nickname and optional
// profile fields. Only valid while the signup marker set at provisioning time
// is still live.
// @Summary Complete signup
// @Description Set nickname, profile image and phone for a newly provisioned user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CompleteSignupRequest true "Profile fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/users/complete-signup [post]
func CompleteSignupHandler(repo ProfileStore, store TransientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.CurrentPrincipal(c)
		if !ok {
			errors.Unauthorized(c, "authentication required")
			return
		}

		var req CompleteSignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		live, err := store.Exists(c.Request.Context(), provision.SignupMarkerKey(principal.UserID))
		if err != nil {
			errors.InternalError(c, "failed to check signup window", err)
			return
		}
		if !live {
			errors.InvalidOperation(c, "signup window expired or already completed")
			return
		}

		if req.Phone != "" {
			verified, err := store.Exists(c.Request.Context(), phoneVerifiedPrefix+req.Phone)
			if err != nil {
				errors.InternalError(c, "failed to check phone verification", err)
				return
			}
			if !verified {
				errors.InvalidOperation(c, "phone number not verified")
				return
			}
		}

		user, err := repo.CompleteProfile(c.Request.Context(), principal.UserID, req.Nickname, req.ProfileImageURL, req.Phone)
		if err != nil {
			switch err {
			case users.ErrDuplicateNickname:
				errors.ConflictWithData(c, "nickname already taken", gin.H{"nickname": req.Nickname})
			case users.ErrDuplicatePhone:
				errors.Conflict(c, "phone number already registered")
			case users.ErrNotFound:
				errors.NotFound(c, "user")
			default:
				errors.InternalError(c, "failed to complete signup", err)
			}
			return
		}

		// Marker is left to expire on its own TTL so a retried request within
		// the window stays idempotent rather than erroring.
		logger.Info("signup completed", "user_id", user.ID, "nickname", req.Nickname)
		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// SendPhoneCodeHandler generates a 6 digit verification code and stores it
// against the phone number for a short window.
// @Summary Send phone verification code
// @Tags users
// @Accept json
// @Produce json
// @Param request body PhoneCodeRequest true "Phone number"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/users/phone/code [post]
func SendPhoneCodeHandler(store TransientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PhoneCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		code, err := generateCode()
		if err != nil {
			errors.InternalError(c, "failed to generate verification code", err)
			return
		}

		if err := store.Set(c.Request.Context(), phoneCodePrefix+req.Phone, code, phoneCodeTTL); err != nil {
			errors.InternalError(c, "failed to store verification code", err)
			return
		}

		// TODO: dispatch through an SMS gateway once one is provisioned
		logger.Info("phone verification code issued", "phone", req.Phone)
		c.JSON(http.StatusOK, MessageResponse{Message: "verification code sent"})
	}
}

// VerifyPhoneCodeHandler checks a submitted code and marks the phone number
// verified for a limited window.
// @Summary Verify phone code
// @Tags users
// @Accept json
// @Produce json
// @Param request body PhoneVerifyRequest true "Phone number and code"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/users/phone/verify [post]
func VerifyPhoneCodeHandler(store TransientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PhoneVerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		stored, found, err := store.Get(c.Request.Context(), phoneCodePrefix+req.Phone)
		if err != nil {
			errors.InternalError(c, "failed to read verification code", err)
			return
		}
		if !found || stored != req.Code {
			errors.BadRequest(c, "invalid or expired verification code", nil)
			return
		}

		if err := store.Set(c.Request.Context(), phoneVerifiedPrefix+req.Phone, "true", phoneVerifiedTTL); err != nil {
			errors.InternalError(c, "failed to mark phone verified", err)
			return
		}
		if err := store.Delete(c.Request.Context(), phoneCodePrefix+req.Phone); err != nil {
			logger.Warn("failed to clear used verification code", "error", err)
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "phone number verified"})
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
