package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"miniblog/internal/app"
	"miniblog/internal/transport/http/response"
)

// AccountHandler exposes the identity verification and credential recovery
// flow: find-username, verify-identity and the two password change paths.
type AccountHandler struct {
	identityService *app.IdentityService
	recoveryService *app.RecoveryService
}

type FindUsernameRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,max=32"`
	BirthDate   string `json:"birth_date" binding:"required"`
}

type VerifyIdentityRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"max=128"`
	PhoneNumber     string `json:"phone_number" binding:"max=32"`
	BirthDate       string `json:"birth_date" binding:"required"`
}

type ChangePasswordRequest struct {
	Username    string `json:"username" binding:"required,max=64"`
	PhoneNumber string `json:"phone_number" binding:"required,max=32"`
	BirthDate   string `json:"birth_date" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,max=128"`
}

type ChangePasswordByIDRequest struct {
	NewPassword string `json:"new_password" binding:"required,max=128"`
}

func NewAccountHandler(identityService *app.IdentityService, recoveryService *app.RecoveryService) *AccountHandler {
	return &AccountHandler{
		identityService: identityService,
		recoveryService: recoveryService,
	}
}

func (h *AccountHandler) FindUsername(c *gin.Context) {
	var req FindUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	username, err := h.identityService.FindUsername(req.PhoneNumber, req.BirthDate)
	if err != nil {
		h.writeIdentityError(c, err, "find username failed")
		return
	}

	response.OK(c, gin.H{"username": username})
}

func (h *AccountHandler) VerifyIdentity(c *gin.Context) {
	var req VerifyIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	userID, err := h.identityService.Verify(app.VerifyInput{
		UsernameOrEmail: req.UsernameOrEmail,
		PhoneNumber:     req.PhoneNumber,
		BirthDate:       req.BirthDate,
	})
	if err != nil {
		h.writeIdentityError(c, err, "verify identity failed")
		return
	}

	response.OK(c, gin.H{
		"user_id": userID,
		"message": "identity verified",
	})
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.recoveryService.ChangePasswordByIdentity(app.ChangeByIdentityInput{
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		BirthDate:   req.BirthDate,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.writeIdentityError(c, err, "change password failed")
		return
	}

	response.OK(c, gin.H{"message": "password changed"})
}

func (h *AccountHandler) ChangePasswordByID(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user id")
		return
	}

	var req ChangePasswordByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.recoveryService.ChangePasswordByID(uint(userID), req.NewPassword); err != nil {
		h.writeIdentityError(c, err, "change password failed")
		return
	}

	response.OK(c, gin.H{"message": "password changed"})
}

func (h *AccountHandler) writeIdentityError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrMissingIdentifier), errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeUserNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
