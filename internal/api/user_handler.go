package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"society-backend-go/internal/core"
	"society-backend-go/internal/db"
	"society-backend-go/internal/models"
)

// UserHandler handles the user profile lifecycle endpoints.
type UserHandler struct {
	userService core.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func mapUserErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrUserNotFound.Error()})
	case errors.Is(err, db.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Data store is temporarily unavailable"})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// InitializeProfile handles POST /users/initialize. Called by the client
// after Firebase sign-in; it creates the profile document on first sign-in
// and records the login time on subsequent calls.
func (h *UserHandler) InitializeProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	user, created, err := h.userService.GetOrCreate(
		c.Request.Context(),
		userID.(string),
		c.GetString("userEmail"),
		c.GetString("userDisplayName"),
		c.GetString("userPhotoURL"),
	)
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}

// GetCurrentProfile handles GET /users/me
func (h *UserHandler) GetCurrentProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID.(string))
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteCurrentProfile handles DELETE /users/me, removing the caller's
// profile document as part of account deletion.
func (h *UserHandler) DeleteCurrentProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	if err := h.userService.Delete(c.Request.Context(), userID.(string)); err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateUserRole handles PUT /users/:userId/role (admin only).
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	actorID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	targetID := c.Param("userId")
	if targetID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID is required"})
		return
	}

	var req models.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.userService.UpdateRole(c.Request.Context(), actorID.(string), targetID, req.Role); err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Role updated successfully"})
}
