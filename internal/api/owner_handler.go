package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"society-backend-go/internal/core"
	"society-backend-go/internal/db"
	"society-backend-go/internal/models"
	"society-backend-go/internal/validate"
)

// OwnerHandler handles owner reads and the occupancy mutations (assign,
// transfer, remove), which go through the occupancy service.
type OwnerHandler struct {
	ownerService     core.OwnerService
	occupancyService core.OccupancyService
}

// NewOwnerHandler creates a new OwnerHandler.
func NewOwnerHandler(os core.OwnerService, occ core.OccupancyService) *OwnerHandler {
	return &OwnerHandler{ownerService: os, occupancyService: occ}
}

// mapOwnerErrorToStatus maps occupancy and owner errors to HTTP status
// codes. A partial transfer is reported as 207 so the client knows the
// primary write succeeded but a trailing write needs attention.
func mapOwnerErrorToStatus(c *gin.Context, err error, ownerID string) {
	var ruleErr *validate.RuleError

	switch {
	case errors.As(err, &ruleErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ruleErr.Error()})
	case errors.Is(err, core.ErrInvalidTransferRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidTransferRequest.Error()})
	case errors.Is(err, core.ErrFlatNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrFlatNotFound.Error()})
	case errors.Is(err, core.ErrOwnerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrOwnerNotFound.Error()})
	case errors.Is(err, core.ErrPartialTransfer):
		c.JSON(http.StatusMultiStatus, OwnerMutationResponse{
			Message: err.Error(),
			OwnerID: ownerID,
		})
	case errors.Is(err, db.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Data store is temporarily unavailable"})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListOwners handles GET /owners
func (h *OwnerHandler) ListOwners(c *gin.Context) {
	owners, err := h.ownerService.ListOwners(c.Request.Context())
	if err != nil {
		mapOwnerErrorToStatus(c, err, "")
		return
	}
	c.JSON(http.StatusOK, owners)
}

// GetOwner handles GET /owners/:ownerId
func (h *OwnerHandler) GetOwner(c *gin.Context) {
	ownerID := c.Param("ownerId")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Owner ID is required"})
		return
	}

	owner, err := h.ownerService.GetOwnerByID(c.Request.Context(), ownerID)
	if err != nil {
		mapOwnerErrorToStatus(c, err, "")
		return
	}
	c.JSON(http.StatusOK, owner)
}

// ListFlatOwners handles GET /flats/:flatId/owners, the occupancy history of
// one flat.
func (h *OwnerHandler) ListFlatOwners(c *gin.Context) {
	flatID := c.Param("flatId")
	if flatID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Flat ID is required"})
		return
	}

	owners, err := h.ownerService.ListOwnersByFlat(c.Request.Context(), flatID)
	if err != nil {
		mapOwnerErrorToStatus(c, err, "")
		return
	}
	c.JSON(http.StatusOK, owners)
}

// AssignOwner handles POST /flats/:flatId/owner
func (h *OwnerHandler) AssignOwner(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	flatID := c.Param("flatId")
	if flatID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Flat ID is required"})
		return
	}

	var payload models.OwnerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	ownerID, err := h.occupancyService.AssignOwner(c.Request.Context(), userID.(string), flatID, payload)
	if err != nil {
		mapOwnerErrorToStatus(c, err, ownerID)
		return
	}
	c.JSON(http.StatusCreated, OwnerMutationResponse{Message: "Owner assigned successfully", OwnerID: ownerID})
}

// TransferOwnership handles POST /flats/:flatId/transfer
func (h *OwnerHandler) TransferOwnership(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	flatID := c.Param("flatId")
	if flatID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Flat ID is required"})
		return
	}

	var req models.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	ownerID, err := h.occupancyService.TransferOwnership(c.Request.Context(), userID.(string), flatID, req)
	if err != nil {
		mapOwnerErrorToStatus(c, err, ownerID)
		return
	}
	c.JSON(http.StatusOK, OwnerMutationResponse{Message: "Ownership transferred successfully", OwnerID: ownerID})
}

// RemoveOwner handles DELETE /owners/:ownerId
func (h *OwnerHandler) RemoveOwner(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	ownerID := c.Param("ownerId")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Owner ID is required"})
		return
	}

	if err := h.occupancyService.RemoveOwner(c.Request.Context(), userID.(string), ownerID); err != nil {
		mapOwnerErrorToStatus(c, err, ownerID)
		return
	}
	c.Status(http.StatusNoContent)
}
