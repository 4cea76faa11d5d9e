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

// FlatHandler handles API endpoints related to flats.
type FlatHandler struct {
	flatService core.FlatService
}

// NewFlatHandler creates a new FlatHandler.
func NewFlatHandler(fs core.FlatService) *FlatHandler {
	return &FlatHandler{flatService: fs}
}

// mapFlatErrorToStatus maps errors from core.FlatService to HTTP status
// codes and an ErrorResponse body.
func mapFlatErrorToStatus(c *gin.Context, err error) {
	var ruleErr *validate.RuleError

	switch {
	case errors.As(err, &ruleErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ruleErr.Error()})
	case errors.Is(err, core.ErrFlatNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrFlatNotFound.Error()})
	case errors.Is(err, core.ErrDuplicateFlatNumber):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrDuplicateFlatNumber.Error()})
	case errors.Is(err, core.ErrInvalidFlatStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidFlatStatus.Error()})
	case errors.Is(err, db.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Data store is temporarily unavailable"})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// CreateFlat handles POST /flats
func (h *FlatHandler) CreateFlat(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.CreateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	flat, err := h.flatService.CreateFlat(c.Request.Context(), userID.(string), req)
	if err != nil {
		mapFlatErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, flat)
}

// GetFlat handles GET /flats/:flatId
func (h *FlatHandler) GetFlat(c *gin.Context) {
	flatID := c.Param("flatId")
	if flatID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Flat ID is required"})
		return
	}

	flat, err := h.flatService.GetFlatByID(c.Request.Context(), flatID)
	if err != nil {
		mapFlatErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, flat)
}

// ListFlats handles GET /flats
func (h *FlatHandler) ListFlats(c *gin.Context) {
	flats, err := h.flatService.ListFlats(c.Request.Context())
	if err != nil {
		mapFlatErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, flats)
}

// UpdateFlat handles PUT /flats/:flatId
func (h *FlatHandler) UpdateFlat(c *gin.Context) {
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

	var req models.UpdateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	flat, err := h.flatService.UpdateFlat(c.Request.Context(), userID.(string), flatID, req)
	if err != nil {
		mapFlatErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, flat)
}

// DeleteFlat handles DELETE /flats/:flatId
func (h *FlatHandler) DeleteFlat(c *gin.Context) {
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

	if err := h.flatService.DeleteFlat(c.Request.Context(), userID.(string), flatID); err != nil {
		mapFlatErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
