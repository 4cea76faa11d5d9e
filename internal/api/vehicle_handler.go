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

// VehicleHandler handles API endpoints related to vehicles.
type VehicleHandler struct {
	vehicleService core.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vs core.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vs}
}

// mapVehicleErrorToStatus maps errors from core.VehicleService to HTTP
// status codes and an ErrorResponse body.
func mapVehicleErrorToStatus(c *gin.Context, err error) {
	var ruleErr *validate.RuleError

	switch {
	case errors.As(err, &ruleErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ruleErr.Error()})
	case errors.Is(err, core.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrVehicleNotFound.Error()})
	case errors.Is(err, core.ErrDuplicateVehicleNumber):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrDuplicateVehicleNumber.Error()})
	case errors.Is(err, core.ErrOwnerNotFound):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrOwnerNotFound.Error()})
	case errors.Is(err, core.ErrFlatNotFound):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrFlatNotFound.Error()})
	case errors.Is(err, db.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Data store is temporarily unavailable"})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// CreateVehicle handles POST /vehicles
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), userID.(string), req)
	if err != nil {
		mapVehicleErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicle handles GET /vehicles/:vehicleId
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicleId")
	if vehicleID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Vehicle ID is required"})
		return
	}

	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), vehicleID)
	if err != nil {
		mapVehicleErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// ListVehicles handles GET /vehicles. An optional ownerId query parameter
// narrows the list to one owner's vehicles.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	if ownerID := c.Query("ownerId"); ownerID != "" {
		vehicles, err := h.vehicleService.ListVehiclesByOwner(c.Request.Context(), ownerID)
		if err != nil {
			mapVehicleErrorToStatus(c, err)
			return
		}
		c.JSON(http.StatusOK, vehicles)
		return
	}

	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context())
	if err != nil {
		mapVehicleErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// UpdateVehicle handles PUT /vehicles/:vehicleId
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	vehicleID := c.Param("vehicleId")
	if vehicleID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Vehicle ID is required"})
		return
	}

	var req models.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), userID.(string), vehicleID, req)
	if err != nil {
		mapVehicleErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /vehicles/:vehicleId
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	vehicleID := c.Param("vehicleId")
	if vehicleID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Vehicle ID is required"})
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), userID.(string), vehicleID); err != nil {
		mapVehicleErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LookupVehicle handles GET /vehicles/lookup?number=MH12AB1234, returning
// the vehicle joined with its owner and flat.
func (h *VehicleHandler) LookupVehicle(c *gin.Context) {
	number := c.Query("number")
	if number == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameter 'number' is required"})
		return
	}

	lookup, err := h.vehicleService.LookupByNumber(c.Request.Context(), number)
	if err != nil {
		mapVehicleErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, lookup)
}

// ValidateVehicleNumber handles POST /vehicles/validate-number. It is
// stateless and public: the response always carries the canonical
// formatting alongside the validity flag.
func (h *VehicleHandler) ValidateVehicleNumber(c *gin.Context) {
	var req models.ValidateVehicleNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.vehicleService.ValidateNumber(req.VehicleNumber))
}
