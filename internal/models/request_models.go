package models

// CreateFlatRequest represents the request body for creating a new flat.
type CreateFlatRequest struct {
	FlatNumber  string     `json:"flatNumber" binding:"required,flatnumber"`
	Floor       int        `json:"floor" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	Size        int        `json:"size,omitempty"`
	MonthlyRent float64    `json:"monthlyRent,omitempty"`
	Deposit     float64    `json:"deposit,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      FlatStatus `json:"status,omitempty"`
}

// UpdateFlatRequest represents the request body for updating an existing flat.
// Pointers distinguish fields not provided from fields set to a zero value.
type UpdateFlatRequest struct {
	Floor       *int        `json:"floor,omitempty"`
	Type        *string     `json:"type,omitempty"`
	Size        *int        `json:"size,omitempty"`
	MonthlyRent *float64    `json:"monthlyRent,omitempty"`
	Deposit     *float64    `json:"deposit,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *FlatStatus `json:"status,omitempty"`
}

// OwnerPayload is the owner field set accepted by AssignOwner and
// TransferOwnership. When ID is set, the existing owner record is updated
// and reactivated instead of a new one being created.
type OwnerPayload struct {
	ID               string            `json:"id,omitempty"`
	Name             string            `json:"name" binding:"required"`
	Email            string            `json:"email" binding:"required"`
	Phone            string            `json:"phone" binding:"required"`
	Address          string            `json:"address,omitempty"`
	OccupancyDate    string            `json:"occupancyDate,omitempty"`
	FamilyDetails    *FamilyDetails    `json:"familyDetails,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	Documents        *OwnerDocuments   `json:"documents,omitempty"`
}

// TransferRequest represents the request body for transferring ownership of
// a flat. Exactly one of ExistingOwnerID or NewOwner must be provided.
type TransferRequest struct {
	ExistingOwnerID string        `json:"existingOwnerId,omitempty"`
	NewOwner        *OwnerPayload `json:"newOwner,omitempty"`
	Reason          string        `json:"reason,omitempty"` // e.g. "sale", "inheritance", "rental"
	TransferDate    string        `json:"transferDate,omitempty"`
}

// CreateVehicleRequest represents the request body for registering a vehicle.
type CreateVehicleRequest struct {
	VehicleNumber string `json:"vehicleNumber" binding:"required,vehiclenumber"`
	Company       string `json:"company" binding:"required"`
	Model         string `json:"model,omitempty"`
	Color         string `json:"color,omitempty"`
	Type          string `json:"type" binding:"required"`
	FuelType      string `json:"fuelType,omitempty"`
	Year          int    `json:"year,omitempty"`
	OwnerID       string `json:"ownerId" binding:"required"`
	FlatID        string `json:"flatId" binding:"required"`
}

// UpdateVehicleRequest represents the request body for updating a vehicle.
type UpdateVehicleRequest struct {
	Company  *string `json:"company,omitempty"`
	Model    *string `json:"model,omitempty"`
	Color    *string `json:"color,omitempty"`
	Type     *string `json:"type,omitempty"`
	FuelType *string `json:"fuelType,omitempty"`
	Year     *int    `json:"year,omitempty"`
	OwnerID  *string `json:"ownerId,omitempty"`
	FlatID   *string `json:"flatId,omitempty"`
}

// ValidateVehicleNumberRequest is the body of the stateless plate-number
// validation endpoint.
type ValidateVehicleNumberRequest struct {
	VehicleNumber string `json:"vehicleNumber" binding:"required"`
}

// ValidateVehicleNumberResponse mirrors the validation endpoint contract.
type ValidateVehicleNumberResponse struct {
	IsValid   bool   `json:"isValid"`
	Formatted string `json:"formatted"`
}

// UpdateUserRoleRequest represents the request body for changing a user's role.
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}
