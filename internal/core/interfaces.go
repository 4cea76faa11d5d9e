package core

import (
	"context"

	"society-backend-go/internal/models"
)

// OccupancyService owns the flat/owner linkage invariant: at most one
// Active owner per flat, and a flat's stored status consistent with whether
// it has an Active owner.
type OccupancyService interface {
	// AssignOwner creates (or updates, when the payload carries an id) an
	// owner as the Active holder of the flat and marks the flat Occupied.
	// Returns the owner id.
	AssignOwner(ctx context.Context, actorID, flatID string, payload models.OwnerPayload) (string, error)
	// TransferOwnership deactivates the flat's current owner (if any) and
	// activates the requested one. Returns the new active owner id.
	TransferOwnership(ctx context.Context, actorID, flatID string, req models.TransferRequest) (string, error)
	// RemoveOwner deletes the owner record and, when it was a flat's current
	// owner, clears the reference and resets the flat to Available.
	RemoveOwner(ctx context.Context, actorID, ownerID string) error
	// ReconcileOccupancy reports flats whose stored status disagrees with
	// the occupancy derived from owner records. Report-only; drift is never
	// auto-corrected.
	ReconcileOccupancy(ctx context.Context) ([]OccupancyDrift, error)
}

// FlatService defines the interface for flat CRUD operations.
type FlatService interface {
	CreateFlat(ctx context.Context, actorID string, req models.CreateFlatRequest) (*models.Flat, error)
	GetFlatByID(ctx context.Context, flatID string) (*models.Flat, error)
	ListFlats(ctx context.Context) ([]*models.Flat, error)
	UpdateFlat(ctx context.Context, actorID, flatID string, req models.UpdateFlatRequest) (*models.Flat, error)
	DeleteFlat(ctx context.Context, actorID, flatID string) error
}

// OwnerService defines the read side of owner records. Mutations go through
// the OccupancyService so the linkage invariant stays in one place.
type OwnerService interface {
	GetOwnerByID(ctx context.Context, ownerID string) (*models.Owner, error)
	ListOwners(ctx context.Context) ([]*models.Owner, error)
	ListOwnersByFlat(ctx context.Context, flatID string) ([]*models.Owner, error)
}

// VehicleService defines the interface for vehicle operations.
type VehicleService interface {
	CreateVehicle(ctx context.Context, actorID string, req models.CreateVehicleRequest) (*models.Vehicle, error)
	GetVehicleByID(ctx context.Context, vehicleID string) (*models.Vehicle, error)
	ListVehicles(ctx context.Context) ([]*models.Vehicle, error)
	ListVehiclesByOwner(ctx context.Context, ownerID string) ([]*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, actorID, vehicleID string, req models.UpdateVehicleRequest) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, actorID, vehicleID string) error
	// LookupByNumber returns the vehicle with the given plate joined with
	// its owner and flat records for display.
	LookupByNumber(ctx context.Context, vehicleNumber string) (*models.VehicleLookup, error)
	// ValidateNumber is the stateless plate-number check.
	ValidateNumber(vehicleNumber string) models.ValidateVehicleNumberResponse
}

// UserService defines the interface for user profile lifecycle operations.
type UserService interface {
	// GetOrCreate retrieves a user profile by UID, creating it with default
	// values on first sign-in. The boolean reports whether it was created.
	GetOrCreate(ctx context.Context, userID, email, displayName, photoURL string) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	UpdateRole(ctx context.Context, actorID, userID, role string) error
	// Delete removes the profile document on account deletion.
	Delete(ctx context.Context, userID string) error
}

// ReportService defines the admin report and dashboard aggregations.
type ReportService interface {
	GenerateReport(ctx context.Context, reportType ReportType) (*Report, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// AuditService defines the interface for audit logging operations.
type AuditService interface {
	CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error
}

// BackupService defines the scheduled snapshot job over the managed
// collections.
type BackupService interface {
	RunDailyBackup(ctx context.Context) (string, error)
}

// Notifier publishes best-effort side-channel notifications for completed
// ownership transfers. Implementations must never fail the calling
// operation.
type Notifier interface {
	TransferCompleted(ctx context.Context, flat *models.Flat, newOwner *models.Owner, previousOwnerID string)
}
