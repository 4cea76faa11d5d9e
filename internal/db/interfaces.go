package db

import (
	"context"

	"society-backend-go/internal/models"
)

// FlatRepository defines the interface for flat data storage operations.
type FlatRepository interface {
	Create(ctx context.Context, flat *models.Flat) (string, error) // Returns new flat ID
	GetByID(ctx context.Context, flatID string) (*models.Flat, error)
	GetByNumber(ctx context.Context, flatNumber string) (*models.Flat, error)
	GetAll(ctx context.Context) ([]*models.Flat, error)
	Update(ctx context.Context, flat *models.Flat) error
	// SetOwnership atomically updates the single flat document's ownership
	// fields and forces status to Occupied. It never sets Available.
	SetOwnership(ctx context.Context, flatID, ownerID, previousOwnerID string) error
	// ClearOwnership empties the current-owner reference and resets the
	// flat's status to Available.
	ClearOwnership(ctx context.Context, flatID string) error
	Delete(ctx context.Context, flatID string) error
}

// OwnerRepository defines the interface for owner data storage operations.
type OwnerRepository interface {
	Create(ctx context.Context, owner *models.Owner) (string, error) // Returns new owner ID
	GetByID(ctx context.Context, ownerID string) (*models.Owner, error)
	GetAll(ctx context.Context) ([]*models.Owner, error)
	GetByFlatID(ctx context.Context, flatID string) ([]*models.Owner, error)
	Update(ctx context.Context, owner *models.Owner) error
	// Activate links the owner to a flat and marks it Active in one write.
	Activate(ctx context.Context, ownerID, flatID string) error
	// SetStatus updates only the lifecycle status field.
	SetStatus(ctx context.Context, ownerID string, status models.OwnerStatus) error
	Delete(ctx context.Context, ownerID string) error
}

// VehicleRepository defines the interface for vehicle data storage operations.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) (string, error)
	GetByID(ctx context.Context, vehicleID string) (*models.Vehicle, error)
	GetByNumber(ctx context.Context, vehicleNumber string) (*models.Vehicle, error)
	GetAll(ctx context.Context) ([]*models.Vehicle, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, vehicleID string) error
}

// UserRepository defines the interface for user profile storage operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, userID, role string) error
	Delete(ctx context.Context, userID string) error
}

// AuditRepository defines the interface for audit log storage operations.
type AuditRepository interface {
	Create(ctx context.Context, logEntry models.AuditLog) error
}

// BackupRepository defines the interface for the backup snapshot storage.
type BackupRepository interface {
	Create(ctx context.Context, backup *models.Backup) (string, error)
	// SnapshotCollection reads every document of a collection as raw field
	// maps, id included, for inclusion in a backup document.
	SnapshotCollection(ctx context.Context, collection string) ([]map[string]interface{}, error)
}
