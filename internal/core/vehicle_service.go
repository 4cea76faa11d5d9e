package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"society-backend-go/internal/db"
	"society-backend-go/internal/models"
	"society-backend-go/internal/validate"
)

// vehicleService implements the VehicleService interface. Plate numbers are
// normalized (uppercase, whitespace stripped) before validation and storage
// so lookups are canonical.
type vehicleService struct {
	vehicleRepo  db.VehicleRepository
	ownerRepo    db.OwnerRepository
	flatRepo     db.FlatRepository
	auditService AuditService
}

// NewVehicleService creates a new VehicleService instance.
func NewVehicleService(vr db.VehicleRepository, or db.OwnerRepository, fr db.FlatRepository, as AuditService) VehicleService {
	return &vehicleService{
		vehicleRepo:  vr,
		ownerRepo:    or,
		flatRepo:     fr,
		auditService: as,
	}
}

func (s *vehicleService) CreateVehicle(ctx context.Context, actorID string, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	if s.vehicleRepo == nil || s.ownerRepo == nil || s.flatRepo == nil {
		return nil, errors.New("vehicleService: component not initialized")
	}

	number, err := validate.VehicleNumber(req.VehicleNumber)
	if err != nil {
		return nil, err
	}

	existing, err := s.vehicleRepo.GetByNumber(ctx, number)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to check vehicle number '%s': %w", number, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: '%s'", ErrDuplicateVehicleNumber, number)
	}

	// Both references must resolve before the record is created.
	if _, err := s.ownerRepo.GetByID(ctx, req.OwnerID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrOwnerNotFound, req.OwnerID)
		}
		return nil, fmt.Errorf("failed to get owner '%s': %w", req.OwnerID, err)
	}
	if _, err := s.flatRepo.GetByID(ctx, req.FlatID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrFlatNotFound, req.FlatID)
		}
		return nil, fmt.Errorf("failed to get flat '%s': %w", req.FlatID, err)
	}

	vehicle := &models.Vehicle{
		VehicleNumber: number,
		Company:       req.Company,
		Model:         req.Model,
		Color:         req.Color,
		Type:          req.Type,
		FuelType:      req.FuelType,
		Year:          req.Year,
		OwnerID:       req.OwnerID,
		FlatID:        req.FlatID,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if _, err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.auditBestEffort(ctx, actorID, "VEHICLE_CREATE", vehicle.ID, map[string]interface{}{
		"vehicleNumber": vehicle.VehicleNumber,
	})

	return vehicle, nil
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	if s.vehicleRepo == nil {
		return nil, errors.New("vehicleService: repository not initialized")
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrVehicleNotFound, vehicleID)
		}
		return nil, fmt.Errorf("failed to get vehicle '%s': %w", vehicleID, err)
	}
	return vehicle, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	if s.vehicleRepo == nil {
		return nil, errors.New("vehicleService: repository not initialized")
	}
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *vehicleService) ListVehiclesByOwner(ctx context.Context, ownerID string) ([]*models.Vehicle, error) {
	if s.vehicleRepo == nil {
		return nil, errors.New("vehicleService: repository not initialized")
	}
	vehicles, err := s.vehicleRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles for owner '%s': %w", ownerID, err)
	}
	return vehicles, nil
}

// UpdateVehicle applies the provided fields. The plate number itself is
// immutable; re-registering under a new plate is a delete plus create.
func (s *vehicleService) UpdateVehicle(ctx context.Context, actorID, vehicleID string, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Company != nil {
		vehicle.Company = *req.Company
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.Type != nil {
		vehicle.Type = *req.Type
	}
	if req.FuelType != nil {
		vehicle.FuelType = *req.FuelType
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.OwnerID != nil {
		if _, err := s.ownerRepo.GetByID(ctx, *req.OwnerID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, fmt.Errorf("%w: id '%s'", ErrOwnerNotFound, *req.OwnerID)
			}
			return nil, fmt.Errorf("failed to get owner '%s': %w", *req.OwnerID, err)
		}
		vehicle.OwnerID = *req.OwnerID
	}
	if req.FlatID != nil {
		if _, err := s.flatRepo.GetByID(ctx, *req.FlatID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, fmt.Errorf("%w: id '%s'", ErrFlatNotFound, *req.FlatID)
			}
			return nil, fmt.Errorf("failed to get flat '%s': %w", *req.FlatID, err)
		}
		vehicle.FlatID = *req.FlatID
	}
	vehicle.UpdatedAt = time.Now().UTC()

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle '%s': %w", vehicleID, err)
	}

	s.auditBestEffort(ctx, actorID, "VEHICLE_UPDATE", vehicleID, map[string]interface{}{
		"vehicleNumber": vehicle.VehicleNumber,
	})

	return vehicle, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, actorID, vehicleID string) error {
	vehicle, err := s.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return err
	}

	if err := s.vehicleRepo.Delete(ctx, vehicleID); err != nil {
		return fmt.Errorf("failed to delete vehicle '%s': %w", vehicleID, err)
	}

	s.auditBestEffort(ctx, actorID, "VEHICLE_DELETE", vehicleID, map[string]interface{}{
		"vehicleNumber": vehicle.VehicleNumber,
	})

	return nil
}

// LookupByNumber resolves the plate to its vehicle and joins the owner and
// flat records. Missing references degrade to a partial view instead of
// failing the lookup.
func (s *vehicleService) LookupByNumber(ctx context.Context, vehicleNumber string) (*models.VehicleLookup, error) {
	if s.vehicleRepo == nil {
		return nil, errors.New("vehicleService: repository not initialized")
	}

	number := validate.FormatVehicleNumber(vehicleNumber)
	vehicle, err := s.vehicleRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: number '%s'", ErrVehicleNotFound, number)
		}
		return nil, fmt.Errorf("failed to look up vehicle '%s': %w", number, err)
	}

	lookup := &models.VehicleLookup{Vehicle: vehicle}
	if vehicle.OwnerID != "" && s.ownerRepo != nil {
		owner, err := s.ownerRepo.GetByID(ctx, vehicle.OwnerID)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("failed to get owner '%s': %w", vehicle.OwnerID, err)
		}
		lookup.Owner = owner
	}
	if vehicle.FlatID != "" && s.flatRepo != nil {
		flat, err := s.flatRepo.GetByID(ctx, vehicle.FlatID)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("failed to get flat '%s': %w", vehicle.FlatID, err)
		}
		lookup.Flat = flat
	}
	return lookup, nil
}

// ValidateNumber is the stateless plate check: it reports validity and the
// canonical formatting without touching the store.
func (s *vehicleService) ValidateNumber(vehicleNumber string) models.ValidateVehicleNumberResponse {
	formatted, err := validate.VehicleNumber(vehicleNumber)
	return models.ValidateVehicleNumberResponse{
		IsValid:   err == nil,
		Formatted: formatted,
	}
}

func (s *vehicleService) auditBestEffort(ctx context.Context, actorID, action, vehicleID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	err := s.auditService.CreateAuditLog(ctx, models.AuditLog{
		UserID:     actorID,
		Action:     action,
		TargetType: "VEHICLE",
		TargetID:   vehicleID,
		Timestamp:  time.Now().UTC(),
		Details:    details,
	})
	if err != nil {
		log.Printf("Warning: failed to create audit log for %s (vehicle %s): %v", action, vehicleID, err)
	}
}
