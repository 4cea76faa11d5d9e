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

// flatService implements the FlatService interface.
type flatService struct {
	flatRepo     db.FlatRepository
	auditService AuditService
}

// NewFlatService creates a new FlatService instance.
func NewFlatService(fr db.FlatRepository, as AuditService) FlatService {
	return &flatService{flatRepo: fr, auditService: as}
}

// CreateFlat validates the flat number, rejects duplicates and persists the
// new unit. Unless a status is given the flat starts Available.
func (s *flatService) CreateFlat(ctx context.Context, actorID string, req models.CreateFlatRequest) (*models.Flat, error) {
	if s.flatRepo == nil {
		return nil, errors.New("flatService: repository not initialized")
	}

	if err := validate.FlatNumber(req.FlatNumber); err != nil {
		return nil, err
	}

	existing, err := s.flatRepo.GetByNumber(ctx, req.FlatNumber)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to check flat number '%s': %w", req.FlatNumber, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: '%s'", ErrDuplicateFlatNumber, req.FlatNumber)
	}

	status := req.Status
	if status == "" {
		status = models.FlatAvailable
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidFlatStatus, status)
	}

	flat := &models.Flat{
		FlatNumber:  req.FlatNumber,
		Floor:       req.Floor,
		Type:        req.Type,
		Size:        req.Size,
		MonthlyRent: req.MonthlyRent,
		Deposit:     req.Deposit,
		Description: req.Description,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if _, err := s.flatRepo.Create(ctx, flat); err != nil {
		return nil, fmt.Errorf("failed to create flat: %w", err)
	}

	s.auditBestEffort(ctx, actorID, "FLAT_CREATE", flat.ID, map[string]interface{}{
		"flatNumber": flat.FlatNumber,
	})

	return flat, nil
}

func (s *flatService) GetFlatByID(ctx context.Context, flatID string) (*models.Flat, error) {
	if s.flatRepo == nil {
		return nil, errors.New("flatService: repository not initialized")
	}
	flat, err := s.flatRepo.GetByID(ctx, flatID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrFlatNotFound, flatID)
		}
		return nil, fmt.Errorf("failed to get flat '%s': %w", flatID, err)
	}
	return flat, nil
}

func (s *flatService) ListFlats(ctx context.Context) ([]*models.Flat, error) {
	if s.flatRepo == nil {
		return nil, errors.New("flatService: repository not initialized")
	}
	flats, err := s.flatRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flats: %w", err)
	}
	return flats, nil
}

// UpdateFlat applies the provided fields to the flat. The flat number and
// ownership references are not updatable here; ownership moves only through
// the occupancy service.
func (s *flatService) UpdateFlat(ctx context.Context, actorID, flatID string, req models.UpdateFlatRequest) (*models.Flat, error) {
	flat, err := s.GetFlatByID(ctx, flatID)
	if err != nil {
		return nil, err
	}

	if req.Floor != nil {
		flat.Floor = *req.Floor
	}
	if req.Type != nil {
		flat.Type = *req.Type
	}
	if req.Size != nil {
		flat.Size = *req.Size
	}
	if req.MonthlyRent != nil {
		flat.MonthlyRent = *req.MonthlyRent
	}
	if req.Deposit != nil {
		flat.Deposit = *req.Deposit
	}
	if req.Description != nil {
		flat.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidFlatStatus, *req.Status)
		}
		flat.Status = *req.Status
	}
	flat.UpdatedAt = time.Now().UTC()

	if err := s.flatRepo.Update(ctx, flat); err != nil {
		return nil, fmt.Errorf("failed to update flat '%s': %w", flatID, err)
	}

	s.auditBestEffort(ctx, actorID, "FLAT_UPDATE", flatID, map[string]interface{}{
		"flatNumber": flat.FlatNumber,
	})

	return flat, nil
}

func (s *flatService) DeleteFlat(ctx context.Context, actorID, flatID string) error {
	flat, err := s.GetFlatByID(ctx, flatID)
	if err != nil {
		return err
	}

	if err := s.flatRepo.Delete(ctx, flatID); err != nil {
		return fmt.Errorf("failed to delete flat '%s': %w", flatID, err)
	}

	s.auditBestEffort(ctx, actorID, "FLAT_DELETE", flatID, map[string]interface{}{
		"flatNumber": flat.FlatNumber,
	})

	return nil
}

func (s *flatService) auditBestEffort(ctx context.Context, actorID, action, flatID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	err := s.auditService.CreateAuditLog(ctx, models.AuditLog{
		UserID:     actorID,
		Action:     action,
		TargetType: "FLAT",
		TargetID:   flatID,
		Timestamp:  time.Now().UTC(),
		Details:    details,
	})
	if err != nil {
		log.Printf("Warning: failed to create audit log for %s (flat %s): %v", action, flatID, err)
	}
}
