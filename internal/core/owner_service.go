package core

import (
	"context"
	"errors"
	"fmt"

	"society-backend-go/internal/db"
	"society-backend-go/internal/models"
)

// ownerService implements the read-only OwnerService interface. Owner
// mutations live in the occupancy service.
type ownerService struct {
	ownerRepo db.OwnerRepository
}

// NewOwnerService creates a new OwnerService instance.
func NewOwnerService(or db.OwnerRepository) OwnerService {
	return &ownerService{ownerRepo: or}
}

func (s *ownerService) GetOwnerByID(ctx context.Context, ownerID string) (*models.Owner, error) {
	if s.ownerRepo == nil {
		return nil, errors.New("ownerService: repository not initialized")
	}
	owner, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrOwnerNotFound, ownerID)
		}
		return nil, fmt.Errorf("failed to get owner '%s': %w", ownerID, err)
	}
	return owner, nil
}

func (s *ownerService) ListOwners(ctx context.Context) ([]*models.Owner, error) {
	if s.ownerRepo == nil {
		return nil, errors.New("ownerService: repository not initialized")
	}
	owners, err := s.ownerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	return owners, nil
}

// ListOwnersByFlat returns every owner record linked to the flat, Active and
// Old alike, for the flat's occupancy history view.
func (s *ownerService) ListOwnersByFlat(ctx context.Context, flatID string) ([]*models.Owner, error) {
	if s.ownerRepo == nil {
		return nil, errors.New("ownerService: repository not initialized")
	}
	owners, err := s.ownerRepo.GetByFlatID(ctx, flatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners for flat '%s': %w", flatID, err)
	}
	return owners, nil
}
