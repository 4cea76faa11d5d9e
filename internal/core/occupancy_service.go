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

// OccupancyDrift describes a flat whose stored status disagrees with the
// occupancy derived from owner records.
type OccupancyDrift struct {
	FlatID          string            `json:"flatId"`
	FlatNumber      string            `json:"flatNumber"`
	StoredStatus    models.FlatStatus `json:"storedStatus"`
	DerivedOccupied bool              `json:"derivedOccupied"`
	ActiveOwnerIDs  []string          `json:"activeOwnerIds,omitempty"`
}

// FlatDisplayStatus reports whether the flat should visually read as
// occupied: some owner record references it with status Active. This is the
// derived truth used to detect drift against the stored status field; it
// never repairs the stored field.
func FlatDisplayStatus(flat *models.Flat, owners []*models.Owner) bool {
	if flat == nil {
		return false
	}
	for _, owner := range owners {
		if owner != nil && owner.FlatID == flat.ID && owner.Status == models.OwnerActive {
			return true
		}
	}
	return false
}

// occupancyService implements the OccupancyService interface.
//
// The multi-step operations here are logical transactions without
// cross-document atomicity: owner writes always precede the flat write that
// references them, so a reader never observes a flat pointing at a
// non-existent owner. The converse (flat updated, trailing owner write
// fails) surfaces as ErrPartialTransfer without rollback.
type occupancyService struct {
	flatRepo     db.FlatRepository
	ownerRepo    db.OwnerRepository
	auditService AuditService
	notifier     Notifier // optional
}

// NewOccupancyService creates a new OccupancyService instance.
// The notifier may be nil; transfer notifications are then skipped.
func NewOccupancyService(
	fr db.FlatRepository,
	or db.OwnerRepository,
	as AuditService,
	n Notifier,
) OccupancyService {
	return &occupancyService{
		flatRepo:     fr,
		ownerRepo:    or,
		auditService: as,
		notifier:     n,
	}
}

func (s *occupancyService) getFlat(ctx context.Context, flatID string) (*models.Flat, error) {
	flat, err := s.flatRepo.GetByID(ctx, flatID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrFlatNotFound, flatID)
		}
		return nil, fmt.Errorf("failed to get flat '%s': %w", flatID, err)
	}
	return flat, nil
}

// writeOwner creates the owner record, or reactivates and updates an
// existing one when the payload carries an id. The returned owner is Active
// and linked to flatID. No flat document is touched here.
func (s *occupancyService) writeOwner(ctx context.Context, flatID string, payload models.OwnerPayload) (*models.Owner, error) {
	owner := &models.Owner{
		ID:               payload.ID,
		Name:             payload.Name,
		Email:            payload.Email,
		Phone:            payload.Phone,
		Address:          payload.Address,
		FlatID:           flatID,
		OccupancyDate:    payload.OccupancyDate,
		Status:           models.OwnerActive,
		FamilyDetails:    payload.FamilyDetails,
		EmergencyContact: payload.EmergencyContact,
		Documents:        payload.Documents,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}

	if payload.ID == "" {
		if _, err := s.ownerRepo.Create(ctx, owner); err != nil {
			return nil, fmt.Errorf("failed to create owner: %w", err)
		}
		return owner, nil
	}

	// Updating an existing record: it must resolve first.
	if _, err := s.ownerRepo.GetByID(ctx, payload.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrOwnerNotFound, payload.ID)
		}
		return nil, fmt.Errorf("failed to get owner '%s': %w", payload.ID, err)
	}
	if err := s.ownerRepo.Update(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to update owner '%s': %w", payload.ID, err)
	}
	return owner, nil
}

// AssignOwner creates or updates the owner as the Active holder of the flat,
// then points the flat at it and recomputes its status to Occupied. The
// previous-owner reference is left untouched; use TransferOwnership to
// record a handover.
func (s *occupancyService) AssignOwner(ctx context.Context, actorID, flatID string, payload models.OwnerPayload) (string, error) {
	if s.flatRepo == nil || s.ownerRepo == nil {
		return "", errors.New("occupancyService: component not initialized")
	}

	// Validation is pre-flight: nothing is written on failure.
	if err := validate.OwnerPayload(&payload); err != nil {
		return "", err
	}

	flat, err := s.getFlat(ctx, flatID)
	if err != nil {
		return "", err
	}

	owner, err := s.writeOwner(ctx, flatID, payload)
	if err != nil {
		return "", err
	}

	// Owner write completed above; only now may the flat reference it.
	if err := s.flatRepo.SetOwnership(ctx, flatID, owner.ID, flat.PreviousOwnerID); err != nil {
		return owner.ID, fmt.Errorf("%w: owner '%s' saved but flat '%s' not updated: %s", ErrPartialTransfer, owner.ID, flatID, err)
	}

	s.audit(ctx, actorID, "OWNER_ASSIGN", "FLAT", flatID, map[string]interface{}{
		"ownerId":    owner.ID,
		"flatNumber": flat.FlatNumber,
	})

	return owner.ID, nil
}

// TransferOwnership performs the handover workflow:
//
//  1. resolve the flat's current owner (may be empty on first occupancy)
//  2. create-or-update the new owner record, Active and linked to the flat
//  3. update the flat: new current owner, old owner as previous, Occupied
//  4. best-effort and last, mark the old owner Old
//
// Step 4's failure does not roll back steps 2-3; it surfaces as
// ErrPartialTransfer alongside the new owner id. Transferring a flat to its
// current active owner is idempotent.
func (s *occupancyService) TransferOwnership(ctx context.Context, actorID, flatID string, req models.TransferRequest) (string, error) {
	if s.flatRepo == nil || s.ownerRepo == nil {
		return "", errors.New("occupancyService: component not initialized")
	}

	if (req.ExistingOwnerID == "") == (req.NewOwner == nil) {
		return "", ErrInvalidTransferRequest
	}
	if req.NewOwner != nil {
		if err := validate.OwnerPayload(req.NewOwner); err != nil {
			return "", err
		}
	}

	flat, err := s.getFlat(ctx, flatID)
	if err != nil {
		return "", err
	}
	oldOwnerID := flat.OwnerID

	var newOwner *models.Owner
	if req.ExistingOwnerID != "" {
		existing, err := s.ownerRepo.GetByID(ctx, req.ExistingOwnerID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return "", fmt.Errorf("%w: id '%s'", ErrOwnerNotFound, req.ExistingOwnerID)
			}
			return "", fmt.Errorf("failed to get owner '%s': %w", req.ExistingOwnerID, err)
		}

		if oldOwnerID == existing.ID && existing.Status == models.OwnerActive &&
			existing.FlatID == flatID && flat.Status == models.FlatOccupied {
			// Already the active owner of this flat; nothing to do.
			return existing.ID, nil
		}

		if err := s.ownerRepo.Activate(ctx, existing.ID, flatID); err != nil {
			return "", fmt.Errorf("failed to activate owner '%s': %w", existing.ID, err)
		}
		existing.FlatID = flatID
		existing.Status = models.OwnerActive
		newOwner = existing
	} else {
		newOwner, err = s.writeOwner(ctx, flatID, *req.NewOwner)
		if err != nil {
			return "", err
		}
	}

	// The flat must not point at the new owner before that owner exists;
	// the owner writes above are complete by now.
	previousOwnerID := oldOwnerID
	if oldOwnerID == newOwner.ID {
		// Re-transfer to the same owner: keep the recorded previous owner.
		previousOwnerID = flat.PreviousOwnerID
	}
	if err := s.flatRepo.SetOwnership(ctx, flatID, newOwner.ID, previousOwnerID); err != nil {
		return newOwner.ID, fmt.Errorf("%w: owner '%s' saved but flat '%s' not updated: %s", ErrPartialTransfer, newOwner.ID, flatID, err)
	}

	// Deactivating the old owner is last and best-effort: setting Old twice
	// is harmless, and a failure here leaves a detectable drift rather than
	// a flat pointing at a missing owner.
	var transferErr error
	if oldOwnerID != "" && oldOwnerID != newOwner.ID {
		if err := s.ownerRepo.SetStatus(ctx, oldOwnerID, models.OwnerOld); err != nil {
			transferErr = fmt.Errorf("%w: old owner '%s' not deactivated: %s", ErrPartialTransfer, oldOwnerID, err)
		}
	}

	details := map[string]interface{}{
		"newOwnerId":      newOwner.ID,
		"previousOwnerId": oldOwnerID,
		"flatNumber":      flat.FlatNumber,
	}
	if req.Reason != "" {
		details["reason"] = req.Reason
	}
	if transferErr != nil {
		details["partialFailure"] = transferErr.Error()
	}
	s.audit(ctx, actorID, "OWNERSHIP_TRANSFER", "FLAT", flatID, details)

	if transferErr == nil && s.notifier != nil {
		s.notifier.TransferCompleted(ctx, flat, newOwner, oldOwnerID)
	}

	return newOwner.ID, transferErr
}

// RemoveOwner deletes the owner record. When the owner was the current
// owner of a flat, the flat's reference is always cleared and its status
// reset to Available; a failure of that trailing write surfaces as
// ErrPartialTransfer rather than leaving a silent dangling reference.
func (s *occupancyService) RemoveOwner(ctx context.Context, actorID, ownerID string) error {
	if s.flatRepo == nil || s.ownerRepo == nil {
		return errors.New("occupancyService: component not initialized")
	}

	owner, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: id '%s'", ErrOwnerNotFound, ownerID)
		}
		return fmt.Errorf("failed to get owner '%s': %w", ownerID, err)
	}

	if err := s.ownerRepo.Delete(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to delete owner '%s': %w", ownerID, err)
	}

	var removeErr error
	if owner.FlatID != "" {
		flat, err := s.flatRepo.GetByID(ctx, owner.FlatID)
		switch {
		case err != nil && errors.Is(err, db.ErrNotFound):
			// Dangling flat reference; nothing to clear.
		case err != nil:
			removeErr = fmt.Errorf("%w: owner '%s' deleted but flat '%s' not checked: %s", ErrPartialTransfer, ownerID, owner.FlatID, err)
		case flat.OwnerID == ownerID:
			if err := s.flatRepo.ClearOwnership(ctx, flat.ID); err != nil {
				removeErr = fmt.Errorf("%w: owner '%s' deleted but flat '%s' not cleared: %s", ErrPartialTransfer, ownerID, flat.ID, err)
			}
		}
	}

	details := map[string]interface{}{"flatId": owner.FlatID}
	if removeErr != nil {
		details["partialFailure"] = removeErr.Error()
	}
	s.audit(ctx, actorID, "OWNER_REMOVE", "OWNER", ownerID, details)

	return removeErr
}

// ReconcileOccupancy compares each flat's stored status against the derived
// occupancy and reports disagreements. Flats under Maintenance with no
// active owner are not drift.
func (s *occupancyService) ReconcileOccupancy(ctx context.Context) ([]OccupancyDrift, error) {
	if s.flatRepo == nil || s.ownerRepo == nil {
		return nil, errors.New("occupancyService: component not initialized")
	}

	flats, err := s.flatRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flats for reconciliation: %w", err)
	}
	owners, err := s.ownerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners for reconciliation: %w", err)
	}

	var drifts []OccupancyDrift
	for _, flat := range flats {
		derived := FlatDisplayStatus(flat, owners)
		stored := flat.Status == models.FlatOccupied
		if derived == stored {
			continue
		}
		if !derived && flat.Status == models.FlatMaintenance {
			continue
		}

		drift := OccupancyDrift{
			FlatID:          flat.ID,
			FlatNumber:      flat.FlatNumber,
			StoredStatus:    flat.Status,
			DerivedOccupied: derived,
		}
		for _, owner := range owners {
			if owner.FlatID == flat.ID && owner.Status == models.OwnerActive {
				drift.ActiveOwnerIDs = append(drift.ActiveOwnerIDs, owner.ID)
			}
		}
		drifts = append(drifts, drift)
	}
	return drifts, nil
}

// audit records an entry best-effort; a failure never fails the operation.
func (s *occupancyService) audit(ctx context.Context, actorID, action, targetType, targetID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	entry := models.AuditLog{
		UserID:     actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Timestamp:  time.Now().UTC(),
		Details:    details,
	}
	if err := s.auditService.CreateAuditLog(ctx, entry); err != nil {
		log.Printf("Warning: failed to create audit log for %s (target %s): %v", action, targetID, err)
	}
}
