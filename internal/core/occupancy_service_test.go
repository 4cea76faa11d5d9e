package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-backend-go/internal/models"
	"society-backend-go/internal/validate"
)

func seedFlat(t *testing.T, repo *fakeFlatRepo, number string) *models.Flat {
	t.Helper()
	flat := &models.Flat{
		FlatNumber: number,
		Floor:      1,
		Type:       "2BHK",
		Status:     models.FlatAvailable,
	}
	_, err := repo.Create(context.Background(), flat)
	require.NoError(t, err)
	return flat
}

func ownerPayload(name, email, phone string) models.OwnerPayload {
	return models.OwnerPayload{
		Name:  name,
		Email: email,
		Phone: phone,
	}
}

func newOccupancyFixture() (*fakeFlatRepo, *fakeOwnerRepo, *fakeAuditRepo, OccupancyService) {
	flatRepo := newFakeFlatRepo()
	ownerRepo := newFakeOwnerRepo()
	auditRepo := &fakeAuditRepo{}
	svc := NewOccupancyService(flatRepo, ownerRepo, NewAuditService(auditRepo), nil)
	return flatRepo, ownerRepo, auditRepo, svc
}

func TestAssignOwnerFirstOccupancy(t *testing.T) {
	flatRepo, ownerRepo, auditRepo, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "A-101")

	ownerID, err := svc.AssignOwner(context.Background(), "admin-1", flat.ID, ownerPayload("Asha Rao", "asha@example.com", "9876543210"))
	require.NoError(t, err)
	require.NotEmpty(t, ownerID)

	owner := ownerRepo.owners[ownerID]
	require.NotNil(t, owner)
	assert.Equal(t, models.OwnerActive, owner.Status)
	assert.Equal(t, flat.ID, owner.FlatID)

	stored := flatRepo.flats[flat.ID]
	assert.Equal(t, ownerID, stored.OwnerID)
	assert.Equal(t, models.FlatOccupied, stored.Status)
	assert.Empty(t, stored.PreviousOwnerID)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, "OWNER_ASSIGN", auditRepo.entries[0].Action)
}

func TestAssignOwnerValidationRejectionWritesNothing(t *testing.T) {
	flatRepo, ownerRepo, _, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "A-101")

	_, err := svc.AssignOwner(context.Background(), "admin-1", flat.ID, ownerPayload("Asha Rao", "not-an-email", "9876543210"))

	var ruleErr *validate.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "email", ruleErr.Field)

	assert.Empty(t, ownerRepo.owners)
	stored := flatRepo.flats[flat.ID]
	assert.Empty(t, stored.OwnerID)
	assert.Equal(t, models.FlatAvailable, stored.Status)
}

func TestAssignOwnerFlatNotFound(t *testing.T) {
	_, _, _, svc := newOccupancyFixture()

	_, err := svc.AssignOwner(context.Background(), "admin-1", "missing", ownerPayload("Asha Rao", "asha@example.com", "9876543210"))
	assert.ErrorIs(t, err, ErrFlatNotFound)
}

func TestTransferOwnershipFirstOccupancy(t *testing.T) {
	flatRepo, ownerRepo, _, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "B-203")

	payload := ownerPayload("Ravi Kumar", "ravi@example.com", "9123456780")
	ownerID, err := svc.TransferOwnership(context.Background(), "admin-1", flat.ID, models.TransferRequest{NewOwner: &payload})
	require.NoError(t, err)

	stored := flatRepo.flats[flat.ID]
	assert.Equal(t, ownerID, stored.OwnerID)
	assert.Empty(t, stored.PreviousOwnerID)
	assert.Equal(t, models.FlatOccupied, stored.Status)
	assert.Equal(t, models.OwnerActive, ownerRepo.owners[ownerID].Status)
}

func TestTransferOwnershipReTransfer(t *testing.T) {
	flatRepo, ownerRepo, _, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "B-203")

	first, err := svc.AssignOwner(context.Background(), "admin-1", flat.ID, ownerPayload("Ravi Kumar", "ravi@example.com", "9123456780"))
	require.NoError(t, err)

	payload := ownerPayload("Meera Shah", "meera@example.com", "9988776655")
	second, err := svc.TransferOwnership(context.Background(), "admin-1", flat.ID, models.TransferRequest{NewOwner: &payload, Reason: "sale"})
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	stored := flatRepo.flats[flat.ID]
	assert.Equal(t, second, stored.OwnerID)
	assert.Equal(t, first, stored.PreviousOwnerID)
	assert.Equal(t, models.FlatOccupied, stored.Status)

	assert.Equal(t, models.OwnerOld, ownerRepo.owners[first].Status)
	assert.Equal(t, models.OwnerActive, ownerRepo.owners[second].Status)
}

func TestTransferOwnershipToExistingOwner(t *testing.T) {
	flatRepo, ownerRepo, _, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "C-305")

	returning := &models.Owner{
		Name:   "Old Resident",
		Email:  "old@example.com",
		Phone:  "9000000001",
		Status: models.OwnerOld,
	}
	_, err := ownerRepo.Create(context.Background(), returning)
	require.NoError(t, err)

	got, err := svc.TransferOwnership(context.Background(), "admin-1", flat.ID, models.TransferRequest{ExistingOwnerID: returning.ID})
	require.NoError(t, err)
	assert.Equal(t, returning.ID, got)

	assert.Equal(t, models.OwnerActive, ownerRepo.owners[returning.ID].Status)
	assert.Equal(t, flat.ID, ownerRepo.owners[returning.ID].FlatID)
	assert.Equal(t, returning.ID, flatRepo.flats[flat.ID].OwnerID)
}

func TestTransferOwnershipIdempotent(t *testing.T) {
	flatRepo, ownerRepo, _, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "B-203")

	first, err := svc.AssignOwner(context.Background(), "admin-1", flat.ID, ownerPayload("Ravi Kumar", "ravi@example.com", "9123456780"))
	require.NoError(t, err)
	payload := ownerPayload("Meera Shah", "meera@example.com", "9988776655")
	second, err := svc.TransferOwnership(context.Background(), "admin-1", flat.ID, models.TransferRequest{NewOwner: &payload})
	require.NoError(t, err)

	// Repeating the transfer to the current active owner changes nothing.
	again, err := svc.TransferOwnership(context.Background(), "admin-1", flat.ID, models.TransferRequest{ExistingOwnerID: second})
	require.NoError(t, err)
	assert.Equal(t, second, again)

	stored := flatRepo.flats[flat.ID]
	assert.Equal(t, second, stored.OwnerID)
	assert.Equal(t, first, stored.PreviousOwnerID)
	assert.Equal(t, models.OwnerActive, ownerRepo.owners[second].Status)
	assert.Equal(t, models.OwnerOld, ownerRepo.owners[first].Status)
}

func TestTransferOwnershipInvalidRequest(t *testing.T) {
	flatRepo, _, _, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "A-101")

	_, err := svc.TransferOwnership(context.Background(), "admin-1", flat.ID, models.TransferRequest{})
	assert.ErrorIs(t, err, ErrInvalidTransferRequest)

	payload := ownerPayload("Ravi Kumar", "ravi@example.com", "9123456780")
	_, err = svc.TransferOwnership(context.Background(), "admin-1", flat.ID, models.TransferRequest{
		ExistingOwnerID: "owner-1",
		NewOwner:        &payload,
	})
	assert.ErrorIs(t, err, ErrInvalidTransferRequest)
}

func TestTransferOwnershipPartialFailure(t *testing.T) {
	flatRepo, ownerRepo, _, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "D-407")

	first, err := svc.AssignOwner(context.Background(), "admin-1", flat.ID, ownerPayload("Ravi Kumar", "ravi@example.com", "9123456780"))
	require.NoError(t, err)

	// The trailing old-owner deactivation fails; the transfer itself stands.
	ownerRepo.ErrSetStatus = errors.New("store unavailable")
	payload := ownerPayload("Meera Shah", "meera@example.com", "9988776655")
	second, err := svc.TransferOwnership(context.Background(), "admin-1", flat.ID, models.TransferRequest{NewOwner: &payload})

	require.ErrorIs(t, err, ErrPartialTransfer)
	require.NotEmpty(t, second)

	stored := flatRepo.flats[flat.ID]
	assert.Equal(t, second, stored.OwnerID)
	assert.Equal(t, first, stored.PreviousOwnerID)
	assert.Equal(t, models.FlatOccupied, stored.Status)
	assert.Equal(t, models.OwnerActive, ownerRepo.owners[second].Status)
	// The stale owner keeps its stale status; reconciliation reports it.
	assert.Equal(t, models.OwnerActive, ownerRepo.owners[first].Status)
}

func TestRemoveOwnerClearsFlat(t *testing.T) {
	flatRepo, ownerRepo, _, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "A-101")

	ownerID, err := svc.AssignOwner(context.Background(), "admin-1", flat.ID, ownerPayload("Asha Rao", "asha@example.com", "9876543210"))
	require.NoError(t, err)

	require.NoError(t, svc.RemoveOwner(context.Background(), "admin-1", ownerID))

	assert.NotContains(t, ownerRepo.owners, ownerID)
	stored := flatRepo.flats[flat.ID]
	assert.Empty(t, stored.OwnerID)
	assert.Equal(t, models.FlatAvailable, stored.Status)
}

func TestRemoveOwnerNotCurrentLeavesFlat(t *testing.T) {
	flatRepo, ownerRepo, _, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "B-203")

	first, err := svc.AssignOwner(context.Background(), "admin-1", flat.ID, ownerPayload("Ravi Kumar", "ravi@example.com", "9123456780"))
	require.NoError(t, err)
	payload := ownerPayload("Meera Shah", "meera@example.com", "9988776655")
	second, err := svc.TransferOwnership(context.Background(), "admin-1", flat.ID, models.TransferRequest{NewOwner: &payload})
	require.NoError(t, err)

	// Removing the old owner must not disturb the current occupancy.
	require.NoError(t, svc.RemoveOwner(context.Background(), "admin-1", first))

	assert.NotContains(t, ownerRepo.owners, first)
	stored := flatRepo.flats[flat.ID]
	assert.Equal(t, second, stored.OwnerID)
	assert.Equal(t, models.FlatOccupied, stored.Status)
}

func TestRemoveOwnerPartialFailure(t *testing.T) {
	flatRepo, ownerRepo, _, svc := newOccupancyFixture()
	flat := seedFlat(t, flatRepo, "A-101")

	ownerID, err := svc.AssignOwner(context.Background(), "admin-1", flat.ID, ownerPayload("Asha Rao", "asha@example.com", "9876543210"))
	require.NoError(t, err)

	flatRepo.ErrClearOwnership = errors.New("store unavailable")
	err = svc.RemoveOwner(context.Background(), "admin-1", ownerID)
	require.ErrorIs(t, err, ErrPartialTransfer)

	// The owner is gone; the flat keeps its now-dangling reference.
	assert.NotContains(t, ownerRepo.owners, ownerID)
	assert.Equal(t, ownerID, flatRepo.flats[flat.ID].OwnerID)
}

func TestRemoveOwnerNotFound(t *testing.T) {
	_, _, _, svc := newOccupancyFixture()
	err := svc.RemoveOwner(context.Background(), "admin-1", "missing")
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestFlatDisplayStatus(t *testing.T) {
	flat := &models.Flat{ID: "flat-1"}
	active := &models.Owner{ID: "owner-1", FlatID: "flat-1", Status: models.OwnerActive}
	old := &models.Owner{ID: "owner-2", FlatID: "flat-1", Status: models.OwnerOld}
	elsewhere := &models.Owner{ID: "owner-3", FlatID: "flat-2", Status: models.OwnerActive}

	assert.False(t, FlatDisplayStatus(flat, nil))
	assert.False(t, FlatDisplayStatus(flat, []*models.Owner{old, elsewhere}))
	assert.True(t, FlatDisplayStatus(flat, []*models.Owner{old, active}))
	assert.False(t, FlatDisplayStatus(nil, []*models.Owner{active}))
}

func TestReconcileOccupancyReportsDrift(t *testing.T) {
	flatRepo, ownerRepo, _, svc := newOccupancyFixture()

	consistent := seedFlat(t, flatRepo, "A-101")
	_, err := svc.AssignOwner(context.Background(), "admin-1", consistent.ID, ownerPayload("Asha Rao", "asha@example.com", "9876543210"))
	require.NoError(t, err)

	// Occupied flat with no active owner: drift.
	stale := seedFlat(t, flatRepo, "B-202")
	flatRepo.flats[stale.ID].Status = models.FlatOccupied
	flatRepo.flats[stale.ID].OwnerID = "gone"

	// Maintenance flat with no active owner: not drift.
	maintenance := seedFlat(t, flatRepo, "C-303")
	flatRepo.flats[maintenance.ID].Status = models.FlatMaintenance

	// Available flat with an active owner record: drift.
	orphaned := seedFlat(t, flatRepo, "D-404")
	orphan := &models.Owner{Name: "N", Email: "n@example.com", Phone: "9000000002", FlatID: orphaned.ID, Status: models.OwnerActive}
	_, err = ownerRepo.Create(context.Background(), orphan)
	require.NoError(t, err)

	drifts, err := svc.ReconcileOccupancy(context.Background())
	require.NoError(t, err)
	require.Len(t, drifts, 2)

	byFlat := make(map[string]OccupancyDrift, len(drifts))
	for _, d := range drifts {
		byFlat[d.FlatID] = d
	}
	require.Contains(t, byFlat, stale.ID)
	assert.False(t, byFlat[stale.ID].DerivedOccupied)
	require.Contains(t, byFlat, orphaned.ID)
	assert.True(t, byFlat[orphaned.ID].DerivedOccupied)
	assert.Equal(t, []string{orphan.ID}, byFlat[orphaned.ID].ActiveOwnerIDs)
}
