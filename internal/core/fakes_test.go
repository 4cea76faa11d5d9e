package core

import (
	"context"
	"fmt"
	"sort"

	"society-backend-go/internal/db"
	"society-backend-go/internal/models"
)

// In-memory repository fakes mirroring the Firestore implementations:
// Create assigns and sets the document id, missing documents return
// db.ErrNotFound, and field-level updates touch only their fields.
// Err* fields inject failures for partial-write scenarios.

type fakeFlatRepo struct {
	flats  map[string]*models.Flat
	nextID int

	ErrSetOwnership   error
	ErrClearOwnership error
}

func newFakeFlatRepo() *fakeFlatRepo {
	return &fakeFlatRepo{flats: make(map[string]*models.Flat)}
}

func (r *fakeFlatRepo) Create(_ context.Context, flat *models.Flat) (string, error) {
	r.nextID++
	flat.ID = fmt.Sprintf("flat-%d", r.nextID)
	clone := *flat
	r.flats[flat.ID] = &clone
	return flat.ID, nil
}

func (r *fakeFlatRepo) GetByID(_ context.Context, flatID string) (*models.Flat, error) {
	flat, ok := r.flats[flatID]
	if !ok {
		return nil, fmt.Errorf("flat '%s': %w", flatID, db.ErrNotFound)
	}
	clone := *flat
	return &clone, nil
}

func (r *fakeFlatRepo) GetByNumber(_ context.Context, flatNumber string) (*models.Flat, error) {
	for _, flat := range r.flats {
		if flat.FlatNumber == flatNumber {
			clone := *flat
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("flat number '%s': %w", flatNumber, db.ErrNotFound)
}

func (r *fakeFlatRepo) GetAll(_ context.Context) ([]*models.Flat, error) {
	out := make([]*models.Flat, 0, len(r.flats))
	for _, flat := range r.flats {
		clone := *flat
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFlatRepo) Update(_ context.Context, flat *models.Flat) error {
	if _, ok := r.flats[flat.ID]; !ok {
		return fmt.Errorf("flat '%s': %w", flat.ID, db.ErrNotFound)
	}
	clone := *flat
	r.flats[flat.ID] = &clone
	return nil
}

func (r *fakeFlatRepo) SetOwnership(_ context.Context, flatID, ownerID, previousOwnerID string) error {
	if r.ErrSetOwnership != nil {
		return r.ErrSetOwnership
	}
	flat, ok := r.flats[flatID]
	if !ok {
		return fmt.Errorf("flat '%s': %w", flatID, db.ErrNotFound)
	}
	flat.OwnerID = ownerID
	flat.PreviousOwnerID = previousOwnerID
	flat.Status = models.FlatOccupied
	return nil
}

func (r *fakeFlatRepo) ClearOwnership(_ context.Context, flatID string) error {
	if r.ErrClearOwnership != nil {
		return r.ErrClearOwnership
	}
	flat, ok := r.flats[flatID]
	if !ok {
		return fmt.Errorf("flat '%s': %w", flatID, db.ErrNotFound)
	}
	flat.OwnerID = ""
	flat.Status = models.FlatAvailable
	return nil
}

func (r *fakeFlatRepo) Delete(_ context.Context, flatID string) error {
	if _, ok := r.flats[flatID]; !ok {
		return fmt.Errorf("flat '%s': %w", flatID, db.ErrNotFound)
	}
	delete(r.flats, flatID)
	return nil
}

type fakeOwnerRepo struct {
	owners map[string]*models.Owner
	nextID int

	ErrSetStatus error
	ErrCreate    error
}

func newFakeOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: make(map[string]*models.Owner)}
}

func (r *fakeOwnerRepo) Create(_ context.Context, owner *models.Owner) (string, error) {
	if r.ErrCreate != nil {
		return "", r.ErrCreate
	}
	r.nextID++
	owner.ID = fmt.Sprintf("owner-%d", r.nextID)
	clone := *owner
	r.owners[owner.ID] = &clone
	return owner.ID, nil
}

func (r *fakeOwnerRepo) GetByID(_ context.Context, ownerID string) (*models.Owner, error) {
	owner, ok := r.owners[ownerID]
	if !ok {
		return nil, fmt.Errorf("owner '%s': %w", ownerID, db.ErrNotFound)
	}
	clone := *owner
	return &clone, nil
}

func (r *fakeOwnerRepo) GetAll(_ context.Context) ([]*models.Owner, error) {
	out := make([]*models.Owner, 0, len(r.owners))
	for _, owner := range r.owners {
		clone := *owner
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOwnerRepo) GetByFlatID(_ context.Context, flatID string) ([]*models.Owner, error) {
	var out []*models.Owner
	for _, owner := range r.owners {
		if owner.FlatID == flatID {
			clone := *owner
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOwnerRepo) Update(_ context.Context, owner *models.Owner) error {
	if _, ok := r.owners[owner.ID]; !ok {
		return fmt.Errorf("owner '%s': %w", owner.ID, db.ErrNotFound)
	}
	clone := *owner
	r.owners[owner.ID] = &clone
	return nil
}

func (r *fakeOwnerRepo) Activate(_ context.Context, ownerID, flatID string) error {
	owner, ok := r.owners[ownerID]
	if !ok {
		return fmt.Errorf("owner '%s': %w", ownerID, db.ErrNotFound)
	}
	owner.FlatID = flatID
	owner.Status = models.OwnerActive
	return nil
}

func (r *fakeOwnerRepo) SetStatus(_ context.Context, ownerID string, status models.OwnerStatus) error {
	if r.ErrSetStatus != nil {
		return r.ErrSetStatus
	}
	owner, ok := r.owners[ownerID]
	if !ok {
		return fmt.Errorf("owner '%s': %w", ownerID, db.ErrNotFound)
	}
	owner.Status = status
	return nil
}

func (r *fakeOwnerRepo) Delete(_ context.Context, ownerID string) error {
	if _, ok := r.owners[ownerID]; !ok {
		return fmt.Errorf("owner '%s': %w", ownerID, db.ErrNotFound)
	}
	delete(r.owners, ownerID)
	return nil
}

type fakeVehicleRepo struct {
	vehicles map[string]*models.Vehicle
	nextID   int
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[string]*models.Vehicle)}
}

func (r *fakeVehicleRepo) Create(_ context.Context, vehicle *models.Vehicle) (string, error) {
	r.nextID++
	vehicle.ID = fmt.Sprintf("vehicle-%d", r.nextID)
	clone := *vehicle
	r.vehicles[vehicle.ID] = &clone
	return vehicle.ID, nil
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, vehicleID string) (*models.Vehicle, error) {
	vehicle, ok := r.vehicles[vehicleID]
	if !ok {
		return nil, fmt.Errorf("vehicle '%s': %w", vehicleID, db.ErrNotFound)
	}
	clone := *vehicle
	return &clone, nil
}

func (r *fakeVehicleRepo) GetByNumber(_ context.Context, vehicleNumber string) (*models.Vehicle, error) {
	for _, vehicle := range r.vehicles {
		if vehicle.VehicleNumber == vehicleNumber {
			clone := *vehicle
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("vehicle number '%s': %w", vehicleNumber, db.ErrNotFound)
}

func (r *fakeVehicleRepo) GetAll(_ context.Context) ([]*models.Vehicle, error) {
	out := make([]*models.Vehicle, 0, len(r.vehicles))
	for _, vehicle := range r.vehicles {
		clone := *vehicle
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeVehicleRepo) GetByOwnerID(_ context.Context, ownerID string) ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.OwnerID == ownerID {
			clone := *vehicle
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, vehicle *models.Vehicle) error {
	if _, ok := r.vehicles[vehicle.ID]; !ok {
		return fmt.Errorf("vehicle '%s': %w", vehicle.ID, db.ErrNotFound)
	}
	clone := *vehicle
	r.vehicles[vehicle.ID] = &clone
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, vehicleID string) error {
	if _, ok := r.vehicles[vehicleID]; !ok {
		return fmt.Errorf("vehicle '%s': %w", vehicleID, db.ErrNotFound)
	}
	delete(r.vehicles, vehicleID)
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user '%s': %w", userID, db.ErrNotFound)
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user '%s': %w", user.ID, db.ErrNotFound)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, userID, role string) error {
	user, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user '%s': %w", userID, db.ErrNotFound)
	}
	user.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID string) error {
	if _, ok := r.users[userID]; !ok {
		return fmt.Errorf("user '%s': %w", userID, db.ErrNotFound)
	}
	delete(r.users, userID)
	return nil
}

type fakeBackupRepo struct {
	collections map[string][]map[string]interface{}
	created     []*models.Backup
	nextID      int
}

func newFakeBackupRepo() *fakeBackupRepo {
	return &fakeBackupRepo{collections: make(map[string][]map[string]interface{})}
}

func (r *fakeBackupRepo) Create(_ context.Context, backup *models.Backup) (string, error) {
	r.nextID++
	backup.ID = fmt.Sprintf("backup-%d", r.nextID)
	r.created = append(r.created, backup)
	return backup.ID, nil
}

func (r *fakeBackupRepo) SnapshotCollection(_ context.Context, collection string) ([]map[string]interface{}, error) {
	return r.collections[collection], nil
}

type fakeAuditRepo struct {
	entries []models.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, logEntry models.AuditLog) error {
	r.entries = append(r.entries, logEntry)
	return nil
}

var _ db.FlatRepository = (*fakeFlatRepo)(nil)
var _ db.OwnerRepository = (*fakeOwnerRepo)(nil)
var _ db.VehicleRepository = (*fakeVehicleRepo)(nil)
var _ db.UserRepository = (*fakeUserRepo)(nil)
var _ db.AuditRepository = (*fakeAuditRepo)(nil)
var _ db.BackupRepository = (*fakeBackupRepo)(nil)
