package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-backend-go/internal/models"
)

type fakeCache struct {
	values map[string]string
	sets   int
}

func newFakeCache() *fakeCache { return &fakeCache{values: make(map[string]string)} }

func (c *fakeCache) Get(key string) (string, error) { return c.values[key], nil }

func (c *fakeCache) Set(key string, value interface{}, _ time.Duration) error {
	c.values[key] = value.(string)
	c.sets++
	return nil
}

func (c *fakeCache) Delete(key string) error {
	delete(c.values, key)
	return nil
}

type reportFixture struct {
	flatRepo    *fakeFlatRepo
	ownerRepo   *fakeOwnerRepo
	vehicleRepo *fakeVehicleRepo
	userRepo    *fakeUserRepo
	cache       *fakeCache
	svc         ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	f := &reportFixture{
		flatRepo:    newFakeFlatRepo(),
		ownerRepo:   newFakeOwnerRepo(),
		vehicleRepo: newFakeVehicleRepo(),
		userRepo:    newFakeUserRepo(),
		cache:       newFakeCache(),
	}
	occupancy := NewOccupancyService(f.flatRepo, f.ownerRepo, nil, nil)
	f.svc = NewReportService(f.flatRepo, f.ownerRepo, f.vehicleRepo, f.userRepo, occupancy, f.cache, 30*time.Second, nil)
	return f
}

func TestGenerateReportCounts(t *testing.T) {
	f := newReportFixture(t)
	seedFlat(t, f.flatRepo, "A-101")
	seedFlat(t, f.flatRepo, "A-102")

	report, err := f.svc.GenerateReport(context.Background(), ReportFlats)
	require.NoError(t, err)
	assert.Equal(t, ReportFlats, report.Type)
	assert.Equal(t, 2, report.Count)
}

func TestGenerateReportInvalidType(t *testing.T) {
	f := newReportFixture(t)
	_, err := f.svc.GenerateReport(context.Background(), ReportType("residents"))
	assert.ErrorIs(t, err, ErrInvalidReportType)
}

func TestGenerateReportServedFromCache(t *testing.T) {
	f := newReportFixture(t)
	seedFlat(t, f.flatRepo, "A-101")

	first, err := f.svc.GenerateReport(context.Background(), ReportFlats)
	require.NoError(t, err)
	require.Equal(t, 1, f.cache.sets)

	// New data within the TTL window is not reflected.
	seedFlat(t, f.flatRepo, "A-102")
	second, err := f.svc.GenerateReport(context.Background(), ReportFlats)
	require.NoError(t, err)
	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, 1, f.cache.sets)
}

func TestDashboardStats(t *testing.T) {
	f := newReportFixture(t)
	occupancy := NewOccupancyService(f.flatRepo, f.ownerRepo, nil, nil)

	occupied := seedFlat(t, f.flatRepo, "A-101")
	_, err := occupancy.AssignOwner(context.Background(), "admin-1", occupied.ID, ownerPayload("Asha Rao", "asha@example.com", "9876543210"))
	require.NoError(t, err)

	seedFlat(t, f.flatRepo, "A-102")
	maintenance := seedFlat(t, f.flatRepo, "A-103")
	f.flatRepo.flats[maintenance.ID].Status = models.FlatMaintenance

	// Occupied with no active owner: counted as drift.
	stale := seedFlat(t, f.flatRepo, "B-201")
	f.flatRepo.flats[stale.ID].Status = models.FlatOccupied
	f.flatRepo.flats[stale.ID].OwnerID = "gone"

	require.NoError(t, f.userRepo.Create(context.Background(), &models.User{ID: "uid-1", Email: "asha@example.com", Role: models.RoleAdmin}))

	stats, err := f.svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalFlats)
	assert.Equal(t, 2, stats.OccupiedFlats)
	assert.Equal(t, 1, stats.AvailableFlats)
	assert.Equal(t, 1, stats.MaintenanceFlats)
	assert.Equal(t, 1, stats.DerivedOccupied)
	assert.Equal(t, 1, stats.DriftCount)
	assert.Equal(t, 1, stats.TotalOwners)
	assert.Equal(t, 1, stats.ActiveOwners)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 0, stats.TotalVehicles)
}

func TestBackupSnapshotsAllCollections(t *testing.T) {
	backupRepo := newFakeBackupRepo()
	backupRepo.collections["flats"] = []map[string]interface{}{{"id": "flat-1", "flatNumber": "A-101"}}
	backupRepo.collections["owners"] = []map[string]interface{}{{"id": "owner-1"}}

	svc := NewBackupService(backupRepo, nil)
	id, err := svc.RunDailyBackup(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Len(t, backupRepo.created, 1)
	backup := backupRepo.created[0]
	assert.Equal(t, "daily", backup.Type)
	assert.Len(t, backup.Data["flats"], 1)
	assert.Len(t, backup.Data["owners"], 1)
	assert.Contains(t, backup.Data, "vehicles")
	assert.Contains(t, backup.Data, "users")
}
