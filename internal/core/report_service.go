package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"society-backend-go/internal/db"
	"society-backend-go/internal/models"
	"society-backend-go/pkg/cache"
)

// ReportType identifies an admin report over one managed collection.
type ReportType string

// Supported report types.
const (
	ReportFlats    ReportType = "flats"
	ReportOwners   ReportType = "owners"
	ReportVehicles ReportType = "vehicles"
)

// IsValid reports whether rt is a supported report type.
func (rt ReportType) IsValid() bool {
	switch rt {
	case ReportFlats, ReportOwners, ReportVehicles:
		return true
	}
	return false
}

// Report is the admin report payload: a count plus the full record list of
// the requested collection.
type Report struct {
	Type        ReportType  `json:"type"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Count       int         `json:"count"`
	Records     interface{} `json:"records"`
}

// DashboardStats is the aggregate view backing the admin dashboard. The
// occupancy figures carry both the stored statuses and the occupancy
// derived from owner records, plus the number of flats where they disagree.
type DashboardStats struct {
	GeneratedAt      time.Time `json:"generatedAt"`
	TotalFlats       int       `json:"totalFlats"`
	OccupiedFlats    int       `json:"occupiedFlats"`
	AvailableFlats   int       `json:"availableFlats"`
	MaintenanceFlats int       `json:"maintenanceFlats"`
	DerivedOccupied  int       `json:"derivedOccupied"`
	DriftCount       int       `json:"driftCount"`
	TotalOwners      int       `json:"totalOwners"`
	ActiveOwners     int       `json:"activeOwners"`
	TotalVehicles    int       `json:"totalVehicles"`
	TotalUsers       int       `json:"totalUsers"`
}

// reportService implements the ReportService interface. Results are cached
// in Redis for a short TTL; the cache is optional and a cache failure never
// fails the request.
type reportService struct {
	flatRepo    db.FlatRepository
	ownerRepo   db.OwnerRepository
	vehicleRepo db.VehicleRepository
	userRepo    db.UserRepository
	occupancy   OccupancyService
	cache       cache.Cache // optional
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewReportService creates a new ReportService instance. The cache may be
// nil to disable caching.
func NewReportService(
	fr db.FlatRepository,
	or db.OwnerRepository,
	vr db.VehicleRepository,
	ur db.UserRepository,
	occ OccupancyService,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportService{
		flatRepo:    fr,
		ownerRepo:   or,
		vehicleRepo: vr,
		userRepo:    ur,
		occupancy:   occ,
		cache:       c,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (s *reportService) GenerateReport(ctx context.Context, reportType ReportType) (*Report, error) {
	if !reportType.IsValid() {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidReportType, reportType)
	}

	cacheKey := "report:" + string(reportType)
	var cached Report
	if s.cacheGet(cacheKey, &cached) {
		return &cached, nil
	}

	report := &Report{Type: reportType, GeneratedAt: time.Now().UTC()}
	switch reportType {
	case ReportFlats:
		flats, err := s.flatRepo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build flats report: %w", err)
		}
		report.Count = len(flats)
		report.Records = flats
	case ReportOwners:
		owners, err := s.ownerRepo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build owners report: %w", err)
		}
		report.Count = len(owners)
		report.Records = owners
	case ReportVehicles:
		vehicles, err := s.vehicleRepo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build vehicles report: %w", err)
		}
		report.Count = len(vehicles)
		report.Records = vehicles
	}

	s.cacheSet(cacheKey, report)
	return report, nil
}

func (s *reportService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	if s.flatRepo == nil || s.ownerRepo == nil || s.vehicleRepo == nil || s.userRepo == nil {
		return nil, errors.New("reportService: component not initialized")
	}

	const cacheKey = "dashboard:stats"
	var cached DashboardStats
	if s.cacheGet(cacheKey, &cached) {
		return &cached, nil
	}

	flats, err := s.flatRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flats for dashboard: %w", err)
	}
	owners, err := s.ownerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners for dashboard: %w", err)
	}
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles for dashboard: %w", err)
	}
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for dashboard: %w", err)
	}

	stats := &DashboardStats{
		GeneratedAt:   time.Now().UTC(),
		TotalFlats:    len(flats),
		TotalOwners:   len(owners),
		TotalVehicles: len(vehicles),
		TotalUsers:    len(users),
	}
	for _, flat := range flats {
		switch flat.Status {
		case models.FlatOccupied:
			stats.OccupiedFlats++
		case models.FlatAvailable:
			stats.AvailableFlats++
		case models.FlatMaintenance:
			stats.MaintenanceFlats++
		}
		if FlatDisplayStatus(flat, owners) {
			stats.DerivedOccupied++
		}
	}
	for _, owner := range owners {
		if owner.Status == models.OwnerActive {
			stats.ActiveOwners++
		}
	}
	if s.occupancy != nil {
		drifts, err := s.occupancy.ReconcileOccupancy(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to compute occupancy drift: %w", err)
		}
		stats.DriftCount = len(drifts)
	}

	s.cacheSet(cacheKey, stats)
	return stats, nil
}

// cacheGet loads a cached JSON value; a miss or any cache error is a miss.
func (s *reportService) cacheGet(key string, out interface{}) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}
	raw, err := s.cache.Get(key)
	if err != nil || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *reportService) cacheSet(key string, value interface{}) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(key, string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("failed to write cache entry", zap.String("key", key), zap.Error(err))
	}
}
