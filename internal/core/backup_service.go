package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"society-backend-go/internal/db"
	"society-backend-go/internal/models"
)

// backupCollections are the collections included in a daily snapshot, in
// snapshot order. Audit logs and previous backups are excluded.
var backupCollections = []string{"flats", "owners", "vehicles", "users"}

// backupService implements the BackupService interface. It is run on a
// schedule from main; a run that fails on one collection aborts so a
// partial snapshot is never written.
type backupService struct {
	backupRepo db.BackupRepository
	logger     *zap.Logger
}

// NewBackupService creates a new BackupService instance.
func NewBackupService(br db.BackupRepository, logger *zap.Logger) BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &backupService{backupRepo: br, logger: logger}
}

// RunDailyBackup snapshots the managed collections into a single backup
// document and returns its id.
func (s *backupService) RunDailyBackup(ctx context.Context) (string, error) {
	if s.backupRepo == nil {
		return "", errors.New("backupService: repository not initialized")
	}

	started := time.Now().UTC()
	data := make(map[string][]map[string]interface{}, len(backupCollections))
	for _, collection := range backupCollections {
		docs, err := s.backupRepo.SnapshotCollection(ctx, collection)
		if err != nil {
			return "", fmt.Errorf("failed to snapshot collection '%s': %w", collection, err)
		}
		data[collection] = docs
	}

	backup := &models.Backup{
		Type:      "daily",
		Timestamp: started,
		Data:      data,
	}
	id, err := s.backupRepo.Create(ctx, backup)
	if err != nil {
		return "", fmt.Errorf("failed to write backup document: %w", err)
	}

	s.logger.Info("daily backup completed",
		zap.String("backupId", id),
		zap.Duration("took", time.Since(started)),
	)
	return id, nil
}
