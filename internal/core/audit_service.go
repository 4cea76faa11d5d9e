package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"society-backend-go/internal/db"
	"society-backend-go/internal/models"
)

// auditService implements the AuditService interface.
type auditService struct {
	auditRepo db.AuditRepository
}

// NewAuditService creates a new AuditService instance.
func NewAuditService(ar db.AuditRepository) AuditService {
	return &auditService{auditRepo: ar}
}

func (s *auditService) CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error {
	if s.auditRepo == nil {
		return errors.New("auditService: repository not initialized")
	}
	if logEntry.Action == "" {
		return errors.New("audit log action cannot be empty")
	}
	if logEntry.Timestamp.IsZero() {
		logEntry.Timestamp = time.Now().UTC()
	}
	if err := s.auditRepo.Create(ctx, logEntry); err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}
