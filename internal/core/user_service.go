package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"society-backend-go/internal/db"
	"society-backend-go/internal/models"
)

// userService implements the UserService interface over the user profile
// documents keyed by Firebase Auth UID.
type userService struct {
	userRepo     db.UserRepository
	auditService AuditService
}

// NewUserService creates a new UserService instance.
func NewUserService(ur db.UserRepository, as AuditService) UserService {
	return &userService{userRepo: ur, auditService: as}
}

// GetOrCreate resolves the profile for the UID, creating it on first
// sign-in with role "user" and marking the login time. The boolean reports
// whether a new profile was created.
func (s *userService) GetOrCreate(ctx context.Context, userID, email, displayName, photoURL string) (*models.User, bool, error) {
	if s.userRepo == nil {
		return nil, false, errors.New("userService: repository not initialized")
	}
	if userID == "" {
		return nil, false, errors.New("userID cannot be empty")
	}

	now := time.Now().UTC()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		user.LastLoginAt = &now
		user.UpdatedAt = now
		if err := s.userRepo.Update(ctx, user); err != nil {
			log.Printf("Warning: failed to record login time for user %s: %v", userID, err)
		}
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get user '%s': %w", userID, err)
	}

	user = &models.User{
		ID:          userID,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		Role:        models.RoleUser,
		IsActive:    true,
		LastLoginAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create user profile '%s': %w", userID, err)
	}

	s.auditBestEffort(ctx, userID, "USER_INITIALIZE", userID, map[string]interface{}{
		"email": email,
	})

	return user, true, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if s.userRepo == nil {
		return nil, errors.New("userService: repository not initialized")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", userID, err)
	}
	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, actorID, userID, role string) error {
	if s.userRepo == nil {
		return errors.New("userService: repository not initialized")
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return fmt.Errorf("invalid role '%s'", role)
	}

	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("failed to update role for user '%s': %w", userID, err)
	}

	s.auditBestEffort(ctx, actorID, "USER_ROLE_UPDATE", userID, map[string]interface{}{
		"role": role,
	})

	return nil
}

// Delete removes the profile document. Called on account deletion, so a
// missing profile is not an error.
func (s *userService) Delete(ctx context.Context, userID string) error {
	if s.userRepo == nil {
		return errors.New("userService: repository not initialized")
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil && !errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("failed to delete user '%s': %w", userID, err)
	}

	s.auditBestEffort(ctx, userID, "USER_DELETE", userID, nil)

	return nil
}

func (s *userService) auditBestEffort(ctx context.Context, actorID, action, userID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	err := s.auditService.CreateAuditLog(ctx, models.AuditLog{
		UserID:     actorID,
		Action:     action,
		TargetType: "USER",
		TargetID:   userID,
		Timestamp:  time.Now().UTC(),
		Details:    details,
	})
	if err != nil {
		log.Printf("Warning: failed to create audit log for %s (user %s): %v", action, userID, err)
	}
}
