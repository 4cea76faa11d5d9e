package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-backend-go/internal/models"
)

func TestGetOrCreateFirstSignIn(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)

	user, created, err := svc.GetOrCreate(context.Background(), "uid-1", "asha@example.com", "Asha Rao", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	require.NotNil(t, user.LastLoginAt)
}

func TestGetOrCreateExistingKeepsRole(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)

	_, _, err := svc.GetOrCreate(context.Background(), "uid-1", "asha@example.com", "Asha Rao", "")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateRole(context.Background(), "admin-1", "uid-1", models.RoleAdmin))

	user, created, err := svc.GetOrCreate(context.Background(), "uid-1", "asha@example.com", "Asha Rao", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)

	_, _, err := svc.GetOrCreate(context.Background(), "uid-1", "asha@example.com", "Asha Rao", "")
	require.NoError(t, err)

	assert.Error(t, svc.UpdateRole(context.Background(), "admin-1", "uid-1", "superuser"))
	assert.ErrorIs(t, svc.UpdateRole(context.Background(), "admin-1", "missing", models.RoleAdmin), ErrUserNotFound)
}

func TestDeleteUserIsIdempotent(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)

	_, _, err := svc.GetOrCreate(context.Background(), "uid-1", "asha@example.com", "Asha Rao", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "uid-1"))
	// A second delete on a gone profile is not an error.
	require.NoError(t, svc.Delete(context.Background(), "uid-1"))
}
