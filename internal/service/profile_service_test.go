package service

import (
	"alcyxob/adaptive-coach/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	id, err := users.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.com", Role: domain.RoleClient, PasswordHash: "x"})
	require.NoError(t, err)
	svc := NewProfileService(users)

	level := domain.LevelAdvanced
	updated, err := svc.UpdateProfile(ctx, id.Hex(), ProfileUpdate{
		FitnessLevel: &level,
		Goals:        []string{"Strength", "strength", " cardio "},
		Equipment:    []string{"Dumbbells", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, domain.LevelAdvanced, updated.FitnessLevel)
	assert.Equal(t, []string{"strength", "cardio"}, updated.Goals)
	assert.Equal(t, []string{"dumbbells"}, updated.Equipment)

	got, err := svc.GetProfile(ctx, id.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.LevelAdvanced, got.FitnessLevel)
	assert.Empty(t, got.PasswordHash)
}

func TestProfileService_Errors(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	id, err := users.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.com", Role: domain.RoleClient})
	require.NoError(t, err)
	svc := NewProfileService(users)

	bad := domain.FitnessLevel("elite")
	_, err = svc.UpdateProfile(ctx, id.Hex(), ProfileUpdate{FitnessLevel: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	blank := "  "
	_, err = svc.UpdateProfile(ctx, id.Hex(), ProfileUpdate{Name: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetProfile(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetProfile(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
