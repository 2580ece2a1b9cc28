package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"armor-vision/internal/domain/entity"
	"armor-vision/internal/infrastructure/storage"
)

func TestUserService_BeginCheckAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	user, err = svc.BeginProcessing(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateAwaitingPhoto)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
}

func TestUserService_SetColor(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, ok, err := svc.SetColor(ctx, 3, 30, "blue")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entity.ColorBlue, user.Color)

	user, ok, err = svc.SetColor(ctx, 3, 30, "purple")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, entity.ColorBlue, user.Color, "unknown color keeps the previous one")

	stored, err := svc.Get(ctx, 3, 30)
	require.NoError(t, err)
	require.Equal(t, entity.ColorBlue, stored.Color)
}
