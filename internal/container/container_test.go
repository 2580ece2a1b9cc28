package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"armor-vision/internal/domain/digit"
	"armor-vision/internal/domain/entity"
	"armor-vision/internal/infrastructure/storage"
	"armor-vision/internal/logger"
)

func TestNew_WiresServices(t *testing.T) {
	store := storage.NewMemoryDetectionStore()
	c := New(storage.NewMemoryUserRepository(), nil, nil, nil, store, logger.Discard())

	require.NotNil(t, c.UserService)
	require.NotNil(t, c.DetectionService)
	require.NotNil(t, c.Describer)

	user, err := c.UserService.BeginCheck(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	c.Close(context.Background())
}

func TestLoadTemplates_FallsBackToSynthetic(t *testing.T) {
	params := digit.DefaultParams()
	params.TemplateDir = filepath.Join(t.TempDir(), "missing")

	set, err := LoadTemplates(params, logger.Discard())
	require.NoError(t, err)
	require.Equal(t, digit.SourceSynthetic, set.Source())
	require.Equal(t, []int{1, 2, 3, 4, 7}, set.Labels())
}

func TestLoadTemplates_BrokenFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(digit.TemplatePath(dir, 2), []byte("not a png"), 0o644))

	params := digit.DefaultParams()
	params.TemplateDir = dir

	set, err := LoadTemplates(params, logger.Discard())
	require.NoError(t, err)
	require.Equal(t, digit.SourceSynthetic, set.Source())
}

func TestOpenStore_Memory(t *testing.T) {
	store, err := OpenStore(context.Background(), "", logger.Discard())
	require.NoError(t, err)
	require.IsType(t, &storage.MemoryDetectionStore{}, store)
}
