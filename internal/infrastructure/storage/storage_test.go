package storage

import (
	"context"
	"fmt"
	"image"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"armor-vision/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesOnce(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u1, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	u2, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Same(t, u1, u2)

	require.NoError(t, repo.UpdateColor(ctx, 1, entity.ColorBlue))
	require.NoError(t, repo.UpdateState(ctx, 1, entity.StateAwaitingPhoto))
	require.Equal(t, entity.ColorBlue, u1.Color)
	require.Equal(t, entity.StateAwaitingPhoto, u1.State)
}

func sampleFrame(index int, armors int) entity.FrameResult {
	r := entity.FrameResult{Index: index, Width: 640, Height: 480}
	for i := 0; i < armors; i++ {
		r.Armors = append(r.Armors, entity.ArmorCandidate{
			Box:   image.Rect(10*i, 10, 10*i+50, 60),
			Digit: entity.NoDigit,
		})
	}
	return r
}

func TestMemoryDetectionStore_RecordsOnlyFramesWithArmors(t *testing.T) {
	s := NewMemoryDetectionStore()
	ctx := context.Background()

	id, err := s.BeginRun(ctx, "test.avi", entity.ColorRed)
	require.NoError(t, err)

	require.NoError(t, s.RecordFrame(ctx, id, sampleFrame(1, 0)))
	require.NoError(t, s.RecordFrame(ctx, id, sampleFrame(2, 2)))
	require.ErrorIs(t, s.RecordFrame(ctx, uuid.New(), sampleFrame(3, 1)), ErrRunNotFound)

	run, ok := s.Run(id)
	require.True(t, ok)
	require.Equal(t, "test.avi", run.Source)
	require.Len(t, run.Frames, 1)
	require.Equal(t, 2, run.Frames[0].Index)
}

// postgresDSN берёт базу из ARMOR_TEST_DATABASE_URL или поднимает контейнер PostgreSQL.
func postgresDSN(t *testing.T, ctx context.Context) string {
	t.Helper()
	if dsn := os.Getenv("ARMOR_TEST_DATABASE_URL"); dsn != "" {
		return dsn
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("testcontainers panicked: %v", r)
			}
		}()
		_, err = testcontainers.NewDockerClientWithOpts(ctx)
		return
	}()
	if err != nil {
		t.Skipf("Docker not available: %v", err)
	}

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("armor_test"),
		postgres.WithUsername("armor"),
		postgres.WithPassword("armor"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestPostgresDetectionStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	s, err := NewPostgresDetectionStore(ctx, postgresDSN(t, ctx))
	require.NoError(t, err)
	defer s.Close(ctx)
	defer s.Reset(ctx)

	id, err := s.BeginRun(ctx, "camera:0", entity.ColorBlue)
	require.NoError(t, err)

	frame := sampleFrame(5, 3)
	frame.Armors[0].Digit = 3
	require.NoError(t, s.RecordFrame(ctx, id, frame))
	require.NoError(t, s.RecordFrame(ctx, id, sampleFrame(6, 0)))

	n, err := s.CountDetections(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	err = s.RecordFrame(ctx, uuid.New(), sampleFrame(7, 1))
	require.Error(t, err, "unknown run violates the foreign key")
}
