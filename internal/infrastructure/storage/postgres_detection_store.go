package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"armor-vision/internal/domain/entity"
	"armor-vision/internal/domain/port"
)

// ErrRunNotFound прогон с таким идентификатором не зарегистрирован
var ErrRunNotFound = errors.New("detection run not found")

// PostgresDetectionStore журнал детекций в PostgreSQL
type PostgresDetectionStore struct {
	conn *pgx.Conn
}

// NewPostgresDetectionStore подключается к базе и создаёт схему, если её нет
func NewPostgresDetectionStore(ctx context.Context, connString string) (*PostgresDetectionStore, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := initSchema(ctx, conn); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return &PostgresDetectionStore{conn: conn}, nil
}

func initSchema(ctx context.Context, conn *pgx.Conn) error {
	query := `
		CREATE TABLE IF NOT EXISTS detection_runs (
			id UUID PRIMARY KEY,
			source TEXT NOT NULL,
			enemy_color TEXT NOT NULL,
			started_at TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS armor_detections (
			id BIGSERIAL PRIMARY KEY,
			run_id UUID REFERENCES detection_runs(id) ON DELETE CASCADE,
			frame_index INT NOT NULL,
			x INT NOT NULL,
			y INT NOT NULL,
			width INT NOT NULL,
			height INT NOT NULL,
			large BOOLEAN NOT NULL,
			distance_ratio DOUBLE PRECISION NOT NULL,
			digit INT,
			confidence DOUBLE PRECISION NOT NULL
		);
		CREATE INDEX IF NOT EXISTS armor_detections_run_frame_idx ON armor_detections (run_id, frame_index);
	`
	_, err := conn.Exec(ctx, query)
	return err
}

// BeginRun регистрирует прогон
func (s *PostgresDetectionStore) BeginRun(ctx context.Context, source string, color entity.EnemyColor) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.conn.Exec(ctx, `
		INSERT INTO detection_runs (id, source, enemy_color, started_at)
		VALUES ($1, $2, $3, NOW())
	`, id, source, string(color))
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// RecordFrame сохраняет пластины кадра одной транзакцией
func (s *PostgresDetectionStore) RecordFrame(ctx context.Context, runID uuid.UUID, result entity.FrameResult) error {
	if !result.HasArmors() {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range result.Armors {
		var digit *int
		if a.HasDigit() {
			d := a.Digit
			digit = &d
		}
		batch.Queue(`
			INSERT INTO armor_detections (run_id, frame_index, x, y, width, height, large, distance_ratio, digit, confidence)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, runID, result.Index, a.Box.Min.X, a.Box.Min.Y, a.Box.Dx(), a.Box.Dy(), a.Large, a.DistanceRatio, digit, a.Confidence)
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert frame %d: %w", result.Index, err)
	}
	return tx.Commit(ctx)
}

// CountDetections количество пластин, записанных в прогоне
func (s *PostgresDetectionStore) CountDetections(ctx context.Context, runID uuid.UUID) (int, error) {
	var n int
	err := s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM armor_detections WHERE run_id = $1", runID).Scan(&n)
	return n, err
}

// Reset удаляет таблицы журнала
func (s *PostgresDetectionStore) Reset(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, `
		DROP TABLE IF EXISTS armor_detections CASCADE;
		DROP TABLE IF EXISTS detection_runs CASCADE;
	`)
	return err
}

// Close закрывает соединение
func (s *PostgresDetectionStore) Close(ctx context.Context) {
	s.conn.Close(ctx)
}

var _ port.DetectionStore = (*PostgresDetectionStore)(nil)
