package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"armor-vision/internal/domain/entity"
	"armor-vision/internal/domain/port"
)

// Run прогон детекции в памяти
type Run struct {
	ID        uuid.UUID
	Source    string
	Color     entity.EnemyColor
	StartedAt time.Time
	Frames    []entity.FrameResult
}

// MemoryDetectionStore журнал детекций в памяти
type MemoryDetectionStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*Run
}

// NewMemoryDetectionStore создаёт пустой журнал
func NewMemoryDetectionStore() *MemoryDetectionStore {
	return &MemoryDetectionStore{runs: make(map[uuid.UUID]*Run)}
}

// BeginRun регистрирует прогон
func (s *MemoryDetectionStore) BeginRun(ctx context.Context, source string, color entity.EnemyColor) (uuid.UUID, error) {
	id := uuid.New()
	s.mu.Lock()
	s.runs[id] = &Run{ID: id, Source: source, Color: color, StartedAt: time.Now()}
	s.mu.Unlock()
	return id, nil
}

// RecordFrame сохраняет кадр; кадры без пластин не хранятся
func (s *MemoryDetectionStore) RecordFrame(ctx context.Context, runID uuid.UUID, result entity.FrameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok {
		return ErrRunNotFound
	}
	if !result.HasArmors() {
		return nil
	}
	run.Frames = append(run.Frames, result)
	return nil
}

// Run возвращает копию прогона
func (s *MemoryDetectionStore) Run(runID uuid.UUID) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	if !ok {
		return Run{}, false
	}
	cp := *run
	cp.Frames = append([]entity.FrameResult(nil), run.Frames...)
	return cp, true
}

// Close ничего не делает
func (s *MemoryDetectionStore) Close(ctx context.Context) {}

var _ port.DetectionStore = (*MemoryDetectionStore)(nil)
