package port

import (
	"context"

	"github.com/google/uuid"

	"armor-vision/internal/domain/entity"
)

// DetectionStore журнал результатов детекции
type DetectionStore interface {
	// BeginRun регистрирует новый прогон и возвращает его идентификатор
	BeginRun(ctx context.Context, source string, color entity.EnemyColor) (uuid.UUID, error)

	// RecordFrame сохраняет пластины одного кадра
	RecordFrame(ctx context.Context, runID uuid.UUID, result entity.FrameResult) error

	// Close освобождает соединение
	Close(ctx context.Context)
}
