package port

import (
	"context"
	"image"

	"armor-vision/internal/domain/entity"
)

// ArmorDetector интерфейс детектора бронепластин
type ArmorDetector interface {
	// Detect находит пластины на кадре для заданного цвета противника
	Detect(ctx context.Context, frame image.Image, color entity.EnemyColor) ([]entity.ArmorCandidate, error)
}

// DigitRecognizer интерфейс распознавания цифры на пластине
type DigitRecognizer interface {
	// Recognize сопоставляет вырезанную область с шаблонами цифр
	Recognize(ctx context.Context, region image.Image) entity.Recognition
}

// Renderer рисует результаты поверх кадра
type Renderer interface {
	// Render возвращает новую картинку с разметкой пластин
	Render(frame image.Image, result entity.FrameResult, color entity.EnemyColor) (image.Image, error)
}
