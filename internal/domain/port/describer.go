package port

import (
	"context"

	"armor-vision/internal/domain/entity"
)

// ResultDescriber интерфейс описателя результатов детекции
type ResultDescriber interface {
	// Describe генерирует текстовое описание найденных пластин
	Describe(ctx context.Context, result entity.FrameResult) (string, error)
}
