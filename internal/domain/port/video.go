package port

import (
	"context"
	"image"
)

// FrameSource источник кадров. Конец потока сообщается ошибкой io.EOF.
type FrameSource interface {
	Read(ctx context.Context) (image.Image, error)
	// FrameCount общее число кадров или -1, если неизвестно
	FrameCount() int
	// FPS частота кадров источника или 0
	FPS() float64
	Close() error
}

// FrameSink приёмник обработанных кадров
type FrameSink interface {
	Write(frame image.Image) error
	Close() error
}

// Display показывает кадр; stop=true, если пользователь попросил остановку
type Display interface {
	Show(frame image.Image) (stop bool)
	Close() error
}
