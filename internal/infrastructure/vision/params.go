package vision

import (
	"errors"

	"armor-vision/internal/domain/entity"
)

// ErrGoCVDisabled сборка без тега gocv
var ErrGoCVDisabled = errors.New("gocv build tag is not enabled")

// ErrSourceUnavailable не удалось открыть источник кадров
var ErrSourceUnavailable = errors.New("video source is unavailable")

// Нижние границы насыщенности и яркости светящихся полос фиксированы.
const (
	SaturationFloor = 100
	ValueFloor      = 100
)

// HueRange диапазон тона в шкале OpenCV (0..180)
type HueRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SegmentParams настройки цветовой сегментации
type SegmentParams struct {
	BlurKernel    int        `yaml:"blur_kernel"`  // размер ядра размытия, 0 отключает
	MorphKernel   int        `yaml:"morph_kernel"` // ядро открытия и дилатации
	RedBands      []HueRange `yaml:"red_bands"`    // красный переходит через 0
	BlueBands     []HueRange `yaml:"blue_bands"`
	FallbackBands []HueRange `yaml:"fallback_bands"`
}

// DefaultSegmentParams возвращает диапазоны для красной и синей команды.
func DefaultSegmentParams() SegmentParams {
	return SegmentParams{
		BlurKernel:    5,
		MorphKernel:   3,
		RedBands:      []HueRange{{Min: 0, Max: 10}, {Min: 160, Max: 180}},
		BlueBands:     []HueRange{{Min: 100, Max: 130}},
		FallbackBands: []HueRange{{Min: 0, Max: 10}},
	}
}

// Bands возвращает диапазоны тона для цвета противника.
func (p SegmentParams) Bands(color entity.EnemyColor) []HueRange {
	switch color {
	case entity.ColorRed:
		return p.RedBands
	case entity.ColorBlue:
		return p.BlueBands
	default:
		return p.FallbackBands
	}
}
