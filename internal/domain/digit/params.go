// Package digit распознаёт номер на бронепластине сопоставлением с шаблонами.
package digit

// Params настройки распознавания цифр.
type Params struct {
	Labels          []int   `yaml:"labels"`           // закрытый набор цифр соревнования
	TemplateSize    int     `yaml:"template_size"`    // сторона нормализованного изображения
	BinaryThreshold uint8   `yaml:"binary_threshold"` // порог бинаризации
	OpenKernel      int     `yaml:"open_kernel"`      // размер ядра морфологического открытия
	MinRegionSide   int     `yaml:"min_region_side"`  // меньшие области не распознаются
	ConfidenceFloor float64 `yaml:"confidence_floor"` // оценка должна быть строго выше
	TemplateDir     string  `yaml:"template_dir"`
}

// DefaultParams возвращает настройки по умолчанию.
func DefaultParams() Params {
	return Params{
		Labels:          []int{1, 2, 3, 4, 7},
		TemplateSize:    32,
		BinaryThreshold: 100,
		OpenKernel:      2,
		MinRegionSide:   10,
		ConfidenceFloor: 0.7,
		TemplateDir:     "data/templates",
	}
}

// TooSmall сообщает, что область меньше минимального размера хотя бы по одной стороне.
func (p Params) TooSmall(width, height int) bool {
	return width < p.MinRegionSide || height < p.MinRegionSide
}
