package entity

import "time"

// FrameResult итог обработки одного кадра.
type FrameResult struct {
	Index   int              // номер кадра, начиная с 1
	Width   int              // ширина кадра
	Height  int              // высота кадра
	Armors  []ArmorCandidate // пластины после фильтрации
	Err     error            // ошибка обработки кадра, если была
	Elapsed time.Duration    // время обработки
}

// HasArmors сообщает, найдена ли хотя бы одна пластина.
func (r FrameResult) HasArmors() bool {
	return len(r.Armors) > 0
}

// FPS мгновенная частота кадров по времени обработки.
func (r FrameResult) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(time.Second) / float64(r.Elapsed)
}
