package digit

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"armor-vision/internal/domain/entity"
)

// Score нормированная взаимная корреляция с вычитанием среднего.
// Для изображений одного размера совпадает с TM_CCOEFF_NORMED.
// Однотонные изображения и несовпадающие размеры дают 0.
func Score(a, b Bitmap) float64 {
	if a.Width != b.Width || a.Height != b.Height || len(a.Pix) == 0 {
		return 0
	}
	c := stat.Correlation(a.Floats(), b.Floats(), nil)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	return c
}

// Matcher сопоставляет нормализованную область со всеми шаблонами набора.
type Matcher struct {
	set    *TemplateSet
	params Params
}

// NewMatcher создаёт сопоставитель.
func NewMatcher(set *TemplateSet, params Params) *Matcher {
	return &Matcher{set: set, params: params}
}

// TemplateSet возвращает набор шаблонов.
func (m *Matcher) TemplateSet() *TemplateSet {
	return m.set
}

// Params возвращает настройки распознавания.
func (m *Matcher) Params() Params {
	return m.params
}

// Match выбирает шаблон с наибольшей оценкой. Результат принимается, если
// оценка строго выше ConfidenceFloor.
func (m *Matcher) Match(region Bitmap) entity.Recognition {
	best := entity.NoRecognition()
	for _, t := range m.set.templates {
		score := Score(region, t.Bitmap)
		if score > best.Score {
			best.Score = score
			best.Digit = t.Label
		}
	}
	best.OK = best.Digit != entity.NoDigit && best.Score > m.params.ConfidenceFloor
	return best
}
