package armor

import "armor-vision/internal/domain/entity"

// Detector объединяет отбор полос, сопоставление и фильтрацию для одного кадра.
type Detector struct {
	params Params
}

// NewDetector создаёт геометрический детектор.
func NewDetector(params Params) *Detector {
	return &Detector{params: params}
}

// Params возвращает текущие пороги.
func (d *Detector) Params() Params {
	return d.params
}

// Detect превращает измерения регионов кадра в отфильтрованные пластины.
func (d *Detector) Detect(blobs []entity.Blob, frameWidth, frameHeight int) ([]entity.LightBar, []entity.ArmorCandidate) {
	p := d.params.ForFrame(frameWidth, frameHeight)

	bars := NewLightBarFilter(p.LightBar).Select(blobs)
	armors := NewPairer(p.Pair).Pair(bars)
	return bars, NewFilter(p.Filter).Apply(armors)
}
