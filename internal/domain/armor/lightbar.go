package armor

import "armor-vision/internal/domain/entity"

// Rejection причина, по которой регион или пара отброшены.
type Rejection string

const (
	Accepted           Rejection = ""
	RejectArea         Rejection = "area"
	RejectAspect       Rejection = "aspect"
	RejectAngle        Rejection = "angle"
	RejectFill         Rejection = "fill_ratio"
	RejectHeightRatio  Rejection = "height_ratio"
	RejectAngleDiff    Rejection = "angle_diff"
	RejectDistance     Rejection = "distance_ratio"
	RejectVerticalDiff Rejection = "vertical_offset"
)

// LightBarFilter отбирает регионы, похожие на световые полосы.
type LightBarFilter struct {
	params LightBarParams
}

// NewLightBarFilter создаёт фильтр с заданными порогами.
func NewLightBarFilter(params LightBarParams) *LightBarFilter {
	return &LightBarFilter{params: params}
}

// Check проверяет регион и возвращает причину отказа или Accepted.
// Порядок проверок: площадь, отношение сторон, угол, заполненность.
func (f *LightBarFilter) Check(b entity.Blob) Rejection {
	p := f.params
	if b.Area < p.AreaMin || b.Area > p.AreaMax {
		return RejectArea
	}

	rect := b.Rect.Normalized()
	if rect.Width <= 0 {
		return RejectAspect
	}
	aspect := rect.Height / rect.Width
	if aspect < p.AspectMin || aspect > p.AspectMax {
		return RejectAspect
	}

	angle := entity.FoldAngle(rect.Angle)
	if angle < p.AngleMin || angle > p.AngleMax {
		return RejectAngle
	}

	if b.FillRatio() < p.FillRatioMin {
		return RejectFill
	}
	return Accepted
}

// Select возвращает световые полосы в порядке исходных регионов.
func (f *LightBarFilter) Select(blobs []entity.Blob) []entity.LightBar {
	bars := make([]entity.LightBar, 0, len(blobs))
	for _, b := range blobs {
		if f.Check(b) != Accepted {
			continue
		}
		bars = append(bars, entity.NewLightBar(b.Rect))
	}
	return bars
}
