package armor

import "armor-vision/internal/domain/entity"

// Filter отбрасывает пластины со слишком маленькой или большой рамкой.
type Filter struct {
	params FilterParams
}

// NewFilter создаёт фильтр по площади.
func NewFilter(params FilterParams) *Filter {
	return &Filter{params: params}
}

// Keep сообщает, проходит ли пластина фильтр.
func (f *Filter) Keep(a entity.ArmorCandidate) bool {
	area := entity.RectArea(a.Box)
	return area >= f.params.AreaMin && area <= f.params.AreaMax
}

// Apply возвращает подходящие пластины, сохраняя порядок.
func (f *Filter) Apply(armors []entity.ArmorCandidate) []entity.ArmorCandidate {
	filtered := make([]entity.ArmorCandidate, 0, len(armors))
	for _, a := range armors {
		if f.Keep(a) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
