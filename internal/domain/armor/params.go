// Package armor содержит геометрическую часть конвейера: отбор световых
// полос, их попарное сопоставление и фильтрацию пластин.
package armor

// LightBarParams пороги отбора световых полос.
type LightBarParams struct {
	AreaMin      float64 `yaml:"area_min"`       // минимальная площадь контура
	AreaMax      float64 `yaml:"area_max"`       // максимальная площадь контура
	AspectMin    float64 `yaml:"aspect_min"`     // минимальное отношение длинной стороны к короткой
	AspectMax    float64 `yaml:"aspect_max"`     // максимальное отношение сторон
	AngleMin     float64 `yaml:"angle_min"`      // минимальный свёрнутый угол
	AngleMax     float64 `yaml:"angle_max"`      // максимальный свёрнутый угол
	FillRatioMin float64 `yaml:"fill_ratio_min"` // минимальная заполненность прямоугольника
}

// PairParams пороги сопоставления полос и построения пластины.
type PairParams struct {
	HeightRatioMax   float64 `yaml:"height_ratio_max"`
	AngleDiffMax     float64 `yaml:"angle_diff_max"`
	DistanceRatioMin float64 `yaml:"distance_ratio_min"`
	DistanceRatioMax float64 `yaml:"distance_ratio_max"`
	LargeRatio       float64 `yaml:"large_ratio"`     // выше этого отношения пластина большая
	MarginFraction   float64 `yaml:"margin_fraction"` // расширение рамки, делится поровну на стороны
	ClipWidth        int     `yaml:"clip_width"`
	ClipHeight       int     `yaml:"clip_height"`
	DisjointPairs    bool    `yaml:"disjoint_pairs"` // каждая полоса входит не более чем в одну пластину
}

// FilterParams допустимая площадь рамки пластины в пикселях.
type FilterParams struct {
	AreaMin int `yaml:"area_min"`
	AreaMax int `yaml:"area_max"`
}

// Params полный набор порогов геометрической части.
type Params struct {
	LightBar     LightBarParams `yaml:"light_bar"`
	Pair         PairParams     `yaml:"pair"`
	Filter       FilterParams   `yaml:"filter"`
	ScaleToFrame bool           `yaml:"scale_to_frame"` // границы обрезки и площади по реальному кадру
}

// DefaultParams возвращает пороги, настроенные под кадр 1920×1080.
func DefaultParams() Params {
	return Params{
		LightBar: LightBarParams{
			AreaMin:      50,
			AreaMax:      5000,
			AspectMin:    1.5,
			AspectMax:    15,
			AngleMin:     0,
			AngleMax:     60, // полосы почти вертикальные
			FillRatioMin: 0.5,
		},
		Pair: PairParams{
			HeightRatioMax:   2.0,
			AngleDiffMax:     20,
			DistanceRatioMin: 0.5,
			DistanceRatioMax: 4.0,
			LargeRatio:       3.5, // малая ~2.5, большая ~4.5
			MarginFraction:   0.2,
			ClipWidth:        1920,
			ClipHeight:       1080,
		},
		Filter: FilterParams{
			AreaMin: 100,
			AreaMax: 10000,
		},
	}
}

// ReferenceWidth и ReferenceHeight разрешение, под которое подобраны пороги.
const (
	ReferenceWidth  = 1920
	ReferenceHeight = 1080
)

// ForFrame возвращает копию параметров для кадра заданного размера.
// Без ScaleToFrame параметры не меняются. С ним границы обрезки берутся из
// кадра, а пределы площади пластины масштабируются пропорционально площади.
func (p Params) ForFrame(width, height int) Params {
	if !p.ScaleToFrame || width <= 0 || height <= 0 {
		return p
	}
	scale := float64(width*height) / float64(ReferenceWidth*ReferenceHeight)
	p.Pair.ClipWidth = width
	p.Pair.ClipHeight = height
	p.Filter.AreaMin = int(float64(p.Filter.AreaMin) * scale)
	p.Filter.AreaMax = int(float64(p.Filter.AreaMax) * scale)
	return p
}
