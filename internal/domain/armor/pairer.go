package armor

import (
	"image"
	"math"
	"sort"

	"armor-vision/internal/domain/entity"
)

// Pairer собирает кандидатов в пластины из пар световых полос.
type Pairer struct {
	params PairParams
}

// NewPairer создаёт сопоставитель с заданными порогами.
func NewPairer(params PairParams) *Pairer {
	return &Pairer{params: params}
}

// Pair перебирает все пары полос, упорядоченных слева направо, и возвращает
// совместимые. Одна полоса может войти в несколько пластин, если не включён
// режим DisjointPairs.
func (p *Pairer) Pair(bars []entity.LightBar) []entity.ArmorCandidate {
	if len(bars) < 2 {
		return nil
	}

	sorted := make([]entity.LightBar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Center.X < sorted[j].Center.X
	})

	used := make([]bool, len(sorted))
	var armors []entity.ArmorCandidate
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if p.params.DisjointPairs && (used[i] || used[j]) {
				continue
			}
			if ok, _ := p.Compatible(sorted[i], sorted[j]); !ok {
				continue
			}
			armors = append(armors, p.NewCandidate(sorted[i], sorted[j]))
			used[i], used[j] = true, true
		}
	}
	return armors
}

// Compatible проверяет четыре правила совместимости пары и возвращает
// первое нарушенное. Границы отношения расстояния включительные.
func (p *Pairer) Compatible(left, right entity.LightBar) (bool, Rejection) {
	lh, rh := left.Height, right.Height
	if lh <= 0 || rh <= 0 {
		return false, RejectHeightRatio
	}
	if math.Max(lh, rh)/math.Min(lh, rh) > p.params.HeightRatioMax {
		return false, RejectHeightRatio
	}

	if math.Abs(left.FoldedAngle()-right.FoldedAngle()) > p.params.AngleDiffMax {
		return false, RejectAngleDiff
	}

	avgHeight := (lh + rh) / 2
	ratio := DistanceRatio(left, right)
	if ratio < p.params.DistanceRatioMin || ratio > p.params.DistanceRatioMax {
		return false, RejectDistance
	}

	if math.Abs(right.Center.Y-left.Center.Y) > avgHeight {
		return false, RejectVerticalDiff
	}
	return true, Accepted
}

// NewCandidate строит пластину по уже проверенной паре.
func (p *Pairer) NewCandidate(left, right entity.LightBar) entity.ArmorCandidate {
	ratio := DistanceRatio(left, right)
	return entity.ArmorCandidate{
		Left:          left,
		Right:         right,
		Box:           p.BoundingBox(left, right),
		Large:         ratio > p.params.LargeRatio,
		DistanceRatio: ratio,
		Digit:         entity.NoDigit,
	}
}

// BoundingBox объединяет габариты обеих полос, расширяет на MarginFraction
// и обрезает по [0, ClipWidth]×[0, ClipHeight].
func (p *Pairer) BoundingBox(left, right entity.LightBar) image.Rectangle {
	lx1, ly1, lx2, ly2 := left.Extent()
	rx1, ry1, rx2, ry2 := right.Extent()
	x1, y1 := math.Min(lx1, rx1), math.Min(ly1, ry1)
	x2, y2 := math.Max(lx2, rx2), math.Max(ly2, ry2)

	dx := (x2 - x1) * p.params.MarginFraction / 2
	dy := (y2 - y1) * p.params.MarginFraction / 2
	x1, x2 = x1-dx, x2+dx
	y1, y2 = y1-dy, y2+dy

	maxX, maxY := float64(p.params.ClipWidth), float64(p.params.ClipHeight)
	return image.Rect(
		int(clamp(math.Floor(x1), 0, maxX)),
		int(clamp(math.Floor(y1), 0, maxY)),
		int(clamp(math.Ceil(x2), 0, maxX)),
		int(clamp(math.Ceil(y2), 0, maxY)),
	)
}

// DistanceRatio расстояние между центрами по X, делённое на среднюю высоту.
func DistanceRatio(left, right entity.LightBar) float64 {
	avgHeight := (left.Height + right.Height) / 2
	if avgHeight <= 0 {
		return math.Inf(1)
	}
	return math.Abs(right.Center.X-left.Center.X) / avgHeight
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
