package entity

import (
	"image"
	"math"
)

// Point2f точка с вещественными координатами
type Point2f struct {
	X float64
	Y float64
}

// OrientedRect повёрнутый прямоугольник: центр, размеры и угол поворота в градусах
type OrientedRect struct {
	Center Point2f
	Width  float64
	Height float64
	Angle  float64
}

// Area возвращает площадь прямоугольника.
func (r OrientedRect) Area() float64 {
	return r.Width * r.Height
}

// Normalized возвращает копию, у которой Height является длинной стороной.
// При перестановке сторон угол сдвигается на 90°, чтобы он по-прежнему
// описывал наклон длинной оси.
func (r OrientedRect) Normalized() OrientedRect {
	if r.Width <= r.Height {
		return r
	}
	r.Width, r.Height = r.Height, r.Width
	r.Angle -= 90
	return r
}

// AspectRatio отношение длинной стороны к короткой. Для вырожденного
// прямоугольника возвращает +Inf.
func (r OrientedRect) AspectRatio() float64 {
	n := r.Normalized()
	if n.Width <= 0 {
		return math.Inf(1)
	}
	return n.Height / n.Width
}

// Extent возвращает границы center ± half-size без учёта поворота.
func (r OrientedRect) Extent() (x1, y1, x2, y2 float64) {
	return r.Center.X - r.Width/2, r.Center.Y - r.Height/2,
		r.Center.X + r.Width/2, r.Center.Y + r.Height/2
}

// FoldAngle сворачивает произвольный угол в диапазон [0°, 90°]:
// берётся модуль по 180°, значения выше 90° отражаются как 180° − a.
func FoldAngle(angle float64) float64 {
	a := math.Mod(math.Abs(angle), 180)
	if a > 90 {
		a = 180 - a
	}
	return a
}

// Blob измерение одного связного яркого региона маски.
type Blob struct {
	Area float64      // площадь контура в пикселях
	Rect OrientedRect // минимальный описанный прямоугольник
}

// FillRatio отношение площади контура к площади описанного прямоугольника.
func (b Blob) FillRatio() float64 {
	rectArea := b.Rect.Area()
	if rectArea <= 0 {
		return 0
	}
	return b.Area / rectArea
}

// RectArea площадь осевого прямоугольника.
func RectArea(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}
