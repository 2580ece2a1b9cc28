package entity

import (
	"image"
	"strconv"
)

// NoDigit означает, что цифра на пластине не распознана
const NoDigit = -1

// ArmorSize класс размера бронепластины
type ArmorSize string

const (
	ArmorSmall ArmorSize = "small"
	ArmorLarge ArmorSize = "large"
)

// ArmorCandidate пара световых полос, предположительно ограничивающая одну пластину
type ArmorCandidate struct {
	Left          LightBar        // левая полоса (Left.Center.X < Right.Center.X)
	Right         LightBar        // правая полоса
	Box           image.Rectangle // осевой прямоугольник пластины с отступом
	Large         bool            // большая пластина
	DistanceRatio float64         // расстояние между центрами / средняя высота
	Digit         int             // распознанная цифра или NoDigit
	Confidence    float64         // оценка сопоставления с шаблоном
}

// Size возвращает класс размера пластины.
func (a ArmorCandidate) Size() ArmorSize {
	if a.Large {
		return ArmorLarge
	}
	return ArmorSmall
}

// HasDigit сообщает, распознана ли цифра.
func (a ArmorCandidate) HasDigit() bool {
	return a.Digit != NoDigit
}

// DigitLabel возвращает цифру строкой или "unknown".
func (a ArmorCandidate) DigitLabel() string {
	if !a.HasDigit() {
		return "unknown"
	}
	return strconv.Itoa(a.Digit)
}

// WithRecognition прикрепляет результат распознавания цифры.
func (a ArmorCandidate) WithRecognition(r Recognition) ArmorCandidate {
	a.Confidence = r.Score
	if r.OK {
		a.Digit = r.Digit
	} else {
		a.Digit = NoDigit
	}
	return a
}

// Center возвращает центр прямоугольника пластины.
func (a ArmorCandidate) Center() image.Point {
	return image.Pt(a.Box.Min.X+a.Box.Dx()/2, a.Box.Min.Y+a.Box.Dy()/2)
}
