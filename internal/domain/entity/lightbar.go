package entity

// LightBar светящаяся полоса по краю бронепластины. Хранится в
// нормализованном виде, Height является длинной стороной.
type LightBar struct {
	OrientedRect
}

// NewLightBar создаёт световую полосу из описанного прямоугольника.
func NewLightBar(rect OrientedRect) LightBar {
	return LightBar{OrientedRect: rect.Normalized()}
}

// FoldedAngle наклон полосы, свёрнутый в [0°, 90°].
func (l LightBar) FoldedAngle() float64 {
	return FoldAngle(l.Angle)
}
