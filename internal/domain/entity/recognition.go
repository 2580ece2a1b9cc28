package entity

// Recognition результат распознавания цифры в области пластины
type Recognition struct {
	Digit int     // лучшая метка или NoDigit
	Score float64 // лучшая оценка сопоставления
	OK    bool    // оценка прошла порог уверенности
}

// NoRecognition пустой результат для слишком маленьких областей.
func NoRecognition() Recognition {
	return Recognition{Digit: NoDigit}
}
