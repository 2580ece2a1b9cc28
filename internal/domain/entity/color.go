package entity

import "strings"

// EnemyColor цвет световых полос противника
type EnemyColor string

const (
	ColorRed  EnemyColor = "red"
	ColorBlue EnemyColor = "blue"
)

// ParseEnemyColor разбирает цвет. Второе значение false, если строка не
// распознана и был подставлен красный.
func ParseEnemyColor(s string) (EnemyColor, bool) {
	switch EnemyColor(strings.ToLower(strings.TrimSpace(s))) {
	case ColorRed:
		return ColorRed, true
	case ColorBlue:
		return ColorBlue, true
	default:
		return ColorRed, false
	}
}
