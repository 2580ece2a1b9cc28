package app

import (
	"context"
	"fmt"
	"strings"

	"armor-vision/internal/domain/entity"
	"armor-vision/internal/domain/port"
)

// TextDescriber формирует текстовый отчёт по пластинам кадра.
type TextDescriber struct{}

func NewTextDescriber() *TextDescriber {
	return &TextDescriber{}
}

// Describe перечисляет пластины в порядке обнаружения.
func (d *TextDescriber) Describe(ctx context.Context, result entity.FrameResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if result.Err != nil {
		return "", result.Err
	}
	if !result.HasArmors() {
		return "Бронепластины не обнаружены.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Найдено пластин: %d", len(result.Armors))
	for i, a := range result.Armors {
		size := "малая"
		if a.Large {
			size = "большая"
		}
		fmt.Fprintf(&sb, "\n%d. %s, номер %s", i+1, size, a.DigitLabel())
		if a.HasDigit() {
			fmt.Fprintf(&sb, " (%.2f)", a.Confidence)
		}
		c := a.Center()
		fmt.Fprintf(&sb, ", центр (%d, %d), рамка %dx%d", c.X, c.Y, a.Box.Dx(), a.Box.Dy())
	}
	return sb.String(), nil
}

var _ port.ResultDescriber = (*TextDescriber)(nil)
