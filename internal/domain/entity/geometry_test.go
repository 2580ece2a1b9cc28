package entity

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFoldAngle_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		a := (rng.Float64() - 0.5) * 1440
		f := FoldAngle(a)
		require.GreaterOrEqual(t, f, 0.0, "angle %f", a)
		require.LessOrEqual(t, f, 90.0, "angle %f", a)
	}
}

func TestFoldAngle_Reflects(t *testing.T) {
	require.InDelta(t, 0.0, FoldAngle(0), 1e-9)
	require.InDelta(t, 30.0, FoldAngle(-30), 1e-9)
	require.InDelta(t, 90.0, FoldAngle(90), 1e-9)
	require.InDelta(t, 10.0, FoldAngle(170), 1e-9)
	require.InDelta(t, 10.0, FoldAngle(-170), 1e-9)
	require.InDelta(t, 20.0, FoldAngle(200), 1e-9)
}

func TestOrientedRect_Normalized(t *testing.T) {
	r := OrientedRect{Center: Point2f{X: 5, Y: 5}, Width: 40, Height: 8, Angle: 90}
	n := r.Normalized()
	require.Equal(t, 8.0, n.Width)
	require.Equal(t, 40.0, n.Height)
	require.InDelta(t, 0.0, FoldAngle(n.Angle), 1e-9)

	tall := OrientedRect{Width: 8, Height: 40, Angle: 12}
	require.Equal(t, tall, tall.Normalized())
	require.InDelta(t, 5.0, tall.AspectRatio(), 1e-9)
}

func TestBlob_FillRatio(t *testing.T) {
	b := Blob{Area: 96, Rect: OrientedRect{Width: 8, Height: 40}}
	require.InDelta(t, 0.3, b.FillRatio(), 1e-9)
	require.Zero(t, Blob{Area: 10}.FillRatio())
}

func TestArmorCandidate_WithRecognition(t *testing.T) {
	a := ArmorCandidate{Box: image.Rect(0, 0, 10, 20), Digit: NoDigit}
	require.Equal(t, "unknown", a.DigitLabel())

	got := a.WithRecognition(Recognition{Digit: 3, Score: 0.9, OK: true})
	require.True(t, got.HasDigit())
	require.Equal(t, "3", got.DigitLabel())
	require.Equal(t, 0.9, got.Confidence)

	miss := a.WithRecognition(Recognition{Digit: 4, Score: 0.5})
	require.False(t, miss.HasDigit())
	require.Equal(t, 0.5, miss.Confidence)
	require.Equal(t, image.Pt(5, 10), a.Center())
}

func TestParseEnemyColor(t *testing.T) {
	c, ok := ParseEnemyColor("Blue")
	require.True(t, ok)
	require.Equal(t, ColorBlue, c)

	c, ok = ParseEnemyColor("green")
	require.False(t, ok)
	require.Equal(t, ColorRed, c)
}
