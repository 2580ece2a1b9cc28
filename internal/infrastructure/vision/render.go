//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"gocv.io/x/gocv"

	"armor-vision/internal/domain/entity"
	"armor-vision/internal/domain/port"
)

var (
	colorBar      = color.RGBA{G: 255, A: 255}
	colorLarge    = color.RGBA{R: 255, G: 255, A: 255}
	colorSmall    = color.RGBA{R: 255, G: 165, A: 255}
	colorCenter   = color.RGBA{B: 255, A: 255}
	colorDigit    = color.RGBA{G: 255, A: 255}
	colorSizeTag  = color.RGBA{G: 255, B: 255, A: 255}
	colorNoArmor  = color.RGBA{R: 255, A: 255}
	colorStats    = color.RGBA{R: 255, G: 255, A: 255}
	colorStatTime = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// OverlayRenderer рисует пластины и статистику поверх кадра.
type OverlayRenderer struct {
	ShowStats bool
}

// NewOverlayRenderer создаёт рендерер.
func NewOverlayRenderer(showStats bool) (*OverlayRenderer, error) {
	return &OverlayRenderer{ShowStats: showStats}, nil
}

// Render возвращает новую картинку с разметкой.
func (r *OverlayRenderer) Render(frame image.Image, result entity.FrameResult, enemy entity.EnemyColor) (image.Image, error) {
	mat, err := imageToMat(frame)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	r.Draw(&mat, result, enemy)
	return mat.ToImage()
}

// Draw рисует разметку прямо на матрице.
func (r *OverlayRenderer) Draw(mat *gocv.Mat, result entity.FrameResult, enemy entity.EnemyColor) {
	for _, a := range result.Armors {
		drawArmor(mat, a)
	}
	if !result.HasArmors() {
		gocv.PutText(mat, "No armor detected", image.Pt(50, 50), gocv.FontHersheySimplex, 1.0, colorNoArmor, 2)
	}
	if r.ShowStats {
		drawStats(mat, result, enemy)
	}
}

func drawArmor(mat *gocv.Mat, a entity.ArmorCandidate) {
	drawLightBar(mat, a.Left)
	drawLightBar(mat, a.Right)

	boxColor := colorSmall
	if a.Large {
		boxColor = colorLarge
	}
	gocv.Rectangle(mat, a.Box, boxColor, 2)
	gocv.Circle(mat, a.Center(), 3, colorCenter, -1)

	if a.HasDigit() {
		gocv.PutText(mat, fmt.Sprintf("Num: %d", a.Digit), image.Pt(a.Box.Min.X, a.Box.Min.Y-10),
			gocv.FontHersheySimplex, 0.6, colorDigit, 2)
	}

	tag := "S"
	if a.Large {
		tag = "L"
	}
	gocv.PutText(mat, tag, image.Pt(a.Box.Max.X-15, a.Box.Min.Y+15), gocv.FontHersheySimplex, 0.5, colorSizeTag, 2)
}

func drawLightBar(mat *gocv.Mat, bar entity.LightBar) {
	corners := rectCorners(bar.OrientedRect)
	for i := range corners {
		gocv.Line(mat, corners[i], corners[(i+1)%4], colorBar, 2)
	}
	gocv.Circle(mat, image.Pt(int(bar.Center.X), int(bar.Center.Y)), 2, colorCenter, -1)
}

// rectCorners вершины повёрнутого прямоугольника.
func rectCorners(r entity.OrientedRect) [4]image.Point {
	angle := r.Angle * math.Pi / 180
	cos, sin := math.Cos(angle), math.Sin(angle)
	hw, hh := r.Width/2, r.Height/2

	offsets := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var pts [4]image.Point
	for i, o := range offsets {
		pts[i] = image.Pt(
			int(math.Round(r.Center.X+o[0]*cos-o[1]*sin)),
			int(math.Round(r.Center.Y+o[0]*sin+o[1]*cos)),
		)
	}
	return pts
}

func drawStats(mat *gocv.Mat, result entity.FrameResult, enemy entity.EnemyColor) {
	gocv.PutText(mat, fmt.Sprintf("Frame: %d", result.Index), image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, colorStats, 2)
	if fps := result.FPS(); fps > 0 {
		gocv.PutText(mat, fmt.Sprintf("FPS: %d", int(fps)), image.Pt(10, 60), gocv.FontHersheySimplex, 0.7, colorStats, 2)
	}
	gocv.PutText(mat, "Enemy: "+string(enemy), image.Pt(10, 90), gocv.FontHersheySimplex, 0.7, colorStats, 2)
	gocv.PutText(mat, "Time: "+time.Now().Format("2006-01-02 15:04:05.000"), image.Pt(10, 120),
		gocv.FontHersheySimplex, 0.5, colorStatTime, 1)
}

var _ port.Renderer = (*OverlayRenderer)(nil)
