//go:build gocv
// +build gocv

package vision

import (
	"gocv.io/x/gocv"

	"armor-vision/internal/domain/entity"
)

// ExtractBlobs измеряет внешние контуры маски: площадь и минимальный
// описанный прямоугольник без округления до пикселя. Порядок
// соответствует порядку контуров.
func ExtractBlobs(mask gocv.Mat) []entity.Blob {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	blobs := make([]entity.Blob, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		rect := gocv.MinAreaRect2f(c)
		blobs = append(blobs, entity.Blob{
			Area: gocv.ContourArea(c),
			Rect: entity.OrientedRect{
				Center: entity.Point2f{X: float64(rect.Center.X), Y: float64(rect.Center.Y)},
				Width:  float64(rect.Width),
				Height: float64(rect.Height),
				Angle:  rect.Angle,
			},
		})
	}
	return blobs
}
