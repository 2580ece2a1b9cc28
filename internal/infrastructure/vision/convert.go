//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// imageToMat превращает картинку в BGR gocv.Mat.
func imageToMat(img image.Image) (gocv.Mat, error) {
	if img == nil || img.Bounds().Empty() {
		return gocv.NewMat(), errors.New("empty image")
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), err
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), errors.New("empty image")
	}
	return mat, nil
}

// safeRegion ограничивает прямоугольник размерами матрицы.
func safeRegion(mat gocv.Mat, r image.Rectangle) image.Rectangle {
	return r.Intersect(image.Rect(0, 0, mat.Cols(), mat.Rows()))
}
