//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"

	"armor-vision/internal/domain/entity"
)

// Segmenter выделяет пиксели цвета противника в бинарную маску.
type Segmenter struct {
	params SegmentParams
}

// NewSegmenter создаёт сегментатор.
func NewSegmenter(params SegmentParams) *Segmenter {
	return &Segmenter{params: params}
}

// Segment возвращает маску CV_8U того же размера, что и кадр.
// Вызывающий закрывает маску.
func (s *Segmenter) Segment(frame gocv.Mat, color entity.EnemyColor) gocv.Mat {
	src := frame
	if k := s.params.BlurKernel; k > 0 {
		blurred := gocv.NewMat()
		defer blurred.Close()
		gocv.GaussianBlur(frame, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)
		src = blurred
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMatWithSize(frame.Rows(), frame.Cols(), gocv.MatTypeCV8U)
	mask.SetTo(gocv.NewScalar(0, 0, 0, 0))

	band := gocv.NewMat()
	defer band.Close()
	for _, r := range s.params.Bands(color) {
		gocv.InRangeWithScalar(hsv,
			gocv.NewScalar(r.Min, SaturationFloor, ValueFloor, 0),
			gocv.NewScalar(r.Max, 255, 255, 0),
			&band)
		gocv.BitwiseOr(mask, band, &mask)
	}

	k := s.params.MorphKernel
	if k <= 0 {
		return mask
	}
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(k, k))
	defer kernel.Close()

	// Открытие убирает шум, дилатация склеивает разорванные куски полосы.
	gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)
	gocv.Dilate(mask, &mask, kernel)

	return mask
}
