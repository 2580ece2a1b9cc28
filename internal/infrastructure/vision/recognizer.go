//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"

	"gocv.io/x/gocv"

	"armor-vision/internal/domain/digit"
	"armor-vision/internal/domain/entity"
	"armor-vision/internal/domain/port"
)

// GoCVRecognizer нормализует область пластины средствами OpenCV и
// сопоставляет её с шаблонами цифр.
type GoCVRecognizer struct {
	matcher *digit.Matcher
}

// NewGoCVRecognizer создаёт распознаватель над готовым набором шаблонов.
func NewGoCVRecognizer(matcher *digit.Matcher) (*GoCVRecognizer, error) {
	return &GoCVRecognizer{matcher: matcher}, nil
}

// Recognize распознаёт цифру на вырезанной области.
func (r *GoCVRecognizer) Recognize(ctx context.Context, region image.Image) entity.Recognition {
	_ = ctx
	if region == nil {
		return entity.NoRecognition()
	}
	b := region.Bounds()
	if r.matcher.Params().TooSmall(b.Dx(), b.Dy()) {
		return entity.NoRecognition()
	}

	mat, err := imageToMat(region)
	if err != nil {
		return entity.NoRecognition()
	}
	defer mat.Close()

	return r.RecognizeMat(mat)
}

// RecognizeMat распознаёт цифру на BGR или одноканальной матрице.
func (r *GoCVRecognizer) RecognizeMat(roi gocv.Mat) entity.Recognition {
	params := r.matcher.Params()
	if roi.Empty() || params.TooSmall(roi.Cols(), roi.Rows()) {
		return entity.NoRecognition()
	}

	bm := r.Normalize(roi)
	return r.matcher.Match(bm)
}

// RecognizeRegion распознаёт цифру в прямоугольнике кадра, обрезанном по его границам.
func (r *GoCVRecognizer) RecognizeRegion(frame gocv.Mat, box image.Rectangle) entity.Recognition {
	roi := safeRegion(frame, box)
	if roi.Empty() {
		return entity.NoRecognition()
	}
	region := frame.Region(roi)
	defer region.Close()

	return r.RecognizeMat(region)
}

// Normalize: оттенки серого, порог, открытие, масштаб до размера шаблона.
func (r *GoCVRecognizer) Normalize(roi gocv.Mat) digit.Bitmap {
	params := r.matcher.Params()

	gray := gocv.NewMat()
	defer gray.Close()
	if roi.Channels() == 3 {
		gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)
	} else {
		roi.CopyTo(&gray)
	}

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, float32(params.BinaryThreshold), 255, gocv.ThresholdBinary)

	if k := params.OpenKernel; k > 0 {
		kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(k, k))
		defer kernel.Close()
		gocv.MorphologyEx(binary, &binary, gocv.MorphOpen, kernel)
	}

	size := params.TemplateSize
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(binary, &resized, image.Pt(size, size), 0, 0, gocv.InterpolationLinear)

	bm := digit.NewBitmap(size, size)
	copy(bm.Pix, resized.ToBytes())
	return bm
}

var _ port.DigitRecognizer = (*GoCVRecognizer)(nil)
