//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"

	"gocv.io/x/gocv"

	"armor-vision/internal/domain/armor"
	"armor-vision/internal/domain/entity"
	"armor-vision/internal/domain/port"
)

// GoCVDetector ищет бронепластины: сегментация цвета, контуры,
// геометрическое сопоставление полос.
type GoCVDetector struct {
	segmenter *Segmenter
	geometry  *armor.Detector
}

// NewGoCVDetector создаёт детектор с заданными порогами.
func NewGoCVDetector(segment SegmentParams, params armor.Params) (*GoCVDetector, error) {
	return &GoCVDetector{
		segmenter: NewSegmenter(segment),
		geometry:  armor.NewDetector(params),
	}, nil
}

// Detect запускает конвейер на кадре и возвращает отфильтрованные пластины.
func (d *GoCVDetector) Detect(ctx context.Context, frame image.Image, color entity.EnemyColor) ([]entity.ArmorCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mat, err := imageToMat(frame)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	_, armors := d.DetectMat(mat, color)
	return armors, nil
}

// DetectMat возвращает найденные световые полосы и пластины для BGR-матрицы.
func (d *GoCVDetector) DetectMat(frame gocv.Mat, color entity.EnemyColor) ([]entity.LightBar, []entity.ArmorCandidate) {
	mask := d.segmenter.Segment(frame, color)
	defer mask.Close()

	return d.geometry.Detect(ExtractBlobs(mask), frame.Cols(), frame.Rows())
}

var _ port.ArmorDetector = (*GoCVDetector)(nil)
