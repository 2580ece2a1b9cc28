//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"armor-vision/internal/domain/armor"
	"armor-vision/internal/domain/digit"
	"armor-vision/internal/domain/entity"
)

var red = color.RGBA{R: 255, A: 255}

// barsFrame кадр 320x240 с двумя вертикальными полосами 6x40.
func barsFrame(t *testing.T) gocv.Mat {
	t.Helper()
	frame := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	frame.SetTo(gocv.NewScalar(0, 0, 0, 0))
	gocv.Rectangle(&frame, image.Rect(97, 100, 103, 140), red, -1)
	gocv.Rectangle(&frame, image.Rect(157, 100, 163, 140), red, -1)
	return frame
}

func TestExtractBlobs_EmptyMask(t *testing.T) {
	mask := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8U)
	defer mask.Close()
	mask.SetTo(gocv.NewScalar(0, 0, 0, 0))

	require.Empty(t, ExtractBlobs(mask))
}

func TestSegmenter_OnlyEnemyColor(t *testing.T) {
	frame := barsFrame(t)
	defer frame.Close()
	s := NewSegmenter(DefaultSegmentParams())

	redMask := s.Segment(frame, entity.ColorRed)
	defer redMask.Close()
	require.Greater(t, gocv.CountNonZero(redMask), 400)

	blueMask := s.Segment(frame, entity.ColorBlue)
	defer blueMask.Close()
	require.Zero(t, gocv.CountNonZero(blueMask))
}

// singleBar кадр 320x240 с одной полосой 6x40 заданного цвета.
func singleBar(t *testing.T, c color.RGBA) gocv.Mat {
	t.Helper()
	frame := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	frame.SetTo(gocv.NewScalar(0, 0, 0, 0))
	gocv.Rectangle(&frame, image.Rect(97, 100, 103, 140), c, -1)
	return frame
}

func TestSegmenter_RedWrapAroundBand(t *testing.T) {
	// BGR (100,0,255), оттенок около 168.
	frame := singleBar(t, color.RGBA{R: 255, B: 100, A: 255})
	defer frame.Close()
	s := NewSegmenter(DefaultSegmentParams())

	redMask := s.Segment(frame, entity.ColorRed)
	defer redMask.Close()
	require.Greater(t, gocv.CountNonZero(redMask), 200)

	blueMask := s.Segment(frame, entity.ColorBlue)
	defer blueMask.Close()
	require.Zero(t, gocv.CountNonZero(blueMask))
}

func TestSegmenter_BlueBar(t *testing.T) {
	frame := singleBar(t, color.RGBA{B: 255, A: 255})
	defer frame.Close()
	s := NewSegmenter(DefaultSegmentParams())

	blueMask := s.Segment(frame, entity.ColorBlue)
	defer blueMask.Close()
	require.Greater(t, gocv.CountNonZero(blueMask), 200)

	redMask := s.Segment(frame, entity.ColorRed)
	defer redMask.Close()
	require.Zero(t, gocv.CountNonZero(redMask))
}

func TestExtractBlobs_KeepsSubpixelSize(t *testing.T) {
	mask := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8U)
	defer mask.Close()
	mask.SetTo(gocv.NewScalar(0, 0, 0, 0))

	// Наклонная полоса шириной около трёх пикселей: отношение сторон
	// близко к верхней границе фильтра.
	poly := gocv.NewPointsVectorFromPoints([][]image.Point{{
		image.Pt(100, 100), image.Pt(103, 100), image.Pt(111, 140), image.Pt(108, 140),
	}})
	defer poly.Close()
	gocv.FillPoly(&mask, poly, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	blobs := ExtractBlobs(mask)
	require.Len(t, blobs, 1)

	rect := blobs[0].Rect.Normalized()
	frac := func(v float64) float64 { return math.Abs(v - math.Round(v)) }
	require.Greater(t, frac(rect.Width)+frac(rect.Height), 1e-3)
	require.Greater(t, rect.Height/rect.Width, 5.0)

	// Решение фильтра совпадает с решением по точному прямоугольнику.
	f := armor.NewLightBarFilter(armor.DefaultParams().LightBar)
	aspect := rect.Height / rect.Width
	lb := armor.DefaultParams().LightBar
	if aspect > lb.AspectMax {
		require.Equal(t, armor.RejectAspect, f.Check(blobs[0]))
	} else {
		require.NotEqual(t, armor.RejectAspect, f.Check(blobs[0]))
	}
}

func TestGoCVDetector_TwoBars(t *testing.T) {
	frame := barsFrame(t)
	defer frame.Close()

	d, err := NewGoCVDetector(DefaultSegmentParams(), armor.DefaultParams())
	require.NoError(t, err)

	bars, armors := d.DetectMat(frame, entity.ColorRed)
	require.Len(t, bars, 2)
	require.Len(t, armors, 1)
	require.False(t, armors[0].Large)
	require.Less(t, armors[0].Left.Center.X, armors[0].Right.Center.X)
	require.True(t, armors[0].Box.Overlaps(image.Rect(97, 100, 163, 140)))

	_, armors = d.DetectMat(frame, entity.ColorBlue)
	require.Empty(t, armors)
}

func TestGoCVDetector_LShapeRejected(t *testing.T) {
	frame := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(0, 0, 0, 0))
	gocv.Rectangle(&frame, image.Rect(100, 100, 106, 140), red, -1)
	gocv.Rectangle(&frame, image.Rect(100, 134, 140, 140), red, -1)

	d, err := NewGoCVDetector(DefaultSegmentParams(), armor.DefaultParams())
	require.NoError(t, err)

	_, armors := d.DetectMat(frame, entity.ColorRed)
	require.Empty(t, armors)
}

func TestGoCVDetector_Image(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 100; y < 140; y++ {
		for x := 97; x < 103; x++ {
			img.Set(x, y, red)
			img.Set(x+60, y, red)
		}
	}

	d, err := NewGoCVDetector(DefaultSegmentParams(), armor.DefaultParams())
	require.NoError(t, err)

	armors, err := d.Detect(context.Background(), img, entity.ColorRed)
	require.NoError(t, err)
	require.Len(t, armors, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Detect(ctx, img, entity.ColorRed)
	require.ErrorIs(t, err, context.Canceled)
}

func newRecognizer(t *testing.T) *GoCVRecognizer {
	t.Helper()
	params := digit.DefaultParams()
	templates, err := digit.SyntheticTemplates(params)
	require.NoError(t, err)
	r, err := NewGoCVRecognizer(digit.NewMatcher(digit.NewTemplateSet(digit.SourceSynthetic, templates), params))
	require.NoError(t, err)
	return r
}

func TestGoCVRecognizer_SmallRegion(t *testing.T) {
	r := newRecognizer(t)

	small := gocv.NewMatWithSize(8, 30, gocv.MatTypeCV8UC3)
	defer small.Close()
	rec := r.RecognizeMat(small)
	require.False(t, rec.OK)
	require.Equal(t, entity.NoDigit, rec.Digit)

	rec = r.Recognize(context.Background(), image.NewRGBA(image.Rect(0, 0, 9, 50)))
	require.False(t, rec.OK)
}

func TestGoCVRecognizer_Glyph(t *testing.T) {
	r := newRecognizer(t)
	glyph, ok := digit.Glyph(3, 32)
	require.True(t, ok)

	src, err := gocv.NewMatFromBytes(32, 32, gocv.MatTypeCV8U, glyph.Pix)
	require.NoError(t, err)
	defer src.Close()
	big := gocv.NewMat()
	defer big.Close()
	gocv.Resize(src, &big, image.Pt(64, 64), 0, 0, gocv.InterpolationNearestNeighbor)

	rec := r.RecognizeMat(big)
	require.True(t, rec.OK)
	require.Equal(t, 3, rec.Digit)

	frame := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8U)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(0, 0, 0, 0))
	roi := frame.Region(image.Rect(20, 20, 84, 84))
	big.CopyTo(&roi)
	roi.Close()

	rec = r.RecognizeRegion(frame, image.Rect(20, 20, 84, 84))
	require.Equal(t, 3, rec.Digit)

	rec = r.RecognizeRegion(frame, image.Rect(200, 200, 240, 240))
	require.False(t, rec.OK)
}

func TestOverlayRenderer_Render(t *testing.T) {
	r, err := NewOverlayRenderer(true)
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	result := entity.FrameResult{
		Index: 1,
		Armors: []entity.ArmorCandidate{{
			Left:  entity.NewLightBar(entity.OrientedRect{Center: entity.Point2f{X: 100, Y: 120}, Width: 6, Height: 40}),
			Right: entity.NewLightBar(entity.OrientedRect{Center: entity.Point2f{X: 160, Y: 120}, Width: 6, Height: 40}),
			Box:   image.Rect(90, 96, 170, 144),
			Digit: 2,
		}},
	}
	out, err := r.Render(img, result, entity.ColorRed)
	require.NoError(t, err)
	require.Equal(t, img.Bounds().Size(), out.Bounds().Size())
}

func TestRectCorners(t *testing.T) {
	pts := rectCorners(entity.OrientedRect{Center: entity.Point2f{X: 10, Y: 20}, Width: 4, Height: 10})
	require.Equal(t, [4]image.Point{{8, 15}, {12, 15}, {12, 25}, {8, 25}}, pts)

	pts = rectCorners(entity.OrientedRect{Center: entity.Point2f{X: 0, Y: 0}, Width: 4, Height: 10, Angle: 90})
	require.Equal(t, image.Pt(5, -2), pts[0])
}
