//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"image"

	"armor-vision/internal/domain/armor"
	"armor-vision/internal/domain/digit"
	"armor-vision/internal/domain/entity"
)

type GoCVDetector struct{}

// NewGoCVDetector возвращает ошибку, если сборка без тега gocv.
func NewGoCVDetector(segment SegmentParams, params armor.Params) (*GoCVDetector, error) {
	_ = segment
	_ = params
	return nil, ErrGoCVDisabled
}

func (d *GoCVDetector) Detect(ctx context.Context, frame image.Image, color entity.EnemyColor) ([]entity.ArmorCandidate, error) {
	return nil, ErrGoCVDisabled
}

type GoCVRecognizer struct{}

// NewGoCVRecognizer возвращает ошибку, если сборка без тега gocv.
func NewGoCVRecognizer(matcher *digit.Matcher) (*GoCVRecognizer, error) {
	_ = matcher
	return nil, ErrGoCVDisabled
}

func (r *GoCVRecognizer) Recognize(ctx context.Context, region image.Image) entity.Recognition {
	return entity.NoRecognition()
}

type OverlayRenderer struct {
	ShowStats bool
}

// NewOverlayRenderer возвращает ошибку, если сборка без тега gocv.
func NewOverlayRenderer(showStats bool) (*OverlayRenderer, error) {
	_ = showStats
	return nil, ErrGoCVDisabled
}

func (r *OverlayRenderer) Render(frame image.Image, result entity.FrameResult, enemy entity.EnemyColor) (image.Image, error) {
	return nil, ErrGoCVDisabled
}

type CaptureSource struct{}

// OpenSource возвращает ошибку, если сборка без тега gocv.
func OpenSource(path string, device int) (*CaptureSource, error) {
	_ = path
	_ = device
	return nil, ErrGoCVDisabled
}

func (s *CaptureSource) Name() string                                  { return "" }
func (s *CaptureSource) Read(ctx context.Context) (image.Image, error) { return nil, ErrGoCVDisabled }
func (s *CaptureSource) FrameCount() int                               { return -1 }
func (s *CaptureSource) FPS() float64                                  { return 0 }
func (s *CaptureSource) Size() (width, height int)                     { return 0, 0 }
func (s *CaptureSource) Close() error                                  { return nil }

type VideoFileSink struct{}

// OpenSink возвращает ошибку, если сборка без тега gocv.
func OpenSink(path string, fps float64, width, height int) (*VideoFileSink, error) {
	return nil, ErrGoCVDisabled
}

func (s *VideoFileSink) Write(frame image.Image) error { return ErrGoCVDisabled }
func (s *VideoFileSink) Close() error                  { return nil }

type WindowDisplay struct{}

// NewWindowDisplay возвращает ошибку, если сборка без тега gocv.
func NewWindowDisplay(title string) (*WindowDisplay, error) {
	_ = title
	return nil, ErrGoCVDisabled
}

func (d *WindowDisplay) Show(frame image.Image) bool { return true }
func (d *WindowDisplay) Close() error                { return nil }
