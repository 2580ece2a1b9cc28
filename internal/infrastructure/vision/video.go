//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"
	"io"

	"gocv.io/x/gocv"

	"armor-vision/internal/domain/port"
)

const keyEsc = 27

// CaptureSource кадры из видеофайла или камеры.
type CaptureSource struct {
	capture *gocv.VideoCapture
	frame   gocv.Mat
	name    string
}

// OpenSource открывает файл, если путь задан, иначе камеру с номером device.
func OpenSource(path string, device int) (*CaptureSource, error) {
	var (
		capture *gocv.VideoCapture
		err     error
		name    string
	)
	if path != "" {
		name = path
		capture, err = gocv.VideoCaptureFile(path)
	} else {
		name = fmt.Sprintf("camera:%d", device)
		capture, err = gocv.VideoCaptureDevice(device)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, name, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, name)
	}
	return &CaptureSource{capture: capture, frame: gocv.NewMat(), name: name}, nil
}

// Name описание источника для журнала.
func (s *CaptureSource) Name() string {
	return s.name
}

// Read читает следующий кадр; io.EOF в конце потока.
func (s *CaptureSource) Read(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ok := s.capture.Read(&s.frame); !ok || s.frame.Empty() {
		return nil, io.EOF
	}
	return s.frame.ToImage()
}

// FrameCount число кадров файла или -1 для камеры.
func (s *CaptureSource) FrameCount() int {
	n := int(s.capture.Get(gocv.VideoCaptureFrameCount))
	if n <= 0 {
		return -1
	}
	return n
}

// FPS частота кадров источника.
func (s *CaptureSource) FPS() float64 {
	return s.capture.Get(gocv.VideoCaptureFPS)
}

// Size размер кадра источника.
func (s *CaptureSource) Size() (width, height int) {
	return int(s.capture.Get(gocv.VideoCaptureFrameWidth)), int(s.capture.Get(gocv.VideoCaptureFrameHeight))
}

// Close освобождает устройство.
func (s *CaptureSource) Close() error {
	s.frame.Close()
	return s.capture.Close()
}

// VideoFileSink пишет кадры в файл MJPG.
type VideoFileSink struct {
	writer *gocv.VideoWriter
}

// OpenSink создаёт файл для записи кадров заданного размера.
func OpenSink(path string, fps float64, width, height int) (*VideoFileSink, error) {
	if fps <= 0 {
		fps = 30
	}
	writer, err := gocv.VideoWriterFile(path, "MJPG", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("open writer %s: %w", path, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("open writer %s: not opened", path)
	}
	return &VideoFileSink{writer: writer}, nil
}

// Write записывает кадр.
func (s *VideoFileSink) Write(frame image.Image) error {
	mat, err := imageToMat(frame)
	if err != nil {
		return err
	}
	defer mat.Close()
	return s.writer.Write(mat)
}

// Close завершает файл.
func (s *VideoFileSink) Close() error {
	return s.writer.Close()
}

// WindowDisplay окно OpenCV; Esc останавливает обработку.
type WindowDisplay struct {
	window *gocv.Window
}

// NewWindowDisplay открывает окно с заголовком title.
func NewWindowDisplay(title string) (*WindowDisplay, error) {
	return &WindowDisplay{window: gocv.NewWindow(title)}, nil
}

// Show показывает кадр и возвращает true, если нажат Esc.
func (d *WindowDisplay) Show(frame image.Image) bool {
	mat, err := imageToMat(frame)
	if err != nil {
		return false
	}
	defer mat.Close()

	d.window.IMShow(mat)
	return d.window.WaitKey(1) == keyEsc
}

// Close закрывает окно.
func (d *WindowDisplay) Close() error {
	return d.window.Close()
}

var (
	_ port.FrameSource = (*CaptureSource)(nil)
	_ port.FrameSink   = (*VideoFileSink)(nil)
	_ port.Display     = (*WindowDisplay)(nil)
)
