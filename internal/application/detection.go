package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/draw"

	"armor-vision/internal/domain/entity"
	"armor-vision/internal/domain/port"
)

// ErrFramePanic паника при обработке кадра, перехваченная сервисом
var ErrFramePanic = errors.New("frame processing panicked")

// DetectionService связывает детектор пластин, распознавание цифр,
// отрисовку и журнал детекций.
type DetectionService struct {
	detector   port.ArmorDetector
	recognizer port.DigitRecognizer
	renderer   port.Renderer
	store      port.DetectionStore
	log        *slog.Logger
}

// NewDetectionService создаёт сервис. recognizer, renderer и store могут быть nil.
func NewDetectionService(detector port.ArmorDetector, recognizer port.DigitRecognizer, renderer port.Renderer, store port.DetectionStore, log *slog.Logger) *DetectionService {
	if log == nil {
		log = slog.Default()
	}
	return &DetectionService{
		detector:   detector,
		recognizer: recognizer,
		renderer:   renderer,
		store:      store,
		log:        log,
	}
}

// ProcessFrame находит пластины и распознаёт на них цифры.
// Ошибка или паника не прерывает работу: кадр возвращается без пластин и с Err.
func (s *DetectionService) ProcessFrame(ctx context.Context, index int, frame image.Image, color entity.EnemyColor) (result entity.FrameResult) {
	start := time.Now()
	result.Index = index

	defer func() {
		if r := recover(); r != nil {
			result.Armors = nil
			result.Err = fmt.Errorf("%w: %v", ErrFramePanic, r)
		}
		result.Elapsed = time.Since(start)
		if result.Err != nil {
			s.log.Warn("frame failed", "frame", index, "err", result.Err)
		}
	}()

	if s.detector == nil {
		result.Err = errors.New("detector is not configured")
		return result
	}
	if frame == nil {
		result.Err = errors.New("empty frame")
		return result
	}
	b := frame.Bounds()
	result.Width, result.Height = b.Dx(), b.Dy()

	armors, err := s.detector.Detect(ctx, frame, color)
	if err != nil {
		result.Err = fmt.Errorf("detect frame %d: %w", index, err)
		return result
	}
	for i := range armors {
		armors[i] = armors[i].WithRecognition(s.recognize(ctx, frame, armors[i].Box))
	}
	result.Armors = armors
	return result
}

func (s *DetectionService) recognize(ctx context.Context, frame image.Image, box image.Rectangle) entity.Recognition {
	if s.recognizer == nil {
		return entity.NoRecognition()
	}
	region := Crop(frame, box)
	if region == nil {
		return entity.NoRecognition()
	}
	return s.recognizer.Recognize(ctx, region)
}

// Crop копирует часть кадра внутри box, обрезанную по границам кадра.
// box задан от левого верхнего угла кадра, как его отдаёт детектор.
// Возвращает nil для пустого пересечения.
func Crop(frame image.Image, box image.Rectangle) image.Image {
	r := box.Add(frame.Bounds().Min).Intersect(frame.Bounds())
	if r.Empty() {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(dst, image.Point{}, frame, r, draw.Src, nil)
	return dst
}

// DetectionOutput результат проверки одиночного изображения.
type DetectionOutput struct {
	Result    entity.FrameResult
	Annotated image.Image // nil, если рендерер не настроен
}

// DetectImage обрабатывает одиночное изображение и рисует разметку.
func (s *DetectionService) DetectImage(ctx context.Context, frame image.Image, color entity.EnemyColor) (*DetectionOutput, error) {
	result := s.ProcessFrame(ctx, 1, frame, color)
	if result.Err != nil {
		return nil, result.Err
	}

	out := &DetectionOutput{Result: result}
	if s.renderer != nil {
		annotated, err := s.renderer.Render(frame, result, color)
		if err != nil {
			s.log.Warn("render failed", "err", err)
		} else {
			out.Annotated = annotated
		}
	}
	return out, nil
}

// RunOptions параметры обработки потока кадров.
type RunOptions struct {
	Source     port.FrameSource
	SourceName string
	Color      entity.EnemyColor
	Sink       port.FrameSink // nil, если запись не нужна
	Display    port.Display   // nil, если окно не нужно
	Progress   io.Writer      // nil отключает индикатор
	OnFrame    func(entity.FrameResult)
}

// RunStats итоги обработки потока.
type RunStats struct {
	RunID      uuid.UUID
	Frames     int
	Detections int
	Failed     int
	Elapsed    time.Duration
	Stopped    bool // остановлено пользователем или контекстом
}

// AverageFPS средняя частота по полному времени обработки.
func (s RunStats) AverageFPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// Run читает кадры до конца потока, нажатия Esc или отмены контекста.
func (s *DetectionService) Run(ctx context.Context, opts RunOptions) (RunStats, error) {
	var stats RunStats
	if opts.Source == nil {
		return stats, errors.New("frame source is not configured")
	}

	store := s.store
	if store != nil {
		id, err := store.BeginRun(ctx, opts.SourceName, opts.Color)
		if err != nil {
			s.log.Warn("detection log disabled", "err", err)
			store = nil
		} else {
			stats.RunID = id
		}
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(opts.Source.FrameCount(),
			progressbar.OptionSetDescription("Detecting armor"),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionShowCount(),
		)
	}

	sink := opts.Sink
	start := time.Now()
	s.log.Info("processing started", "source", opts.SourceName, "enemy", opts.Color, "run", stats.RunID)

	for {
		if ctx.Err() != nil {
			stats.Stopped = true
			break
		}

		frame, err := opts.Source.Read(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				stats.Stopped = true
				break
			}
			return stats, fmt.Errorf("read frame %d: %w", stats.Frames+1, err)
		}

		stats.Frames++
		result := s.ProcessFrame(ctx, stats.Frames, frame, opts.Color)
		stats.Detections += len(result.Armors)
		if result.Err != nil {
			stats.Failed++
		}
		if opts.OnFrame != nil {
			opts.OnFrame(result)
		}

		if store != nil && result.HasArmors() {
			if err := store.RecordFrame(ctx, stats.RunID, result); err != nil {
				s.log.Warn("record frame failed", "frame", result.Index, "err", err)
			}
		}

		if bar != nil {
			_ = bar.Add(1)
		}

		if sink == nil && opts.Display == nil {
			continue
		}

		annotated := frame
		if s.renderer != nil {
			if out, err := s.renderer.Render(frame, result, opts.Color); err != nil {
				s.log.Warn("render failed", "frame", result.Index, "err", err)
			} else {
				annotated = out
			}
		}

		if sink != nil {
			if err := sink.Write(annotated); err != nil {
				s.log.Warn("output disabled", "frame", result.Index, "err", err)
				sink = nil
			}
		}
		if opts.Display != nil && opts.Display.Show(annotated) {
			stats.Stopped = true
			break
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	stats.Elapsed = time.Since(start)
	s.log.Info("processing finished",
		"frames", stats.Frames,
		"detections", stats.Detections,
		"failed", stats.Failed,
		"elapsed", stats.Elapsed.Round(time.Millisecond),
		"avg_fps", fmt.Sprintf("%.1f", stats.AverageFPS()),
		"stopped", stats.Stopped,
	)
	return stats, nil
}
