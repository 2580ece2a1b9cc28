package container

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"armor-vision/config"
	app "armor-vision/internal/application"
	"armor-vision/internal/domain/digit"
	"armor-vision/internal/domain/port"
	"armor-vision/internal/infrastructure/storage"
	"armor-vision/internal/infrastructure/vision"
)

type Container struct {
	UserService      *app.UserService
	DetectionService *app.DetectionService
	Describer        port.ResultDescriber
	Store            port.DetectionStore
}

// New собирает сервисы приложения из готовых зависимостей.
func New(userRepo port.UserRepository, detector port.ArmorDetector, recognizer port.DigitRecognizer, renderer port.Renderer, store port.DetectionStore, log *slog.Logger) *Container {
	return &Container{
		UserService:      app.NewUserService(userRepo),
		DetectionService: app.NewDetectionService(detector, recognizer, renderer, store, log),
		Describer:        app.NewTextDescriber(),
		Store:            store,
	}
}

// Build создаёт инфраструктуру по конфигурации: шаблоны цифр, детектор
// OpenCV, рендерер и журнал детекций.
func Build(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Container, error) {
	set, err := LoadTemplates(cfg.Tuning.Digit, log)
	if err != nil {
		return nil, err
	}

	detector, err := vision.NewGoCVDetector(cfg.Tuning.Segment, cfg.Tuning.Armor)
	if err != nil {
		return nil, fmt.Errorf("create detector: %w", err)
	}
	recognizer, err := vision.NewGoCVRecognizer(digit.NewMatcher(set, cfg.Tuning.Digit))
	if err != nil {
		return nil, fmt.Errorf("create recognizer: %w", err)
	}
	renderer, err := vision.NewOverlayRenderer(true)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	store, err := OpenStore(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	return New(storage.NewMemoryUserRepository(), detector, recognizer, renderer, store, log), nil
}

// LoadTemplates загружает шаблоны цифр и пишет в журнал метки, которые не удалось прочитать.
func LoadTemplates(params digit.Params, log *slog.Logger) (*digit.TemplateSet, error) {
	set, report, err := digit.LoadTemplateSet(params)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	failed := make([]int, 0, len(report.Failed))
	for label := range report.Failed {
		failed = append(failed, label)
	}
	sort.Ints(failed)
	for _, label := range failed {
		log.Warn("template not loaded", "label", label, "err", report.Failed[label])
	}

	log.Info("templates ready", "dir", report.Dir, "source", report.Source, "labels", set.Labels())
	return set, nil
}

// OpenStore подключает PostgreSQL или, без строки подключения, журнал в памяти.
func OpenStore(ctx context.Context, dsn string, log *slog.Logger) (port.DetectionStore, error) {
	if dsn == "" {
		log.Debug("detection log in memory")
		return storage.NewMemoryDetectionStore(), nil
	}
	store, err := storage.NewPostgresDetectionStore(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return store, nil
}

// Close освобождает журнал детекций.
func (c *Container) Close(ctx context.Context) {
	if c.Store != nil {
		c.Store.Close(ctx)
	}
}
