package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"armor-vision/internal/domain/armor"
	"armor-vision/internal/domain/digit"
	"armor-vision/internal/domain/entity"
	"armor-vision/internal/infrastructure/vision"
)

// Tuning пороги конвейера, которые можно переопределить YAML-файлом.
type Tuning struct {
	Armor   armor.Params         `yaml:"armor"`
	Segment vision.SegmentParams `yaml:"segment"`
	Digit   digit.Params         `yaml:"digit"`
}

// DefaultTuning возвращает пороги по умолчанию.
func DefaultTuning() Tuning {
	return Tuning{
		Armor:   armor.DefaultParams(),
		Segment: vision.DefaultSegmentParams(),
		Digit:   digit.DefaultParams(),
	}
}

type Config struct {
	TelegramToken string
	DatabaseURL   string
	LogLevel      string

	EnemyColor string // red или blue
	Input      string // путь к видеофайлу; важнее камеры
	Camera     int
	Output     string
	Show       bool
	Save       bool
	ParamsFile string

	Tuning Tuning
}

// DefaultOutput путь видео с разметкой по умолчанию.
const DefaultOutput = "output.mp4"

// Default возвращает конфигурацию без учёта окружения.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		EnemyColor: string(entity.ColorRed),
		Output:     DefaultOutput,
		Show:       true,
		Tuning:     DefaultTuning(),
	}
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.DatabaseURL = DatabaseURLFromEnv()
	cfg.LogLevel = envString("ARMOR_LOG_LEVEL", cfg.LogLevel)
	cfg.EnemyColor = envString("ARMOR_ENEMY_COLOR", cfg.EnemyColor)
	cfg.Input = envString("ARMOR_INPUT", cfg.Input)
	cfg.Output = envString("ARMOR_OUTPUT", cfg.Output)
	cfg.ParamsFile = envString("ARMOR_PARAMS_FILE", cfg.ParamsFile)
	cfg.Tuning.Digit.TemplateDir = envString("ARMOR_TEMPLATE_DIR", cfg.Tuning.Digit.TemplateDir)

	var err error
	if cfg.Camera, err = envInt("ARMOR_CAMERA", cfg.Camera); err != nil {
		return nil, err
	}
	if cfg.Show, err = envBool("ARMOR_SHOW", cfg.Show); err != nil {
		return nil, err
	}
	if cfg.Save, err = envBool("ARMOR_SAVE", cfg.Save); err != nil {
		return nil, err
	}

	if cfg.ParamsFile != "" {
		if err := cfg.LoadParamsFile(cfg.ParamsFile); err != nil {
			return nil, err
		}
	}

	return cfg, cfg.Validate()
}

// DatabaseURLFromEnv берёт DATABASE_URL или собирает строку из POSTGRES_*.
// Пустая строка означает хранение в памяти.
func DatabaseURLFromEnv() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"), host, port, os.Getenv("POSTGRES_DB"))
}

// LoadParamsFile накладывает YAML-файл поверх текущих порогов.
// Поля, отсутствующие в файле, сохраняют прежние значения.
func (c *Config) LoadParamsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read params file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c.Tuning); err != nil {
		return fmt.Errorf("parse params file %s: %w", path, err)
	}
	return nil
}

// Color возвращает цвет противника; ok=false, если значение неизвестно и выбран красный.
func (c *Config) Color() (entity.EnemyColor, bool) {
	return entity.ParseEnemyColor(c.EnemyColor)
}

// Validate приводит значения к допустимым диапазонам.
func (c *Config) Validate() error {
	if c.Camera < 0 {
		c.Camera = 0
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}

	a := &c.Tuning.Armor
	d := armor.DefaultParams()
	if a.LightBar.AreaMax < a.LightBar.AreaMin {
		a.LightBar.AreaMin, a.LightBar.AreaMax = d.LightBar.AreaMin, d.LightBar.AreaMax
	}
	if a.LightBar.AspectMax < a.LightBar.AspectMin {
		a.LightBar.AspectMin, a.LightBar.AspectMax = d.LightBar.AspectMin, d.LightBar.AspectMax
	}
	if a.Pair.DistanceRatioMax < a.Pair.DistanceRatioMin {
		a.Pair.DistanceRatioMin, a.Pair.DistanceRatioMax = d.Pair.DistanceRatioMin, d.Pair.DistanceRatioMax
	}
	if a.Pair.MarginFraction < 0 {
		a.Pair.MarginFraction = d.Pair.MarginFraction
	}
	if a.Pair.ClipWidth <= 0 || a.Pair.ClipHeight <= 0 {
		a.Pair.ClipWidth, a.Pair.ClipHeight = d.Pair.ClipWidth, d.Pair.ClipHeight
	}
	if a.Filter.AreaMax < a.Filter.AreaMin {
		a.Filter.AreaMin, a.Filter.AreaMax = d.Filter.AreaMin, d.Filter.AreaMax
	}

	s := &c.Tuning.Segment
	if s.BlurKernel < 0 {
		s.BlurKernel = 0
	}
	if s.BlurKernel > 0 && s.BlurKernel%2 == 0 {
		s.BlurKernel++ // ядро Гаусса должно быть нечётным
	}
	if s.MorphKernel <= 0 {
		s.MorphKernel = vision.DefaultSegmentParams().MorphKernel
	}

	g := &c.Tuning.Digit
	dd := digit.DefaultParams()
	if len(g.Labels) == 0 {
		g.Labels = dd.Labels
	}
	if g.TemplateSize <= 0 {
		g.TemplateSize = dd.TemplateSize
	}
	if g.MinRegionSide <= 0 {
		g.MinRegionSide = dd.MinRegionSide
	}
	if g.ConfidenceFloor < -1 || g.ConfidenceFloor > 1 {
		g.ConfidenceFloor = dd.ConfidenceFloor
	}
	if g.TemplateDir == "" {
		return errors.New("template dir is empty")
	}
	return nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
