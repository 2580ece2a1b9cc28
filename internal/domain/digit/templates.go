package digit

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
)

// Source откуда взят набор шаблонов
type Source string

const (
	SourceFiles     Source = "files"
	SourceSynthetic Source = "synthetic"
)

// ErrNoGlyph у метки нет синтетического начертания.
var ErrNoGlyph = errors.New("no synthetic glyph for label")

// Template эталонное изображение одной цифры
type Template struct {
	Label  int
	Bitmap Bitmap
}

// TemplateSet неизменяемый набор шаблонов.
type TemplateSet struct {
	source    Source
	templates []Template
}

// LoadReport итог загрузки шаблонов из каталога.
type LoadReport struct {
	Dir    string
	Loaded []int
	Failed map[int]error
	Source Source
}

// Source возвращает стратегию, которой построен набор.
func (s *TemplateSet) Source() Source {
	return s.source
}

// Len количество шаблонов.
func (s *TemplateSet) Len() int {
	return len(s.templates)
}

// Templates возвращает копию списка шаблонов.
func (s *TemplateSet) Templates() []Template {
	out := make([]Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// Lookup ищет шаблон по метке.
func (s *TemplateSet) Lookup(label int) (Template, bool) {
	for _, t := range s.templates {
		if t.Label == label {
			return t, true
		}
	}
	return Template{}, false
}

// Labels метки набора в порядке загрузки.
func (s *TemplateSet) Labels() []int {
	labels := make([]int, len(s.templates))
	for i, t := range s.templates {
		labels[i] = t.Label
	}
	return labels
}

// TemplatePath путь к файлу шаблона метки.
func TemplatePath(dir string, label int) string {
	return filepath.Join(dir, strconv.Itoa(label)+".png")
}

// LoadTemplates пытается загрузить <dir>/<label>.png для каждой метки.
// Ошибки отдельных меток собираются в отчёт и не прерывают загрузку.
func LoadTemplates(dir string, params Params) ([]Template, LoadReport) {
	report := LoadReport{Dir: dir, Failed: make(map[int]error)}
	templates := make([]Template, 0, len(params.Labels))
	for _, label := range params.Labels {
		bm, err := loadTemplateFile(TemplatePath(dir, label), params)
		if err != nil {
			report.Failed[label] = err
			continue
		}
		templates = append(templates, Template{Label: label, Bitmap: bm})
		report.Loaded = append(report.Loaded, label)
	}
	return templates, report
}

func loadTemplateFile(path string, params Params) (Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bitmap{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Bitmap{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return Bitmap{}, fmt.Errorf("empty template %s", path)
	}
	return FromImage(img, params.BinaryThreshold, params.TemplateSize), nil
}

// SyntheticTemplates строит штриховые шаблоны для всех меток.
func SyntheticTemplates(params Params) ([]Template, error) {
	templates := make([]Template, 0, len(params.Labels))
	for _, label := range params.Labels {
		bm, ok := Glyph(label, params.TemplateSize)
		if !ok {
			return nil, fmt.Errorf("label %d: %w", label, ErrNoGlyph)
		}
		templates = append(templates, Template{Label: label, Bitmap: bm})
	}
	return templates, nil
}

// LoadTemplateSet двухэтапная инициализация: сначала файлы из каталога,
// синтетические шаблоны только если из файлов не загружено ни одного.
func LoadTemplateSet(params Params) (*TemplateSet, LoadReport, error) {
	templates, report := LoadTemplates(params.TemplateDir, params)
	if len(templates) > 0 {
		report.Source = SourceFiles
		return &TemplateSet{source: SourceFiles, templates: templates}, report, nil
	}

	synthetic, err := SyntheticTemplates(params)
	if err != nil {
		return nil, report, err
	}
	report.Source = SourceSynthetic
	return &TemplateSet{source: SourceSynthetic, templates: synthetic}, report, nil
}

// NewTemplateSet собирает набор из готовых шаблонов.
func NewTemplateSet(source Source, templates []Template) *TemplateSet {
	cp := make([]Template, len(templates))
	copy(cp, templates)
	return &TemplateSet{source: source, templates: cp}
}
