package digit

import (
	"image"
	"math"
	"sync"

	"golang.org/x/image/vector"
)

// glyphBase сторона сетки, в которой заданы штрихи.
const glyphBase = 32

// strokeWidth толщина линий синтетических цифр.
const strokeWidth = 3

type stroke struct {
	x1, y1, x2, y2 float32
}

// glyphStrokes простые штриховые начертания цифр в сетке 32×32.
var glyphStrokes = map[int][]stroke{
	2: {{5, 5, 27, 5}, {27, 5, 27, 15}, {27, 15, 5, 15}, {5, 15, 5, 27}, {5, 27, 27, 27}},
	3: {{5, 5, 27, 5}, {27, 5, 27, 27}, {5, 27, 27, 27}, {5, 16, 27, 16}},
	4: {{5, 5, 5, 27}, {5, 15, 27, 15}, {27, 5, 27, 27}},
	7: {{5, 5, 27, 5}, {27, 5, 10, 27}},
}

// glyphBlocks залитые прямоугольники (x, y, w, h).
var glyphBlocks = map[int][]image.Rectangle{
	1: {image.Rect(14, 5, 18, 27)},
}

var (
	glyphCacheMu sync.RWMutex
	glyphCache   = map[[2]int]Bitmap{} // [label, size]
)

// Glyph возвращает синтетический шаблон цифры размером size×size.
// Результат строится один раз и кэшируется; вызывающий не должен менять Pix.
// Второе значение false, если для метки нет начертания.
func Glyph(label, size int) (Bitmap, bool) {
	_, hasStrokes := glyphStrokes[label]
	_, hasBlocks := glyphBlocks[label]
	if !hasStrokes && !hasBlocks {
		return Bitmap{}, false
	}

	key := [2]int{label, size}
	glyphCacheMu.RLock()
	b, ok := glyphCache[key]
	glyphCacheMu.RUnlock()
	if ok {
		return b, true
	}

	b = rasterizeGlyph(label, size)

	glyphCacheMu.Lock()
	if existing, ok := glyphCache[key]; ok {
		b = existing
	} else {
		glyphCache[key] = b
	}
	glyphCacheMu.Unlock()
	return b, true
}

func rasterizeGlyph(label, size int) Bitmap {
	scale := float32(size) / glyphBase
	z := vector.NewRasterizer(size, size)

	for _, r := range glyphBlocks[label] {
		x1, y1 := float32(r.Min.X)*scale, float32(r.Min.Y)*scale
		x2, y2 := float32(r.Max.X)*scale, float32(r.Max.Y)*scale
		z.MoveTo(x1, y1)
		z.LineTo(x2, y1)
		z.LineTo(x2, y2)
		z.LineTo(x1, y2)
		z.ClosePath()
	}
	for _, s := range glyphStrokes[label] {
		addStroke(z, s, strokeWidth*scale, scale)
	}

	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	b := NewBitmap(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if mask.AlphaAt(x, y).A >= 128 {
				b.Pix[y*size+x] = 255
			}
		}
	}
	return b
}

// addStroke добавляет отрезок заданной толщины с квадратными концами.
func addStroke(z *vector.Rasterizer, s stroke, width, scale float32) {
	x1, y1 := s.x1*scale, s.y1*scale
	x2, y2 := s.x2*scale, s.y2*scale

	dx, dy := x2-x1, y2-y1
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	half := width / 2
	ux, uy := dx/length*half, dy/length*half // вдоль отрезка
	nx, ny := -uy, ux                        // поперёк отрезка

	z.MoveTo(x1-ux+nx, y1-uy+ny)
	z.LineTo(x2+ux+nx, y2+uy+ny)
	z.LineTo(x2+ux-nx, y2+uy-ny)
	z.LineTo(x1-ux-nx, y1-uy-ny)
	z.ClosePath()
}
