package digit

import (
	"image"

	"golang.org/x/image/draw"
)

// Bitmap одноканальное изображение фиксированного размера.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8 // построчно, Width*Height значений
}

// NewBitmap создаёт пустое изображение.
func NewBitmap(width, height int) Bitmap {
	return Bitmap{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// At возвращает яркость пикселя.
func (b Bitmap) At(x, y int) uint8 {
	return b.Pix[y*b.Width+x]
}

// Floats возвращает значения пикселей как float64 для статистики.
func (b Bitmap) Floats() []float64 {
	out := make([]float64, len(b.Pix))
	for i, v := range b.Pix {
		out[i] = float64(v)
	}
	return out
}

// Gray превращает изображение в *image.Gray.
func (b Bitmap) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+b.Width], b.Pix[y*b.Width:(y+1)*b.Width])
	}
	return img
}

// FromImage бинаризует изображение по порогу и масштабирует до size×size.
// Порядок (сначала порог, потом масштаб) совпадает с обработкой кадра.
func FromImage(src image.Image, threshold uint8, size int) Bitmap {
	bounds := src.Bounds()
	binary := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(binary, binary.Bounds(), src, bounds.Min, draw.Src)
	for i, v := range binary.Pix {
		if v > threshold {
			binary.Pix[i] = 255
		} else {
			binary.Pix[i] = 0
		}
	}

	scaled := image.NewGray(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), binary, binary.Bounds(), draw.Src, nil)

	out := NewBitmap(size, size)
	for y := 0; y < size; y++ {
		copy(out.Pix[y*size:(y+1)*size], scaled.Pix[y*scaled.Stride:y*scaled.Stride+size])
	}
	return out
}
