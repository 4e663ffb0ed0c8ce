package escpos

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Bitmap is a 1-bit image packed for the raster command: rows of
// WidthBytes() bytes, most significant bit first, a set bit prints a dot.
type Bitmap struct {
	Width  int // pixels, always a multiple of 8
	Height int
	Data   []byte
}

// WidthBytes is the row stride in bytes.
func (b Bitmap) WidthBytes() int {
	return b.Width / 8
}

var monochrome = color.Palette{color.Black, color.White}

// FromImage converts img to a printable bitmap. Transparent areas become
// white, the image is flipped top to bottom to match the printer's raster
// orientation, grey levels are Floyd-Steinberg dithered and the width is
// padded with white to a multiple of 8.
func FromImage(img image.Image) Bitmap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rect := image.Rect(0, 0, w, h)

	// Flatten onto white and flip
	flat := image.NewRGBA(rect)
	draw.Draw(flat, rect, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, rect, img, b.Min, draw.Over)
	flipVertical(flat)

	gray := image.NewGray(rect)
	draw.Draw(gray, rect, flat, image.Point{}, draw.Src)

	mono := image.NewPaletted(rect, monochrome)
	draw.FloydSteinberg.Draw(mono, rect, gray, image.Point{})

	widthBytes := (w + 7) / 8
	data := make([]byte, widthBytes*h)
	for y := 0; y < h; y++ {
		row := data[y*widthBytes : (y+1)*widthBytes]
		for x := 0; x < w; x++ {
			if mono.ColorIndexAt(x, y) == 0 {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
	}

	return Bitmap{
		Width:  widthBytes * 8,
		Height: h,
		Data:   data,
	}
}

func flipVertical(img *image.RGBA) {
	h := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]byte, rowLen)
	for top, bottom := 0, h-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		b := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// RasterImage returns the raster bitmap command followed by the bitmap data.
func RasterImage(b Bitmap) []byte {
	out := make([]byte, 0, 8+len(b.Data))
	out = append(out, rasterHeader(b.WidthBytes(), b.Height)...)
	return append(out, b.Data...)
}

// EncodeFile decodes the image at path and returns its raster command. The
// file is removed before EncodeFile returns, whether or not encoding
// succeeded.
func EncodeFile(path string) ([]byte, error) {
	defer func() {
		_ = os.Remove(path)
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return RasterImage(FromImage(img)), nil
}
