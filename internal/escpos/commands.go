// Package escpos builds the subset of Epson ESC/POS commands needed to print a
// weather ticket: character size, upside-down mode and raster bitmaps.
package escpos

// Control characters
const (
	ESC = 0x1B
	GS  = 0x1D
)

var (
	// DoubleSize selects double-width, double-height characters.
	DoubleSize = CharacterSize(2, 2)

	// NormalSize restores the default character size.
	NormalSize = CharacterSize(1, 1)
)

// CharacterSize returns GS ! n, scaling characters by width and height
// (1 to 8 each). Out of range values are clamped.
func CharacterSize(width, height int) []byte {
	return []byte{GS, 0x21, byte(clampScale(width)-1)<<4 | byte(clampScale(height)-1)}
}

func clampScale(n int) int {
	switch {
	case n < 1:
		return 1
	case n > 8:
		return 8
	default:
		return n
	}
}

// UpsideDown returns ESC { n, turning upside-down printing on or off.
func UpsideDown(on bool) []byte {
	if on {
		return []byte{ESC, 0x7B, 0x01}
	}
	return []byte{ESC, 0x7B, 0x00}
}

// rasterHeader returns GS v 0 m xL xH yL yH for a normal-density bitmap.
// widthBytes is the row stride with 8 pixels packed per byte and height is
// the number of rows.
func rasterHeader(widthBytes, height int) []byte {
	return []byte{
		GS, 0x76, 0x30, 0x00,
		byte(widthBytes % 256), byte(widthBytes / 256),
		byte(height % 256), byte(height / 256),
	}
}
