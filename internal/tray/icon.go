package tray

import (
	"bytes"
	"encoding/binary"
)

const iconSize = 16

// getIcon renders a 16x16 32-bit ICO of a two-button mouse
func getIcon() []byte {
	const (
		dirSize    = 6 + 16
		headerSize = 40
		pixelSize  = iconSize * iconSize * 4
		maskSize   = iconSize * 4 // 1bpp rows padded to 32 bits
		imageSize  = headerSize + pixelSize + maskSize
	)

	var buf bytes.Buffer
	le := func(v interface{}) { binary.Write(&buf, binary.LittleEndian, v) }

	// ICONDIR + ICONDIRENTRY
	le([3]uint16{0, 1, 1})
	le([4]uint8{iconSize, iconSize, 0, 0})
	le([2]uint16{1, 32})
	le([2]uint32{imageSize, dirSize})

	// BITMAPINFOHEADER; height is doubled to cover the AND mask
	le(uint32(headerSize))
	le([2]int32{iconSize, iconSize * 2})
	le([2]uint16{1, 32})
	le([6]uint32{0, pixelSize + maskSize, 0, 0, 0, 0})

	// Pixels are stored bottom-up as BGRA.
	for y := iconSize - 1; y >= 0; y-- {
		for x := 0; x < iconSize; x++ {
			buf.Write(mousePixel(x, y))
		}
	}

	// Alpha carries transparency, so the AND mask stays clear.
	buf.Write(make([]byte, maskSize))
	return buf.Bytes()
}

func mousePixel(x, y int) []byte {
	var (
		transparent = []byte{0, 0, 0, 0}
		outline     = []byte{0x30, 0x30, 0x30, 0xFF}
		body        = []byte{0xF0, 0xF0, 0xF0, 0xFF}
	)

	// Ellipse centred on the icon, 7px wide and 14px tall
	dx := (float64(x) - 7.5) / 3.8
	dy := (float64(y) - 7.5) / 6.8
	d := dx*dx + dy*dy

	switch {
	case d > 1:
		return transparent
	case d > 0.65:
		return outline
	case y == 6:
		return outline // button line
	case y < 6 && (x == 7 || x == 8):
		return outline // split between buttons
	}
	return body
}
