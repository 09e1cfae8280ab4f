package preview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// solidTile builds one 16-byte 2bpp tile where every pixel has the
// given 2-bit color index.
func solidTile(idx uint8) []byte {
	t := make([]byte, 16)
	lo := idx & 1
	hi := (idx >> 1) & 1
	for row := 0; row < 8; row++ {
		if lo != 0 {
			t[row] = 0xFF
		}
		if hi != 0 {
			t[row+8] = 0xFF
		}
	}
	return t
}

func TestTilePixelDecodesAllFourIndices(t *testing.T) {
	chr := make([]byte, 0)
	for idx := uint8(0); idx < 4; idx++ {
		chr = append(chr, solidTile(idx)...)
	}
	for idx := 0; idx < 4; idx++ {
		got := tilePixel(chr, 0, idx, 3, 5)
		require.EqualValues(t, idx, got)
	}
}

func TestTilePixelRespectsBankOffset(t *testing.T) {
	chr := make([]byte, 0x2000)
	copy(chr[0x1000:], solidTile(3))
	require.EqualValues(t, 3, tilePixel(chr, 0x1000, 0, 0, 0))
	require.EqualValues(t, 0, tilePixel(chr, 0, 0, 0, 0))
}
