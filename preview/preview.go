// Package preview renders a cartridge's CHR data as pattern-table
// tiles for inspection, independent of the PPU's timing-accurate
// scanline core, which does not composite pixels itself. CHR tiles
// are decoded to a 4-tone grayscale ramp rather than real NES colors,
// since no background palette RAM is modeled anywhere in this core.
package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bdwalton/nescore/mappers"
)

const (
	tileSize       = 8
	tilesPerTable  = 16 // 16x16 tiles per 4KB pattern table
	tablePixelSize = tileSize * tilesPerTable
)

// grayRamp stands in for SYSTEM_PALETTE: without background-palette
// RAM modeled, a 2-bit pattern-table index can only be shown as
// relative intensity, not a true NES color.
var grayRamp = [4]color.RGBA{
	{0x00, 0x00, 0x00, 0xff},
	{0x60, 0x60, 0x60, 0xff},
	{0xb0, 0xb0, 0xb0, 0xff},
	{0xff, 0xff, 0xff, 0xff},
}

// Viewer is an ebiten.Game that displays both of a mapper's 4KB CHR
// pattern tables side by side.
type Viewer struct {
	left, right *ebiten.Image
}

// New decodes m's CHR data into the two pattern-table images. CHR of
// 4KB or less (e.g. a single 4KB bank) leaves the right table blank;
// CHR between 4KB and 8KB fills the right table only as far as it goes.
func New(m mappers.Mapper) (*Viewer, error) {
	chr := m.CHR()
	if len(chr) == 0 {
		return nil, fmt.Errorf("preview: cartridge carries no CHR data")
	}

	v := &Viewer{
		left:  ebiten.NewImage(tablePixelSize, tablePixelSize),
		right: ebiten.NewImage(tablePixelSize, tablePixelSize),
	}
	decodeTable(v.left, chr, 0)
	if len(chr) > 0x1000 {
		decodeTable(v.right, chr, 0x1000)
	}
	return v, nil
}

// decodeTable draws the 256 tiles of a 4KB pattern table starting at
// bankOffset within chr onto img.
func decodeTable(img *ebiten.Image, chr []byte, bankOffset int) {
	for tile := 0; tile < tilesPerTable*tilesPerTable; tile++ {
		if bankOffset+tile*16+16 > len(chr) {
			return
		}
		tx := (tile % tilesPerTable) * tileSize
		ty := (tile / tilesPerTable) * tileSize
		for row := 0; row < tileSize; row++ {
			for col := 0; col < tileSize; col++ {
				idx := tilePixel(chr, bankOffset, tile, row, col)
				img.Set(tx+col, ty+row, grayRamp[idx])
			}
		}
	}
}

// tilePixel returns the 2-bit pattern-table color index for the given
// tile-local row/col of the tile at index tile within the 4KB bank
// starting at bankOffset, per the standard NES 2bpp tile layout: eight
// low-bitplane rows followed by eight matching high-bitplane rows.
func tilePixel(chr []byte, bankOffset, tile, row, col int) uint8 {
	base := bankOffset + tile*16
	lo := chr[base+row]
	hi := chr[base+row+8]
	bit := uint(7 - col)
	return ((hi>>bit)&1)<<1 | (lo>>bit)&1
}

// Update satisfies ebiten.Game; the pattern tables are static once
// decoded, so there is nothing to advance per frame.
func (v *Viewer) Update() error { return nil }

// Draw composites the two pattern tables with a one-tile gap between
// them.
func (v *Viewer) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	screen.DrawImage(v.left, op)
	op.GeoM.Translate(float64(tablePixelSize+tileSize), 0)
	screen.DrawImage(v.right, op)
}

// Layout satisfies ebiten.Game, returning a fixed logical screen size
// wide enough for both pattern tables.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return tablePixelSize*2 + tileSize, tablePixelSize
}

// Bounds reports the logical screen size Layout returns, for callers
// that need it before a Game loop starts (e.g. to size a window).
func (v *Viewer) Bounds() image.Rectangle {
	return image.Rect(0, 0, tablePixelSize*2+tileSize, tablePixelSize)
}
