// Package mappers implements and registers the cartridge mappers
// referenced numerically by the iNES header. A Mapper does not own
// address decoding itself — the mmu package already generalizes that
// — so a Mapper just exposes the backing byte slices console wires
// directly into mmu.Region values.
package mappers

import (
	"fmt"

	"github.com/bdwalton/nescore/cartridge"
)

// Mapper exposes the backing memory a cartridge contributes to the
// CPU and PPU address spaces. PRG is mirrored by the MMU if it is
// shorter than the 0x8000-0xFFFF window (16KB NROM carts). SaveRAM
// backs the 0x6000-0x7FFF CPU window as battery/work RAM.
type Mapper interface {
	PRG() []byte
	CHR() []byte
	SaveRAM() []byte
}

type constructor func(c *cartridge.Cartridge) (Mapper, error)

var registry = map[uint8]constructor{}

// Register adds a mapper constructor under id. Called from each
// mapper's init().
func Register(id uint8, fn constructor) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: id %d already registered", id))
	}
	registry[id] = fn
}

// Get constructs the mapper named by the cartridge's header.
func Get(c *cartridge.Cartridge) (Mapper, error) {
	fn, ok := registry[c.MapperID()]
	if !ok {
		return nil, fmt.Errorf("mappers: id %d: %w", c.MapperID(), cartridge.ErrUnsupportedMapper)
	}
	return fn(c)
}
