package mappers

import "github.com/bdwalton/nescore/cartridge"

const saveRAMSize = 0x2000 // 0x6000-0x7FFF

func init() {
	Register(0, newNROM)
}

// nrom is mapper 0, the simplest cartridge wiring: PRG-ROM (mirrored
// if only 16KB), CHR-ROM (or CHR-RAM if the cartridge carries none),
// and a flat save-RAM window.
type nrom struct {
	prg     []byte
	chr     []byte
	saveRAM []byte
}

func newNROM(c *cartridge.Cartridge) (Mapper, error) {
	chr := c.CHR()
	if len(chr) == 0 {
		chr = make([]byte, 0x2000) // CHR-RAM cartridge
	}
	return &nrom{
		prg:     c.PRG(),
		chr:     chr,
		saveRAM: make([]byte, saveRAMSize),
	}, nil
}

func (m *nrom) PRG() []byte     { return m.prg }
func (m *nrom) CHR() []byte     { return m.chr }
func (m *nrom) SaveRAM() []byte { return m.saveRAM }
