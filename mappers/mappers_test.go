package mappers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bdwalton/nescore/cartridge"
)

func buildINES(t *testing.T, prgBlocks, chrBlocks uint8) *cartridge.Cartridge {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("NES\x1a")
	buf.WriteByte(prgBlocks)
	buf.WriteByte(chrBlocks)
	buf.Write(make([]byte, 6)) // flags6-10, unused
	buf.Write(bytes.Repeat([]byte{0xEA}, int(prgBlocks)*16384))
	buf.Write(bytes.Repeat([]byte{0x11}, int(chrBlocks)*8192))
	c, err := cartridge.Load(&buf)
	require.NoError(t, err)
	return c
}

func TestNROMWiresPRGAndCHR(t *testing.T) {
	c := buildINES(t, 1, 1)
	m, err := Get(c)
	require.NoError(t, err)
	require.Len(t, m.PRG(), 16384)
	require.Len(t, m.CHR(), 8192)
	require.Len(t, m.SaveRAM(), saveRAMSize)
}

func TestNROMSynthesizesCHRRAMWhenCartridgeHasNone(t *testing.T) {
	c := buildINES(t, 2, 0)
	m, err := Get(c)
	require.NoError(t, err)
	require.Len(t, m.CHR(), 0x2000)
}
