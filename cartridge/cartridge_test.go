package cartridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildHeader(prg, chr, flags6, flags7 uint8) []byte {
	h := make([]byte, headerSize)
	copy(h, magicConstant)
	h[4] = prg
	h[5] = chr
	h[6] = flags6
	h[7] = flags7
	return h
}

func TestLoadNROM(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildHeader(2, 1, 0, 0))
	buf.Write(bytes.Repeat([]byte{0x01}, 2*prgBlockSize))
	buf.Write(bytes.Repeat([]byte{0x02}, chrBlockSize))

	c, err := Load(&buf)
	require.NoError(t, err)
	require.Len(t, c.PRG(), 2*prgBlockSize)
	require.Len(t, c.CHR(), chrBlockSize)
	require.EqualValues(t, 0, c.MapperID())
}

func TestLoadRejectsUnsupportedMapper(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildHeader(1, 1, 0x10, 0)) // mapper 1, low nibble in flags6 high bits
	buf.Write(make([]byte, prgBlockSize))
	buf.Write(make([]byte, chrBlockSize))

	_, err := Load(&buf)
	require.ErrorIs(t, err, ErrUnsupportedMapper)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("BAD\x00")
	buf.Write(make([]byte, headerSize-4))

	_, err := Load(&buf)
	require.ErrorIs(t, err, ErrBadHeader)
}

func TestLoadReadsTrainerWhenPresent(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildHeader(1, 1, flagTrainer, 0))
	buf.Write(bytes.Repeat([]byte{0xAA}, trainerSize))
	buf.Write(make([]byte, prgBlockSize))
	buf.Write(make([]byte, chrBlockSize))

	c, err := Load(&buf)
	require.NoError(t, err)
	require.Len(t, c.trainer, trainerSize)
}

func TestMirroringModes(t *testing.T) {
	h, err := parseHeader(buildHeader(1, 1, flagFourScreen, 0))
	require.NoError(t, err)
	require.EqualValues(t, MirrorFourScreen, h.mirroringMode())

	h, err = parseHeader(buildHeader(1, 1, flagMirroring, 0))
	require.NoError(t, err)
	require.EqualValues(t, MirrorVertical, h.mirroringMode())

	h, err = parseHeader(buildHeader(1, 1, 0, 0))
	require.NoError(t, err)
	require.EqualValues(t, MirrorHorizontal, h.mirroringMode())
}
