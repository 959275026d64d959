package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapEngine_IsLittleEndian(t *testing.T) {
	require.Equal(t, binary.LittleEndian, MapEngine())
}

func TestEngine_AppendAndRead(t *testing.T) {
	engine := MapEngine()

	buf := engine.AppendUint16(nil, 0x0102)
	require.Equal(t, []byte{0x02, 0x01}, buf)
	require.Equal(t, uint16(0x0102), engine.Uint16(buf))

	buf = engine.AppendUint32(nil, 0xDEADBEEF)
	require.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, buf)
	require.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf))
}
