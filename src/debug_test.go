package maple

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_CaptureSink_Write(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewCaptureSink(dir, "capture-%Y%m%d")
	require.NoError(t, err)

	path, err := sink.Write([]byte{0x01, 0x02, 0x03})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, got)
	require.Equal(t, dir, filepath.Dir(path))
}

func Test_CaptureSink_Write_UniqueNames(t *testing.T) {
	sink, err := NewCaptureSink(t.TempDir(), "")
	require.NoError(t, err)

	first, err := sink.Write([]byte{0x01})
	require.NoError(t, err)
	second, err := sink.Write([]byte{0x02})
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
