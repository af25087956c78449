package maple

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// withWorkingDir temporarily chdirs into dir, restoring the original
// working directory on cleanup -- LoadConfig searches relative paths
// the way deviceid.go searches for tocalls.yaml.
func withWorkingDir(t *testing.T, dir string) {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(orig))
	})
}

func Test_LoadConfig_NoFileReturnsDefault(t *testing.T) {
	withWorkingDir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func Test_LoadConfig_ReadsFirstMatch(t *testing.T) {
	dir := t.TempDir()
	withWorkingDir(t, dir)

	contents := []byte(`
device: /dev/ttyUSB3
baud: 115200
log_level: debug
usb_vendor_id: 0x0403
usb_product_id: 0x6001
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "maple.yaml"), contents, 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB3", cfg.Device)
	require.Equal(t, 115200, cfg.Baud)
	require.Equal(t, "debug", cfg.LogLevel)
}

func Test_LoadConfig_MissingBaudFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	withWorkingDir(t, dir)

	contents := []byte(`device: /dev/ttyACM0`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "maple.yaml"), contents, 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultBaud, cfg.Baud)
}

func Test_LoadConfig_RejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	withWorkingDir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "maple.yaml"), []byte("device: [unterminated"), 0o644))

	_, err := LoadConfig()
	require.Error(t, err)
}
