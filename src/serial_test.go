package maple

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

// newTestLink opens a pseudo-terminal pair and wraps the slave side in a
// SerialLink, the way kisspt_open_pt opens one for the KISS TNC's
// loopback testing. The master end (returned) stands in for the maple
// proxy microcontroller.
func newTestLink(t *testing.T) (*SerialLink, *os.File) {
	t.Helper()

	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close() })

	link, err := OpenSerialLink(slave.Name(), DefaultBaud)
	require.NoError(t, err)
	t.Cleanup(func() { link.Close() })

	return link, master
}

func Test_SerialLink_WriteRead(t *testing.T) {
	link, master := newTestLink(t)

	go func() {
		buf := make([]byte, 3)
		master.Read(buf) //nolint:errcheck
		master.Write([]byte{0xaa, 0xbb}) //nolint:errcheck
	}()

	require.NoError(t, link.Write([]byte{1, 2, 3}))

	got, err := link.ReadExact(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xaa, 0xbb}, got)
}

func Test_SerialLink_ReadExact_ShortOnTimeout(t *testing.T) {
	link, _ := newTestLink(t)

	// Nothing is written on the other end, so ReadExact must return
	// whatever it has (nothing) once the read timeout elapses, rather
	// than blocking forever.
	start := time.Now()
	got, err := link.ReadExact(4)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Empty(t, got)
	require.Less(t, elapsed, 5*time.Second)
}
