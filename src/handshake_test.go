package maple

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Handshake_Success(t *testing.T) {
	link, master := newTestLink(t)

	go func() {
		buf := make([]byte, 3)
		if _, err := master.Read(buf); err != nil {
			return
		}
		master.Write([]byte{0x01}) //nolint:errcheck
	}()

	require.NoError(t, Handshake(link))
}

func Test_Handshake_NeverReplies(t *testing.T) {
	link, master := newTestLink(t)

	// Drain whatever the handshake writes so the other end doesn't fill
	// up, but never answer.
	go func() {
		buf := make([]byte, 64)
		for {
			if _, err := master.Read(buf); err != nil {
				return
			}
		}
	}()

	err := Handshake(link)
	require.ErrorIs(t, err, ErrProxyNotFound)
}
