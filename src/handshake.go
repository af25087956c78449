package maple

import "time"

// handshakeAttemptTimeout bounds a single are-you-there round-trip.
const handshakeAttemptTimeout = 500 * time.Millisecond

// handshakeTotalBudget bounds the whole handshake before giving up.
const handshakeTotalBudget = 5 * time.Second

// handshakeMaxAttempts caps retries independent of elapsed time, so a
// link that always answers instantly still stops eventually.
const handshakeMaxAttempts = 10

// areYouThere is the multi-byte variant of the handshake probe. A single
// 0x00 also works against older proxies, but this is the form the
// authoritative reference implementation settled on.
var areYouThere = []byte{0x00, 0x00, 0x00}

// Handshake probes the link for a live maple proxy. It sends the
// are-you-there sequence and expects a single 0x01 reply within 500ms,
// retrying for up to 5 seconds (or 10 attempts, whichever comes first).
// It returns ErrProxyNotFound if no reply is ever observed.
func Handshake(link *SerialLink) error {
	deadline := time.Now().Add(handshakeTotalBudget)

	if err := link.fd.SetReadTimeout(handshakeAttemptTimeout); err != nil {
		return ioError("set handshake read timeout", err)
	}
	defer link.fd.SetReadTimeout(DefaultReadTimeout) //nolint:errcheck

	for attempt := 0; attempt < handshakeMaxAttempts && time.Now().Before(deadline); attempt++ {
		logger.Debug("are you there?", "attempt", attempt)

		if err := link.Write(areYouThere); err != nil {
			return err
		}

		reply, err := link.ReadExact(1)
		if err != nil {
			return err
		}
		if len(reply) == 1 && reply[0] == 0x01 {
			logger.Info("maple proxy detected")
			return nil
		}
	}

	return ErrProxyNotFound
}
