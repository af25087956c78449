package maple

/*
Purpose: drive one request/response exchange with the proxy over an
already-open SerialLink, including its retry and skip-forward behaviour.

Grounded on MapleProxy.transact / _transact_multiple in the reference
host driver.
*/

import (
	"bytes"
	"encoding/binary"
	"sync/atomic"
)

// skipLoopLength converts a sample count into the proxy's recv-skip unit.
const skipLoopLength = 2

// Transactor owns a SerialLink and runs Maple request/response exchanges
// over it. It is not safe for concurrent use: only one transaction may be
// in flight on a given link at a time.
type Transactor struct {
	link    *SerialLink
	capture *CaptureSink

	transactions uint64
	errors       uint64
	bytesDecoded uint64
}

// TransactorStats is a point-in-time snapshot of a Transactor's traffic
// counters, suitable for exposing over StatsServer.
type TransactorStats struct {
	Transactions uint64 `json:"transactions"`
	Errors       uint64 `json:"errors"`
	BytesDecoded uint64 `json:"bytes_decoded"`
}

// Stats returns a snapshot of t's traffic counters.
func (t *Transactor) Stats() TransactorStats {
	return TransactorStats{
		Transactions: atomic.LoadUint64(&t.transactions),
		Errors:       atomic.LoadUint64(&t.errors),
		BytesDecoded: atomic.LoadUint64(&t.bytesDecoded),
	}
}

// NewTransactor wraps link in a Transactor.
func NewTransactor(link *SerialLink) *Transactor {
	return &Transactor{link: link}
}

// SetCaptureSink makes every subsequent raw sample capture get written
// out through sink before being decoded. Passing nil disables capture.
func (t *Transactor) SetCaptureSink(sink *CaptureSink) {
	t.capture = sink
}

// Transact sends a frame built from cmd, recipient and payload, and
// returns the concatenated response bytes.
//
// When allowRepeats is true, the proxy is asked to keep listening past a
// single capture buffer's worth of samples -- each round's response is
// appended to the running total and the recv-skip offset advances by the
// number of samples already consumed, until a round's capture ends in
// bus idle. When allowRepeats is false, a single round is attempted and
// its result returned regardless of whether the bus went idle.
//
// An empty return with a nil error means the proxy reported no data at
// all -- either on the first round (nothing ever arrived) or partway
// through an allowRepeats sequence (the proxy stopped responding, so
// whatever had already been accumulated is returned and the transaction
// ends there); callers map a wholly-empty result to ErrShortResponse.
func (t *Transactor) Transact(cmd Command, recipient Address, payload []byte, allowRepeats bool) ([]byte, error) {
	packet, err := EncodeRequest(cmd, recipient, payload)
	if err != nil {
		return nil, err
	}

	numTries := 1
	if allowRepeats {
		numTries = 3
	}

	var entire []byte
	samplesSoFar := 0

	atomic.AddUint64(&t.transactions, 1)

	for {
		recvSkip := uint16(samplesSoFar / skipLoopLength)

		decoded, aborted, err := t.transactOnce(packet, recvSkip, numTries)
		if err != nil {
			atomic.AddUint64(&t.errors, 1)
			return nil, err
		}
		if aborted {
			// The proxy never sent a usable length prefix on any try --
			// per the abort-with-no-data case, stop rather than spin
			// the outer loop on a recv-skip that will never advance.
			break
		}

		entire = append(entire, decoded.Result...)
		atomic.AddUint64(&t.bytesDecoded, uint64(len(decoded.Result)))

		if !allowRepeats || decoded.Completed {
			break
		}
		samplesSoFar += decoded.NumSamples
	}

	return entire, nil
}

// transactOnce performs up to numTries rounds of write-packet /
// read-response, accepting early if two consecutive rounds decode to the
// same bytes. aborted reports that the proxy never returned a usable
// 2-byte length prefix on any try -- i.e. it had nothing to say this
// round at all, distinct from a round that decoded to zero bytes.
func (t *Transactor) transactOnce(packet []byte, recvSkip uint16, numTries int) (DecodedRx, bool, error) {
	var prev *DecodedRx
	var latest DecodedRx
	gotResponse := false

	for try := 0; try < numTries; try++ {
		if err := t.link.Write([]byte{byte(len(packet))}); err != nil {
			return DecodedRx{}, false, err
		}

		var skipBuf [2]byte
		binary.LittleEndian.PutUint16(skipBuf[:], recvSkip)
		if err := t.link.Write(skipBuf[:]); err != nil {
			return DecodedRx{}, false, err
		}

		if err := t.link.Write(packet); err != nil {
			return DecodedRx{}, false, err
		}

		lengthBytes, err := t.link.ReadExact(2)
		if err != nil {
			return DecodedRx{}, false, err
		}
		if len(lengthBytes) != 2 {
			// Proxy sent no (or a truncated) length prefix this round;
			// per spec this is the proxy aborting the transaction, not
			// an empty-but-valid round, so it does not count towards
			// the duplicate-confirm comparison below.
			continue
		}

		responseLen := binary.BigEndian.Uint16(lengthBytes)
		raw, err := t.link.ReadExact(int(responseLen))
		if err != nil {
			return DecodedRx{}, false, err
		}

		if t.capture != nil {
			if _, err := t.capture.Write(raw); err != nil {
				logger.Warn("capture write failed", "err", err)
			}
		}

		thisRound := Debittify(raw)
		latest = thisRound
		gotResponse = true

		if prev != nil && bytes.Equal(prev.Result, thisRound.Result) {
			break
		}
		roundCopy := thisRound
		prev = &roundCopy
	}

	if !gotResponse {
		return DecodedRx{}, true, nil
	}
	return latest, false, nil
}
