package maple

/*
Purpose: turn a raw 2 MSPS sample capture from the proxy back into bytes.

Grounded directly on debittify() in the reference host driver. The proxy
samples two bus pins at 2 MHz and packs four sample pairs per byte; a
byte's worth of Maple bus data is recovered one bit per falling edge.
*/

// DecodedRx is the result of decoding one raw sample capture.
type DecodedRx struct {
	// Result holds every complete byte recovered.
	Result []byte
	// NumSamples is the number of raw samples consumed up to the last
	// completed byte -- i.e. not counting any trailing partial byte.
	NumSamples int
	// Completed reports whether the capture ended in at least
	// idleSamplesIndicatingCompletion consecutive both-pins-high
	// samples, meaning the bus returned to idle before the capture
	// buffer ran out.
	Completed bool
}

const idleSamplesIndicatingCompletion = 8

// rawSamplesPerByte is the number of sample pairs packed into one byte
// of a raw capture.
const rawSamplesPerByte = 4

// Debittify decodes bitstring, a raw capture of (pin5, pin1) sample
// pairs packed four to a byte in the order sample3 (bits 5,4), sample1
// (bits 3,2), sample2 (bits 7,6), sample4 (bits 1,0).
//
// A bit is recovered on every falling edge of either pin: a pin1 falling
// edge contributes the concurrent value of pin5, and a pin5 falling edge
// contributes the concurrent value of pin1. Both can fire on the same
// sample, in which case two bits are recovered from it. Any leading run
// of both-pins-high samples before the first edge is discarded; a
// trailing run of at least 8 such samples marks the capture as having
// reached bus idle, and in that case the last byte recovered is dropped
// -- it is an artifact of the proxy's own trailing idle framing, not bus
// data.
func Debittify(bitstring []byte) DecodedRx {
	var output []byte
	var accum byte
	var bitcount int

	addBit := func(bit bool) bool {
		accum <<= 1
		if bit {
			accum |= 1
		}
		bitcount++
		if bitcount == 8 {
			output = append(output, accum)
			bitcount = 0
			accum = 0
		}
		return bitcount == 0
	}

	oldPin1 := true
	oldPin5 := false
	started := true
	numSamplesAllHigh := 0
	samplesThisByte := 0

	for _, raw := range bitstring {
		pairs := [4][2]bool{
			{raw&0x20 != 0, raw&0x10 != 0},
			{raw&0x8 != 0, raw&0x4 != 0},
			{raw&0x80 != 0, raw&0x40 != 0},
			{raw&0x2 != 0, raw&0x1 != 0},
		}

		for _, pair := range pairs {
			pin5, pin1 := pair[0], pair[1]

			if pin1 && pin5 {
				if started {
					// Skip the initial both-lines-high condition.
					continue
				}
				numSamplesAllHigh++
			} else {
				numSamplesAllHigh = 0
			}
			started = false

			added := false
			if oldPin1 && !pin1 {
				added = addBit(pin5)
			}
			if oldPin5 && !pin5 {
				added = addBit(pin1)
			}

			if added {
				samplesThisByte = 0
			} else {
				samplesThisByte++
			}

			oldPin5 = pin5
			oldPin1 = pin1
		}
	}

	completed := numSamplesAllHigh >= idleSamplesIndicatingCompletion
	if completed && len(output) > 0 {
		output = output[:len(output)-1]
	}

	numSamples := len(bitstring)*rawSamplesPerByte - samplesThisByte

	return DecodedRx{
		Result:     output,
		NumSamples: numSamples,
		Completed:  completed,
	}
}
