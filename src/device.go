package maple

/*
Purpose: a typed facade over Transactor for each device operation the bus
supports, grounded on MapleProxy's deviceInfo/readFlash/getCond/writeLCD/
writeFlash/writeFlashComplete/resetDevice/getMemInfo/readController.
*/

import "encoding/binary"

// DeviceOps exposes one method per Maple device operation, each of which
// encodes a request, runs it through a Transactor, and decodes the
// response into a typed result.
type DeviceOps struct {
	t *Transactor
}

// NewDeviceOps builds a DeviceOps over an existing Transactor.
func NewDeviceOps(t *Transactor) *DeviceOps {
	return &DeviceOps{t: t}
}

func putFunctionWord(payload []byte, fn FunctionCode) {
	binary.LittleEndian.PutUint32(payload[0:4], uint32(fn))
}

// DeviceInfo asks the device at addr to identify itself.
func (d *DeviceOps) DeviceInfo(addr Address) (DeviceInfo, error) {
	resp, err := d.t.Transact(CmdInfo, addr, nil, true)
	if err != nil {
		return DeviceInfo{}, err
	}
	if len(resp) < 4 {
		return DeviceInfo{}, ErrShortResponse
	}
	return ParseDeviceInfo(resp[4:])
}

// GetCond requests a raw condition report for the given function and
// returns the decoded frame unparsed; callers that know the function's
// condition layout (ParseControllerCond, for instance) parse it further.
func (d *DeviceOps) GetCond(addr Address, function FunctionCode) ([]byte, error) {
	payload := make([]byte, 4)
	putFunctionWord(payload, function)

	resp, err := d.t.Transact(CmdGetCond, addr, payload, false)
	if err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, ErrShortResponse
	}
	return resp, nil
}

// ReadController requests and decodes a controller condition report.
func (d *DeviceOps) ReadController(addr Address) (ControllerCond, error) {
	resp, err := d.GetCond(addr, FnController)
	if err != nil {
		return ControllerCond{}, err
	}
	return ParseControllerCond(resp)
}

// WriteLCD blits a 192-byte 48x32 1bpp bitmap to the device's LCD
// function.
func (d *DeviceOps) WriteLCD(addr Address, bitmap []byte) error {
	if len(bitmap) != 192 {
		return invariant("lcd bitmap must be 192 bytes, got %d", len(bitmap))
	}

	payload := make([]byte, 8+192)
	putFunctionWord(payload, FnLCD)
	copy(payload[8:], bitmap)

	resp, err := d.t.Transact(CmdWrite, addr, payload, false)
	if err != nil {
		return err
	}
	if len(resp) == 0 {
		return ErrShortResponse
	}
	return nil
}

// ReadFlash reads one 512-byte block of flash memory, addressed by
// block number and phase. It retries internally until the device
// returns a full, correctly-tagged transfer; this mirrors the bus's own
// expectation that flash reads are retried until they succeed rather
// than surfaced as a caller-visible failure.
func (d *DeviceOps) ReadFlash(addr Address, block uint16, phase byte) ([]byte, error) {
	payload := make([]byte, 8)
	putFunctionWord(payload, FnMemoryCard)
	addrWord := (uint32(phase) << 16) | uint32(block)
	binary.LittleEndian.PutUint32(payload[4:8], addrWord)

	for {
		resp, err := d.t.Transact(CmdRead, addr, payload, true)
		if err != nil {
			return nil, err
		}
		if len(resp) < 12+1 {
			continue
		}

		cmd, _, _, _, err := DecodeHeader(resp)
		if err != nil {
			return nil, err
		}

		// Strip header, function word, block address and trailing checksum.
		data := WordSwap(resp[12 : len(resp)-1])
		if len(data) == 512 && cmd == CmdXferResp {
			return data, nil
		}
	}
}

// WriteFlash writes one 128-byte chunk of flash memory, addressed by
// block number and phase.
func (d *DeviceOps) WriteFlash(addr Address, block uint16, phase byte, data []byte) error {
	if len(data) != 128 {
		return invariant("flash write chunk must be 128 bytes, got %d", len(data))
	}

	payload := make([]byte, 8+128)
	putFunctionWord(payload, FnMemoryCard)
	addrWord := (uint32(phase) << 16) | uint32(block)
	binary.LittleEndian.PutUint32(payload[4:8], addrWord)
	copy(payload[8:], WordSwap(data))

	resp, err := d.t.Transact(CmdWrite, addr, payload, false)
	if err != nil {
		return err
	}
	if len(resp) == 0 {
		return ErrShortResponse
	}

	cmd, _, _, _, err := DecodeHeader(resp)
	if err != nil {
		return err
	}
	if cmd != CmdAckResp {
		return invariant("unexpected response command 0x%02x to flash write", byte(cmd))
	}
	return nil
}

// WriteFlashComplete signals that a sequence of WriteFlash calls for the
// given block is finished.
func (d *DeviceOps) WriteFlashComplete(addr Address, block uint16) error {
	payload := make([]byte, 8)
	putFunctionWord(payload, FnMemoryCard)
	addrWord := uint32(4)<<16 | uint32(block)
	binary.LittleEndian.PutUint32(payload[4:8], addrWord)

	resp, err := d.t.Transact(CmdWriteComplete, addr, payload, false)
	if err != nil {
		return err
	}
	if len(resp) == 0 {
		return ErrShortResponse
	}
	return nil
}

// Reset asks the device at addr to reset itself.
func (d *DeviceOps) Reset(addr Address) error {
	resp, err := d.t.Transact(CmdReset, addr, nil, false)
	if err != nil {
		return err
	}
	if len(resp) == 0 {
		return ErrShortResponse
	}
	return nil
}

// MemInfo is the decoded payload of a GET_MEMINFO response for the
// memory-card function.
type MemInfo struct {
	MaxBlock uint16
	MinBlock uint16
	InfoPos  uint16
	FATPos   uint16
	FATSize  uint16
	DirPos   uint16
	DirSize  uint16
	Icon     uint16
	DataSize uint16
}

// GetMemInfo requests the partition layout of a memory card.
func (d *DeviceOps) GetMemInfo(addr Address) (MemInfo, error) {
	const partition = 0

	payload := make([]byte, 8)
	putFunctionWord(payload, FnMemoryCard)
	binary.LittleEndian.PutUint32(payload[4:8], uint32(partition)<<24)

	resp, err := d.t.Transact(CmdGetMemInfo, addr, payload, true)
	if err != nil {
		return MemInfo{}, err
	}
	if len(resp) == 0 {
		return MemInfo{}, ErrShortResponse
	}

	if len(resp) < 4+1 {
		return MemInfo{}, invariant("mem info response too short: %d bytes", len(resp))
	}
	raw := resp[4 : len(resp)-1] // Strip header and trailing checksum.
	if len(raw) != 28 {
		return MemInfo{}, invariant("mem info payload wrong size: %d bytes", len(raw))
	}
	raw = WordSwap(raw)

	// raw[0:4] is the function code word; ignored here, the caller
	// already knows it asked about FN_MEMORY_CARD.
	fields := make([]uint16, 12)
	for i := 0; i < 12; i++ {
		fields[i] = binary.LittleEndian.Uint16(raw[4+i*2 : 6+i*2])
	}

	return MemInfo{
		MaxBlock: fields[0],
		MinBlock: fields[1],
		InfoPos:  fields[2],
		FATPos:   fields[3],
		FATSize:  fields[4],
		DirPos:   fields[5],
		DirSize:  fields[6],
		Icon:     fields[7],
		DataSize: fields[8],
	}, nil
}
