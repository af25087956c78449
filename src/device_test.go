package maple

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_DeviceOps_DeviceInfo(t *testing.T) {
	link, master := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	payload := make([]byte, 112)
	payload[0] = 0x01 // FN_CONTROLLER
	rawName := make([]byte, 32)
	copy(rawName, "CONTROLLER")
	copy(payload[16:48], WordSwap(rawName))
	payload[108], payload[109] = 0x00, 0xc8
	payload[110], payload[111] = 0x00, 0x32

	respFrame, err := EncodeRequest(CmdInfoResp, AddressHost, payload)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeProxyRound(t, master, respFrame, true)
		fakeProxyRound(t, master, respFrame, true)
	}()

	info, err := ops.DeviceInfo(AddressController)
	require.NoError(t, err)
	<-done

	require.Equal(t, FnController, info.Functions)
	require.EqualValues(t, 200, info.MaxPowerTenthMW)
	require.EqualValues(t, 50, info.StandbyPowerMW)
}

func Test_DeviceOps_DeviceInfo_RejectsShortResponse(t *testing.T) {
	link, master := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	// Fewer than 4 bytes decoded: too short even to hold a header, let
	// alone the 112-byte info payload it's supposed to wrap. Must not
	// panic slicing resp[4:].
	shortFrame := []byte{0xab, 0xcd, 0xef}

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeProxyRound(t, master, shortFrame, true)
		fakeProxyRound(t, master, shortFrame, true)
	}()

	_, err := ops.DeviceInfo(AddressController)
	require.ErrorIs(t, err, ErrShortResponse)
	<-done
}

func Test_DeviceOps_ReadController(t *testing.T) {
	link, master := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	condData := make([]byte, 8)
	condData[0], condData[1] = 0xfe, 0xff // only C pressed once inverted
	condData[2], condData[3] = 10, 20

	payload := make([]byte, 4+8)
	copy(payload[4:], WordSwap(condData))

	respFrame, err := EncodeRequest(CmdInfoResp, AddressHost, payload)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeProxyRound(t, master, respFrame, true)
	}()

	cond, err := ops.ReadController(AddressController)
	require.NoError(t, err)
	<-done

	require.Equal(t, []string{"C"}, cond.PressedButtons())
	require.EqualValues(t, 10, cond.Rtrig)
	require.EqualValues(t, 20, cond.Ltrig)
}

func Test_DeviceOps_WriteLCD_RejectsWrongSize(t *testing.T) {
	link, _ := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	err := ops.WriteLCD(AddressPeriph1, make([]byte, 10))
	require.ErrorIs(t, err, ErrInvariantViolation)
}

func Test_DeviceOps_WriteLCD_Success(t *testing.T) {
	link, master := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	respFrame, err := EncodeRequest(CmdAckResp, AddressHost, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeProxyRound(t, master, respFrame, true)
	}()

	err = ops.WriteLCD(AddressPeriph1, make([]byte, 192))
	require.NoError(t, err)
	<-done
}

func Test_DeviceOps_ReadFlash(t *testing.T) {
	link, master := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	data := make([]byte, 512)
	for i := range data {
		data[i] = byte(i)
	}
	payload := make([]byte, 8+512)
	copy(payload[8:], WordSwap(data))

	// A READ response carries 130 words, more than EncodeRequest accepts
	// for an outbound payload, so the header comes from an empty frame and
	// the word count, payload and checksum are filled in here.
	header, err := EncodeRequest(CmdXferResp, AddressHost, nil)
	require.NoError(t, err)
	respFrame := append(header[:4:4], payload...)
	respFrame[0] = byte(len(payload) / 4)
	respFrame = append(respFrame, xorChecksum(respFrame))

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeProxyRound(t, master, respFrame, true)
		fakeProxyRound(t, master, respFrame, true)
	}()

	got, err := ops.ReadFlash(AddressPeriph1, 0, 0)
	require.NoError(t, err)
	<-done

	require.Equal(t, data, got)
}

func Test_DeviceOps_WriteFlash_RejectsWrongSize(t *testing.T) {
	link, _ := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	err := ops.WriteFlash(AddressPeriph1, 0, 0, make([]byte, 10))
	require.ErrorIs(t, err, ErrInvariantViolation)
}

func Test_DeviceOps_WriteFlash_Success(t *testing.T) {
	link, master := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	respFrame, err := EncodeRequest(CmdAckResp, AddressHost, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeProxyRound(t, master, respFrame, true)
	}()

	err = ops.WriteFlash(AddressPeriph1, 3, 0, make([]byte, 128))
	require.NoError(t, err)
	<-done
}

func Test_DeviceOps_WriteFlash_RejectsUnexpectedResponse(t *testing.T) {
	link, master := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	respFrame, err := EncodeRequest(CmdFileErrResp, AddressHost, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeProxyRound(t, master, respFrame, true)
	}()

	err = ops.WriteFlash(AddressPeriph1, 3, 0, make([]byte, 128))
	require.Error(t, err)
	<-done
}

func Test_DeviceOps_WriteFlashComplete(t *testing.T) {
	link, master := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	respFrame, err := EncodeRequest(CmdAckResp, AddressHost, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeProxyRound(t, master, respFrame, true)
	}()

	require.NoError(t, ops.WriteFlashComplete(AddressPeriph1, 3))
	<-done
}

func Test_DeviceOps_Reset(t *testing.T) {
	link, master := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	respFrame, err := EncodeRequest(CmdAckResp, AddressHost, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeProxyRound(t, master, respFrame, true)
	}()

	require.NoError(t, ops.Reset(AddressController))
	<-done
}

func Test_DeviceOps_GetMemInfo(t *testing.T) {
	link, master := newTestLink(t)
	ops := NewDeviceOps(NewTransactor(link))

	raw := make([]byte, 28)
	// raw[0:4] function word, ignored by GetMemInfo.
	fields := []uint16{100, 1, 5, 6, 13, 19, 200, 0, 85}
	for i, v := range fields {
		raw[4+i*2] = byte(v)
		raw[5+i*2] = byte(v >> 8)
	}

	payload := WordSwap(raw)
	respFrame, err := EncodeRequest(CmdInfoResp, AddressHost, payload)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeProxyRound(t, master, respFrame, true)
		fakeProxyRound(t, master, respFrame, true)
	}()

	info, err := ops.GetMemInfo(AddressPeriph1)
	require.NoError(t, err)
	<-done

	require.EqualValues(t, 100, info.MaxBlock)
	require.EqualValues(t, 1, info.MinBlock)
	require.EqualValues(t, 5, info.InfoPos)
	require.EqualValues(t, 6, info.FATPos)
	require.EqualValues(t, 13, info.FATSize)
	require.EqualValues(t, 19, info.DirPos)
	require.EqualValues(t, 200, info.DirSize)
	require.EqualValues(t, 0, info.Icon)
	require.EqualValues(t, 85, info.DataSize)
}
