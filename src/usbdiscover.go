package maple

/*
Purpose: locate the serial device node for a maple proxy attached as a
USB-serial adapter, confirming its presence via USB enumeration first.

Grounded on usb_device.go's OpenDeviceWithVIDPID usage for presence
checks; that file doesn't need a tty path (it talks to the device
directly over USB endpoints), but the enumeration step is the same.
*/

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/google/gousb"
)

// candidateDevicePatterns lists glob patterns checked, in order, when
// mapping a discovered USB device down to a serial device node.
var candidateDevicePatterns = []string{
	"/dev/ttyUSB*",
	"/dev/ttyACM*",
	"/dev/cu.usbserial-*",
}

// DiscoverPort looks for a maple proxy attached as a USB-serial adapter
// identified by vendorID/productID, and returns the serial device node
// to open for it.
//
// libusb (which gousb wraps) can confirm that a matching device is
// enumerated on the bus, but it does not expose the kernel's tty device
// node for a USB-serial adapter. DiscoverPort uses gousb only to confirm
// the proxy is actually attached, then returns the first device node
// matching candidateDevicePatterns. On a host with more than one
// USB-serial adapter attached this can pick the wrong one; callers that
// need to disambiguate should configure Config.Device directly instead
// of relying on discovery.
func DiscoverPort(vendorID, productID uint16) (string, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vendorID), gousb.ID(productID))
	if err != nil {
		return "", fmt.Errorf("maple: querying usb bus: %w", err)
	}
	if dev == nil {
		return "", fmt.Errorf("maple: no usb device with vid=0x%04x pid=0x%04x", vendorID, productID)
	}
	dev.Close()

	var candidates []string
	for _, pattern := range candidateDevicePatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		candidates = append(candidates, matches...)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("maple: usb device present but no serial device node found")
	}

	sort.Strings(candidates)
	return candidates[0], nil
}
