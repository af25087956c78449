package maple

/*
Purpose: top-level entry point wiring a serial port, the are-you-there
handshake, a Transactor and a DeviceOps together into one session handle.

Grounded on MapleProxy.__init__ in the reference host driver, which owns
the serial handle for the object's whole lifetime and performs the
handshake eagerly in the constructor.
*/

// Proxy is a live session with a maple proxy microcontroller over a
// serial link. Open it with Connect and release it with Close.
type Proxy struct {
	*DeviceOps

	link *SerialLink
}

// Connect opens device at baud (DefaultBaud if 0), confirms a proxy is
// listening on the other end, and returns a ready-to-use Proxy.
func Connect(device string, baud int) (*Proxy, error) {
	link, err := OpenSerialLink(device, baud)
	if err != nil {
		return nil, err
	}

	if err := Handshake(link); err != nil {
		link.Close() //nolint:errcheck
		return nil, err
	}

	transactor := NewTransactor(link)

	return &Proxy{
		DeviceOps: NewDeviceOps(transactor),
		link:      link,
	}, nil
}

// Close releases the underlying serial port.
func (p *Proxy) Close() error {
	return p.link.Close()
}
