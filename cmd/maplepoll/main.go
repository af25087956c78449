package main

/*
Purpose: poll a controller's condition report at a fixed interval and
print the pressed buttons and stick positions, mirroring readController()
in the reference host driver.
*/

import (
	"fmt"
	"os"
	"time"

	maple "github.com/nfd/maple-proxy/src"
	"github.com/spf13/pflag"
)

func main() {
	var device = pflag.StringP("device", "d", "", "Serial device the maple proxy is attached to.")
	var baud = pflag.IntP("baud", "b", 0, "Baud rate. 0 uses the configured baud (57600 if none is configured).")
	var address = pflag.Uint8P("address", "a", uint8(maple.AddressController), "Recipient address to poll.")
	var interval = pflag.DurationP("interval", "i", 50*time.Millisecond, "Polling interval.")
	pflag.Parse()

	cfg, err := maple.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}

	devicePath := *device
	if devicePath == "" {
		devicePath = cfg.Device
	}
	if devicePath == "" {
		fmt.Fprintln(os.Stderr, "no serial device given or configured")
		os.Exit(1)
	}

	baudRate := *baud
	if baudRate == 0 {
		baudRate = cfg.Baud
	}

	proxy, err := maple.Connect(devicePath, baudRate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connecting:", err)
		os.Exit(1)
	}
	defer proxy.Close()

	addr := maple.Address(*address)

	for {
		cond, err := proxy.ReadController(addr)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read controller:", err)
		} else {
			fmt.Printf("buttons=%v rtrig=%d ltrig=%d joy=(%d,%d) joy2=(%d,%d)\n",
				cond.PressedButtons(), cond.Rtrig, cond.Ltrig, cond.JoyX, cond.JoyY, cond.JoyX2, cond.JoyY2)
		}

		time.Sleep(*interval)
	}
}
