package main

/*
Purpose: blit a raw 192-byte 48x32 1bpp bitmap file to a device's LCD
function, mirroring writeLCD() in the reference host driver.
*/

import (
	"fmt"
	"os"

	maple "github.com/nfd/maple-proxy/src"
	"github.com/spf13/pflag"
)

func main() {
	var device = pflag.StringP("device", "d", "", "Serial device the maple proxy is attached to.")
	var baud = pflag.IntP("baud", "b", 0, "Baud rate. 0 uses the configured baud (57600 if none is configured).")
	var address = pflag.Uint8P("address", "a", uint8(maple.AddressPeriph1), "Recipient address carrying the LCD function.")
	var bitmapFile = pflag.StringP("bitmap", "f", "", "Path to a raw 192-byte 48x32 1bpp bitmap.")
	pflag.Parse()

	if *bitmapFile == "" {
		fmt.Fprintln(os.Stderr, "--bitmap is required")
		os.Exit(1)
	}

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

	bitmap, err := os.ReadFile(*bitmapFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "reading bitmap:", err)
		os.Exit(1)
	}

	proxy, err := maple.Connect(devicePath, baudRate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connecting:", err)
		os.Exit(1)
	}
	defer proxy.Close()

	if err := proxy.WriteLCD(maple.Address(*address), bitmap); err != nil {
		fmt.Fprintln(os.Stderr, "write lcd:", err)
		os.Exit(1)
	}

	fmt.Println("lcd updated")
}
