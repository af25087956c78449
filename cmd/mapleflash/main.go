package main

/*
Purpose: read or write memory-card flash blocks from the command line,
mirroring vmu_flash.py's read_vmu/write_vmu.
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
	var address = pflag.Uint8P("address", "a", uint8(maple.AddressPeriph1), "Recipient address carrying the memory card function.")
	var read = pflag.StringP("read", "r", "", "Read flash block 0 (512 bytes) to this file.")
	var write = pflag.StringP("write", "w", "", "Write a blocksize-padded image from this file, one block per 512 bytes.")
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

	switch {
	case *read != "":
		data, err := proxy.ReadFlash(addr, 0, 0)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read flash:", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*read, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "writing output:", err)
			os.Exit(1)
		}
		fmt.Println("block 0 written to", *read)

	case *write != "":
		raw, err := os.ReadFile(*write)
		if err != nil {
			fmt.Fprintln(os.Stderr, "reading image:", err)
			os.Exit(1)
		}

		image := make(map[byte][512]byte)
		for i := 0; i*512 < len(raw); i++ {
			var block [512]byte
			start := i * 512
			end := start + 512
			if end > len(raw) {
				end = len(raw)
			}
			copy(block[:], raw[start:end])
			image[byte(i)] = block
		}

		if err := proxy.WriteFlashImage(addr, image); err != nil {
			fmt.Fprintln(os.Stderr, "write flash image:", err)
			os.Exit(1)
		}
		fmt.Println("image written")

	default:
		fmt.Fprintln(os.Stderr, "one of --read or --write is required")
		os.Exit(1)
	}
}
