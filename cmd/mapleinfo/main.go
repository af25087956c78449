package main

/*
Purpose: enumerate the devices attached to a maple bus port and print
their device-info responses, mirroring maple.py's test() driver.
*/

import (
	"fmt"
	"os"

	maple "github.com/nfd/maple-proxy/src"
	"github.com/spf13/pflag"
)

func main() {
	var device = pflag.StringP("device", "d", "", "Serial device the maple proxy is attached to. Falls back to config/USB discovery if unset.")
	var baud = pflag.IntP("baud", "b", 0, "Baud rate. 0 uses the configured baud (57600 if none is configured).")
	var verbose = pflag.BoolP("verbose", "v", false, "Enable debug logging.")
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
	if devicePath == "" && cfg.USBVendorID != 0 {
		devicePath, err = maple.DiscoverPort(cfg.USBVendorID, cfg.USBProductID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "discovering proxy:", err)
			os.Exit(1)
		}
	}
	if devicePath == "" {
		fmt.Fprintln(os.Stderr, "no serial device given, configured, or discovered")
		os.Exit(1)
	}

	baudRate := *baud
	if baudRate == 0 {
		baudRate = cfg.Baud
	}

	if *verbose {
		maple.SetLevel(maple.LevelDebug)
	}

	proxy, err := maple.Connect(devicePath, baudRate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connecting:", err)
		os.Exit(1)
	}
	defer proxy.Close()

	for _, addr := range []maple.Address{maple.AddressController, maple.AddressPeriph1} {
		info, err := proxy.DeviceInfo(addr)
		if err != nil {
			fmt.Printf("address 0x%02x: no device (%s)\n", addr, err)
			continue
		}

		fmt.Printf("address 0x%02x:\n", addr)
		fmt.Printf("  functions : %v\n", maple.DecodeFunctionCodes(info.Functions))
		fmt.Printf("  name      : %s\n", info.ProductName)
		fmt.Printf("  license   : %s\n", info.ProductLicense)
		fmt.Printf("  max power : %d (tenths of mW)\n", info.MaxPowerTenthMW)
		fmt.Printf("  standby   : %d (tenths of mW)\n", info.StandbyPowerMW)
	}
}
