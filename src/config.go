package maple

/*
Purpose: load session defaults (serial device, baud, logging level, USB
discovery hints) from a YAML file, the way deviceid.go loads tocalls.yaml:
search a short list of candidate locations, read whichever is found
first, and unmarshal with gopkg.in/yaml.v3.
*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// configSearchPath lists candidate locations for a maple.yaml config
// file, checked in order.
var configSearchPath = []string{
	"maple.yaml",
	"config/maple.yaml",
	"/etc/maple-proxy/maple.yaml",
}

// Config holds the settings a cmd/ tool needs before it can open a
// Proxy: which serial device to use, at what baud, how chatty the
// package logger should be, and which USB vendor/product IDs identify
// the proxy when it must be discovered automatically.
type Config struct {
	Device       string `yaml:"device"`
	Baud         int    `yaml:"baud"`
	LogLevel     string `yaml:"log_level"`
	USBVendorID  uint16 `yaml:"usb_vendor_id"`
	USBProductID uint16 `yaml:"usb_product_id"`
}

// DefaultConfig returns the settings used when no config file is found.
func DefaultConfig() Config {
	return Config{
		Baud:     DefaultBaud,
		LogLevel: "info",
	}
}

// LoadConfig reads the first config file found on configSearchPath,
// overlaying its values onto DefaultConfig. If no file is found,
// DefaultConfig is returned unchanged with a nil error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	for _, path := range configSearchPath {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("maple: parsing config %s: %w", path, err)
		}

		if cfg.Baud == 0 {
			cfg.Baud = DefaultBaud
		}
		logger.Debug("loaded config", "path", path)
		return cfg, nil
	}

	return cfg, nil
}
