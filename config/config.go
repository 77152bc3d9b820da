package config

import (
	"errors"
	"fmt"
	"os"

	"geomark/typedef"

	"gopkg.in/yaml.v3"
)

// Config represents the structure of the configuration file.
type Config struct {
	LogLevel string `yaml:"log_level"` // zerolog level: trace..panic

	Window struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"window"`

	UI struct {
		SideMenu    bool   `yaml:"side_menu"`    // Enable the slide-out side menu
		ColorScheme string `yaml:"color_scheme"` // "default" or "dark"
	} `yaml:"ui"`

	Map struct {
		FallbackLatitude  float64 `yaml:"fallback_latitude"`  // Viewport center when no marker is stored
		FallbackLongitude float64 `yaml:"fallback_longitude"` //
	} `yaml:"map"`

	Location struct {
		SensorBased       bool   `yaml:"sensor_based"`    // Use GPS sensor instead of the geolocation API
		GPSDevicePort     string `yaml:"gps_device_port"` // Serial port where the GPS sensor is mounted
		GPSDeviceBaudRate int    `yaml:"gps_baud_rate"`   // Baud rate for the GPS sensor
		MapsAPIKey        string `yaml:"maps_api_key"`    // Google Maps API key
	} `yaml:"location"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	var c Config
	c.LogLevel = "info"
	c.Window.Width = 1280
	c.Window.Height = 720
	c.UI.SideMenu = true
	c.UI.ColorScheme = "default"
	c.Map.FallbackLatitude = 40.4168
	c.Map.FallbackLongitude = -3.7038
	c.Location.SensorBased = false
	c.Location.GPSDevicePort = "/dev/ttyUSB0"
	c.Location.GPSDeviceBaudRate = 9600
	return c
}

// Load reads the YAML configuration from the specified file. A missing file
// is not an error: defaults are returned. Unspecified fields keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Fallback returns the viewport center used when no marker is stored.
func (c Config) Fallback() typedef.Coordinate {
	return typedef.Coordinate{
		Latitude:  c.Map.FallbackLatitude,
		Longitude: c.Map.FallbackLongitude,
	}
}
