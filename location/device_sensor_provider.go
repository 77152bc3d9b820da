package location

import (
	"bufio"
	"strings"

	"github.com/adrianmo/go-nmea"
	"github.com/tarm/serial"
)

// DeviceSensorProvider retrieves a position fix from a GPS receiver connected
// via a serial port.
type DeviceSensorProvider struct {
	port     string
	baudRate int
}

// NewDeviceSensorProvider creates a provider reading from the given serial
// port at the given baud rate.
func NewDeviceSensorProvider(port string, baudRate int) *DeviceSensorProvider {
	return &DeviceSensorProvider{
		port:     port,
		baudRate: baudRate,
	}
}

// GetLocation reads NMEA sentences from the device until a GGA fix arrives.
func (d *DeviceSensorProvider) GetLocation() (Location, error) {
	c := &serial.Config{Name: d.port, Baud: d.baudRate}
	s, err := serial.OpenPort(c)
	if err != nil {
		return Location{}, err
	}
	defer s.Close()

	scanner := bufio.NewScanner(s)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "$GPGGA") {
			continue
		}
		sentence, err := nmea.Parse(line)
		if err != nil {
			return Location{}, err
		}
		if gga, ok := sentence.(nmea.GGA); ok {
			return Location{
				Latitude:  gga.Latitude,
				Longitude: gga.Longitude,
				Accuracy:  float64(gga.HDOP), // HDOP as a proxy for accuracy
			}, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return Location{}, err
	}

	return Location{}, ErrNoFix
}
