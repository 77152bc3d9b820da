package location

import (
	"errors"

	"geomark/typedef"

	"github.com/rs/zerolog"
)

var (
	// ErrPermissionDenied is returned when the user has not granted
	// foreground location access.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrNoFix is returned when no usable position fix could be obtained.
	ErrNoFix = errors.New("no position fix available")
	// ErrNoProvider is returned when no location provider is configured.
	ErrNoProvider = errors.New("no location provider configured")
)

// Service composes the permission gate with a position provider.
type Service struct {
	gate     *Gate
	provider Provider
	log      zerolog.Logger
}

// NewService creates a location service. provider may be nil when the
// configuration names no usable source; Acquire then fails with ErrNoProvider.
func NewService(gate *Gate, provider Provider, logger zerolog.Logger) *Service {
	return &Service{gate: gate, provider: provider, log: logger}
}

// Gate exposes the permission gate so the UI can prompt and record decisions.
func (s *Service) Gate() *Gate {
	return s.gate
}

// Acquire returns the device's current position as a coordinate. It fails
// with ErrPermissionDenied unless foreground access has been granted.
func (s *Service) Acquire() (typedef.Coordinate, error) {
	if s.gate.Status() != PermissionGranted {
		return typedef.Coordinate{}, ErrPermissionDenied
	}
	if s.provider == nil {
		return typedef.Coordinate{}, ErrNoProvider
	}

	loc, err := s.provider.GetLocation()
	if err != nil {
		s.log.Warn().Err(err).Msg("position fix failed")
		return typedef.Coordinate{}, err
	}

	c := typedef.Coordinate{Latitude: loc.Latitude, Longitude: loc.Longitude}
	s.log.Debug().
		Float64("lat", c.Latitude).
		Float64("lon", c.Longitude).
		Float64("accuracy", loc.Accuracy).
		Msg("position fix acquired")
	return c, nil
}
